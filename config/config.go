// SPDX-License-Identifier: EPL-2.0

// Package config persists tool locations and run defaults between
// invocations, as a plain JSON file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/echotools/bnkpatch/wem"
)

// Config holds everything worth remembering between runs. Zero-value
// fields mean "not configured" and fall back to the defaults at the
// point of use.
type Config struct {
	// EncoderPath locates the WAV-to-WEM conversion tool.
	EncoderPath string `json:"encoder_path,omitempty"`
	// DecoderPath locates the WEM-to-WAV decoding tool.
	DecoderPath string `json:"decoder_path,omitempty"`

	// BankDir is the default directory holding bank files.
	BankDir string `json:"bank_dir,omitempty"`
	// ReplacementDir is the default directory of {id}.wem candidates.
	ReplacementDir string `json:"replacement_dir,omitempty"`
	// OutputDir is the default destination for patched banks and
	// extracted assets.
	OutputDir string `json:"output_dir,omitempty"`

	// Quality is the encoder conversion profile.
	Quality wem.Quality `json:"quality,omitempty"`
	// SampleRate is the default conversion sample rate in Hz.
	SampleRate int `json:"sample_rate,omitempty"`
	// Channels is the default conversion layout, 1 or 2.
	Channels int `json:"channels,omitempty"`
	// FadeMillis is the default sequencer fade-out in milliseconds.
	FadeMillis int `json:"fade_millis,omitempty"`
	// Workers bounds bank-level parallelism in batch runs.
	Workers int `json:"workers,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Quality:    wem.QualityHigh,
		SampleRate: 44100,
		Channels:   2,
		Workers:    4,
	}
}

// Load reads the config at path, layered over the defaults. A missing
// file is not an error and yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as
// needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(err, "writing config")
	}
	return nil
}
