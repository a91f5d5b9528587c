// SPDX-License-Identifier: EPL-2.0

package bnkpatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/echotools/bnkpatch/audio"
	"github.com/echotools/bnkpatch/formats/aiff"
	"github.com/echotools/bnkpatch/formats/mp3"
	"github.com/echotools/bnkpatch/formats/vorbis"
	"github.com/echotools/bnkpatch/formats/wav"
)

// ErrUnsupportedFormat means no registered decoder handles the file's
// extension.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// DefaultBufSize is the read buffer size, in samples, used by the
// high-level conversion helpers.
const DefaultBufSize = 4096

// Decoders returns a registry with every built-in format wired in.
func Decoders() *audio.Registry {
	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})
	registry.Register("mp3", mp3.Decoder{})
	registry.Register("ogg", vorbis.Decoder{})
	registry.Register("oga", vorbis.Decoder{})
	registry.Register("aiff", aiff.Decoder{})
	registry.Register("aif", aiff.Decoder{})
	return registry
}

// DecoderFor picks a decoder for path based on its extension.
func DecoderFor(path string) (audio.Decoder, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	dec, ok := Decoders().Get(ext)
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
	}
	return dec, nil
}

// DecodeFile opens path with the decoder matching its extension.
// Closing the returned Source closes the file.
func DecodeFile(path string) (audio.Source, error) {
	dec, err := DecoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

type fileSource struct {
	audio.Source
	f *os.File
}

func (fs *fileSource) Close() error {
	if err := fs.Source.Close(); err != nil {
		fs.f.Close()
		return err
	}
	return fs.f.Close()
}

// ConvertFile decodes any supported input file and writes it as a
// 16-bit PCM WAV at the requested sample rate. channels is 1 or 2;
// passing 2 keeps the source layout and never upmixes mono.
func ConvertFile(srcPath, dstPath string, sampleRate, channels int) error {
	src, err := DecodeFile(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	pcm16, outChannels, err := audio.ResamplePCM16(src, sampleRate, channels, DefaultBufSize)
	if err != nil {
		return fmt.Errorf("converting %q: %w", srcPath, err)
	}

	return wav.EncodeFile(dstPath, sampleRate, outChannels, pcm16)
}
