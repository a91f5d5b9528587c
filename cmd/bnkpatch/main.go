// SPDX-License-Identifier: EPL-2.0

// The bnkpatch CLI patches, extracts and rebuilds audio assets in
// soundbank files, driving the external encode/decode tools where the
// asset format requires them.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/echotools/bnkpatch"
	"github.com/echotools/bnkpatch/batch"
	"github.com/echotools/bnkpatch/bnk"
	"github.com/echotools/bnkpatch/config"
	"github.com/echotools/bnkpatch/sequence"
	"github.com/echotools/bnkpatch/shrink"
	"github.com/echotools/bnkpatch/wem"
)

var version = "dev"

func defaultConfigPath() string {
	if p := os.Getenv("BNKPATCH_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "bnkpatch.json"
	}
	return filepath.Join(dir, "bnkpatch", "config.json")
}

// collectBanks resolves the bank set: explicit arguments win, else
// every file in bankDir that sniffs as a soundbank.
func collectBanks(c *cli.Context, bankDir string) ([]string, error) {
	if c.Args().Len() > 0 {
		return c.Args().Slice(), nil
	}
	if bankDir == "" {
		return nil, fmt.Errorf("no bank files given and no --bank-dir configured")
	}

	entries, err := os.ReadDir(bankDir)
	if err != nil {
		return nil, errors.Wrap(err, "reading bank directory")
	}

	var banks []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(bankDir, e.Name())
		if bnk.Sniff(path) {
			banks = append(banks, path)
		}
	}
	if len(banks) == 0 {
		return nil, fmt.Errorf("no soundbanks found in %s", bankDir)
	}
	return banks, nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfgPath := defaultConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatal(err)
	}

	app := &cli.App{
		Name:    "bnkpatch",
		Usage:   "Soundbank asset patching tool",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Set log level (panic, fatal, error, warn, info, debug, trace)", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			level, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "extract",
			Usage:     "Extract every asset from the given banks",
			ArgsUsage: "[BANK...]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "bank-dir", Value: cfg.BankDir, Usage: "Directory scanned for banks when no bank arguments are given"},
				&cli.StringFlag{Name: "output", Value: cfg.OutputDir, Usage: "Directory receiving one subdirectory per bank"},
				&cli.BoolFlag{Name: "decode", Usage: "Also decode each extracted blob to a WAV file"},
				&cli.StringFlag{Name: "decoder", Value: cfg.DecoderPath, Usage: "WEM decoder tool path (vgmstream-style)", EnvVars: []string{"BNKPATCH_DECODER"}},
				&cli.IntFlag{Name: "workers", Value: cfg.Workers, Usage: "Banks processed in parallel"},
			},
			Action: func(c *cli.Context) error {
				banks, err := collectBanks(c, c.String("bank-dir"))
				if err != nil {
					return err
				}

				opts := batch.ExtractOptions{
					Banks:     banks,
					OutputDir: c.String("output"),
					Workers:   c.Int("workers"),
				}
				if c.Bool("decode") {
					if c.String("decoder") == "" {
						return fmt.Errorf("--decode needs --decoder")
					}
					opts.Decoder = wem.NewDecoder(c.String("decoder"))
				}

				results, err := batch.Extract(context.Background(), opts)
				if err != nil {
					return err
				}
				return reportExtract(results)
			},
		},
		{
			Name:      "patch",
			Usage:     "Inject replacement assets into the given banks",
			ArgsUsage: "[BANK...]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "bank-dir", Value: cfg.BankDir, Usage: "Directory scanned for banks when no bank arguments are given"},
				&cli.StringFlag{Name: "replacements", Value: cfg.ReplacementDir, Usage: "Directory of {id}.wem replacement files"},
				&cli.StringFlag{Name: "output", Value: cfg.OutputDir, Usage: "Directory receiving patched banks"},
				&cli.BoolFlag{Name: "shrink", Usage: "Re-encode oversized replacements at reduced fidelity until they fit"},
				&cli.StringFlag{Name: "encoder", Value: cfg.EncoderPath, Usage: "WAV-to-WEM encoder tool path", EnvVars: []string{"BNKPATCH_ENCODER"}},
				&cli.StringFlag{Name: "decoder", Value: cfg.DecoderPath, Usage: "WEM decoder tool path, used to recover a source waveform when shrinking", EnvVars: []string{"BNKPATCH_DECODER"}},
				&cli.StringFlag{Name: "quality", Value: string(cfg.Quality), Usage: "Encoder conversion profile"},
				&cli.IntFlag{Name: "workers", Value: cfg.Workers, Usage: "Banks processed in parallel"},
			},
			Action: func(c *cli.Context) error {
				banks, err := collectBanks(c, c.String("bank-dir"))
				if err != nil {
					return err
				}
				if c.String("replacements") == "" {
					return fmt.Errorf("--replacements is required")
				}

				opts := batch.PatchOptions{
					Banks:          banks,
					ReplacementDir: c.String("replacements"),
					OutputDir:      c.String("output"),
					Workers:        c.Int("workers"),
				}
				if c.Bool("shrink") {
					if c.String("encoder") == "" {
						return fmt.Errorf("--shrink needs --encoder")
					}
					opts.Shrinker = &shrink.Strategy{
						Resampler:  bnkpatch.WavResampler{},
						Transcoder: wem.NewEncoder(c.String("encoder"), wem.Quality(c.String("quality"))),
					}
					if c.String("decoder") != "" {
						opts.Decoder = wem.NewDecoder(c.String("decoder"))
					}
				}

				results, err := batch.Patch(context.Background(), opts)
				if err != nil {
					return err
				}
				return reportPatch(results)
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert audio files to WEM (or plain WAV without an encoder)",
			ArgsUsage: "INPUT...",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "output", Value: cfg.OutputDir, Usage: "Directory receiving converted files"},
				&cli.StringFlag{Name: "encoder", Value: cfg.EncoderPath, Usage: "WAV-to-WEM encoder tool path; empty produces WAV output only", EnvVars: []string{"BNKPATCH_ENCODER"}},
				&cli.StringFlag{Name: "quality", Value: string(cfg.Quality), Usage: "Encoder conversion profile"},
				&cli.IntFlag{Name: "sample-rate", Value: cfg.SampleRate, Usage: "Target sample rate in Hz"},
				&cli.IntFlag{Name: "channels", Value: cfg.Channels, Usage: "Target channel layout, 1 or 2"},
			},
			Action: func(c *cli.Context) error {
				if c.Args().Len() == 0 {
					return fmt.Errorf("no input files given")
				}
				return convertFiles(c.Args().Slice(), convertOptions{
					outputDir:  c.String("output"),
					encoder:    c.String("encoder"),
					quality:    wem.Quality(c.String("quality")),
					sampleRate: c.Int("sample-rate"),
					channels:   c.Int("channels"),
				})
			},
		},
		{
			Name:  "sequence",
			Usage: "Merge reference clips and split re-recorded masters",
			Subcommands: []*cli.Command{
				{
					Name:      "merge",
					Usage:     "Concatenate WAV clips into one master WAV",
					ArgsUsage: "CLIP...",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "output", Required: true, Usage: "Merged WAV path"},
						&cli.IntFlag{Name: "sample-rate", Value: cfg.SampleRate, Usage: "Target sample rate in Hz"},
						&cli.IntFlag{Name: "channels", Value: cfg.Channels, Usage: "Target channel layout, 1 or 2"},
					},
					Action: func(c *cli.Context) error {
						if c.Args().Len() == 0 {
							return fmt.Errorf("no input clips given")
						}
						return sequence.Merge(sequence.MergeOptions{
							Inputs:     c.Args().Slice(),
							Output:     c.String("output"),
							SampleRate: c.Int("sample-rate"),
							Channels:   c.Int("channels"),
						})
					},
				},
				{
					Name:      "split",
					Usage:     "Carve a master WAV into segments matching reference clip durations",
					ArgsUsage: "REFERENCE...",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "master", Required: true, Usage: "The re-recorded master WAV"},
						&cli.StringFlag{Name: "output", Value: cfg.OutputDir, Usage: "Directory receiving the segments"},
						&cli.IntFlag{Name: "sample-rate", Value: cfg.SampleRate, Usage: "Segment sample rate in Hz"},
						&cli.IntFlag{Name: "channels", Value: cfg.Channels, Usage: "Segment channel layout, 1 or 2"},
						&cli.IntFlag{Name: "fade", Value: cfg.FadeMillis, Usage: "Fade-out applied to each segment tail, in milliseconds"},
						&cli.StringFlag{Name: "encoder", Value: cfg.EncoderPath, Usage: "Also encode each segment to WEM with this tool", EnvVars: []string{"BNKPATCH_ENCODER"}},
						&cli.StringFlag{Name: "quality", Value: string(cfg.Quality), Usage: "Encoder conversion profile"},
					},
					Action: func(c *cli.Context) error {
						if c.Args().Len() == 0 {
							return fmt.Errorf("no reference clips given")
						}

						opts := sequence.SplitOptions{
							Master:     c.String("master"),
							References: c.Args().Slice(),
							OutputDir:  c.String("output"),
							SampleRate: c.Int("sample-rate"),
							Channels:   c.Int("channels"),
							Fade:       time.Duration(c.Int("fade")) * time.Millisecond,
						}
						if c.String("encoder") != "" {
							opts.Encoder = wem.NewEncoder(c.String("encoder"), wem.Quality(c.String("quality")))
						}

						paths, err := sequence.Split(opts)
						if err != nil {
							return err
						}
						logrus.Infof("wrote %d segments", len(paths))
						return nil
					},
				},
			},
		},
		{
			Name:  "config",
			Usage: "Show or initialize the persistent configuration",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "init", Usage: "Write the current (default-merged) configuration to disk"},
			},
			Action: func(c *cli.Context) error {
				if c.Bool("init") {
					if err := cfg.Save(cfgPath); err != nil {
						return err
					}
					logrus.Infof("wrote %s", cfgPath)
					return nil
				}
				fmt.Printf("config file: %s\n", cfgPath)
				fmt.Printf("encoder:      %s\n", cfg.EncoderPath)
				fmt.Printf("decoder:      %s\n", cfg.DecoderPath)
				fmt.Printf("bank dir:     %s\n", cfg.BankDir)
				fmt.Printf("replacements: %s\n", cfg.ReplacementDir)
				fmt.Printf("output dir:   %s\n", cfg.OutputDir)
				fmt.Printf("quality:      %s\n", cfg.Quality)
				fmt.Printf("sample rate:  %d\n", cfg.SampleRate)
				fmt.Printf("channels:     %d\n", cfg.Channels)
				fmt.Printf("workers:      %d\n", cfg.Workers)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

type convertOptions struct {
	outputDir  string
	encoder    string
	quality    wem.Quality
	sampleRate int
	channels   int
}

// convertFiles normalizes each input to a 16-bit WAV at the target
// layout, then optionally encodes it to WEM. Per-file failures are
// logged and counted; the run only fails when nothing converted.
func convertFiles(inputs []string, opts convertOptions) error {
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	var encoder *wem.Encoder
	if opts.encoder != "" {
		encoder = wem.NewEncoder(opts.encoder, opts.quality)
	}

	converted := 0
	for _, in := range inputs {
		base := filepath.Base(in)
		stem := base[:len(base)-len(filepath.Ext(base))]
		wavOut := filepath.Join(opts.outputDir, stem+".wav")

		if err := bnkpatch.ConvertFile(in, wavOut, opts.sampleRate, opts.channels); err != nil {
			logrus.Errorf("%s: %v", base, err)
			continue
		}

		if encoder != nil {
			wemOut := filepath.Join(opts.outputDir, stem+".wem")
			if err := encoder.Transcode(wavOut, wemOut); err != nil {
				logrus.Errorf("%s: %v", base, err)
				continue
			}
			logrus.Infof("%s -> %s", base, filepath.Base(wemOut))
		} else {
			logrus.Infof("%s -> %s", base, filepath.Base(wavOut))
		}
		converted++
	}

	if converted == 0 {
		return fmt.Errorf("no inputs converted")
	}
	logrus.Infof("converted %d/%d files", converted, len(inputs))
	return nil
}

func reportExtract(results []batch.ExtractResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			logrus.Errorf("%s: %v", r.Bank, r.Err)
			failed++
			continue
		}
		for _, err := range r.AssetErrs {
			logrus.Warnf("%s: %v", r.Bank, err)
		}
	}
	if failed == len(results) {
		return fmt.Errorf("every bank failed to extract")
	}
	return nil
}

func reportPatch(results []batch.BankResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			logrus.Errorf("%s: %v", r.Bank, r.Err)
			failed++
			continue
		}
		for _, a := range r.Assets {
			if a.Err != nil {
				logrus.Warnf("%s: asset %d %s: %v", filepath.Base(r.Bank), a.ID, a.Status, a.Err)
			} else {
				logrus.Infof("%s: asset %d %s (%d bytes)", filepath.Base(r.Bank), a.ID, a.Status, a.UsedSize)
			}
		}
	}
	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("every bank failed to patch")
	}
	return nil
}
