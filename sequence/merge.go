// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/echotools/bnkpatch/audio"
	"github.com/echotools/bnkpatch/formats/wav"
)

const bufSize = 4096

// MergeOptions configures a merge run.
type MergeOptions struct {
	// Inputs are WAV files, concatenated in order.
	Inputs []string
	// Output is the merged WAV path.
	Output string
	// SampleRate every input is resampled to. Zero means the first
	// input's rate.
	SampleRate int
	// Channels is the output layout, 1 or 2. Zero means the first
	// input's layout. Mono sources are never upmixed, so mixed mono
	// and stereo inputs need Channels = 1.
	Channels int
}

// Merge concatenates the input clips into one WAV, resampling each to
// a common layout first.
func Merge(opts MergeOptions) error {
	if len(opts.Inputs) == 0 {
		return errors.New("merge needs at least one input")
	}

	sources := make([]audio.Source, 0, len(opts.Inputs))
	defer func() {
		for _, s := range sources {
			s.Close()
		}
	}()

	rate, channels := opts.SampleRate, opts.Channels
	for _, path := range opts.Inputs {
		src, err := wav.DecodeFile(path)
		if err != nil {
			return errors.Wrapf(err, "opening %s", path)
		}
		sources = append(sources, src)

		if rate == 0 {
			rate = src.SampleRate()
		}
		if channels == 0 {
			channels = src.Channels()
		}
	}

	normalized := make([]audio.Source, len(sources))
	for i, src := range sources {
		out := src
		// Identity resampling would still run the interpolator and
		// nudge samples, so skip it when the rate already matches.
		if src.SampleRate() != rate {
			out = audio.NewResampler(src, rate)
		}
		if channels == 1 && src.Channels() > 1 {
			out = audio.NewMonoMixer(out)
		}
		normalized[i] = out
	}

	merged, err := audio.Concat(normalized...)
	if err != nil {
		return errors.Wrap(err, "concatenating inputs")
	}

	if err := wav.WriteFile(opts.Output, merged, bufSize); err != nil {
		return err
	}

	logrus.Infof("merged %d clips into %s (%dHz/%dch)",
		len(opts.Inputs), opts.Output, rate, channels)
	return nil
}
