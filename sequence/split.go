// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/echotools/bnkpatch/audio"
	"github.com/echotools/bnkpatch/formats/wav"
	"github.com/echotools/bnkpatch/utils"
)

// ErrMasterTooShort means the master recording ran out before every
// reference clip got its segment.
var ErrMasterTooShort = errors.New("master recording is shorter than the reference clips")

// Encoder compresses a segment waveform into a blob.
// *wem.Encoder satisfies it.
type Encoder interface {
	Transcode(src, dst string) error
}

// SplitOptions configures a split run.
type SplitOptions struct {
	// Master is the re-recorded WAV covering every clip in one take.
	Master string
	// References are the original clips, in recording order. Each
	// one's duration defines where its segment ends in the master,
	// and its base name names the segment file.
	References []string
	// OutputDir receives the segment WAVs.
	OutputDir string
	// SampleRate for the segments. Zero keeps the master's rate.
	SampleRate int
	// Channels for the segments, 1 or 2. Zero keeps the master's
	// layout.
	Channels int
	// Fade is an optional fade-out applied to each segment's tail.
	Fade time.Duration
	// Encoder, when set, additionally writes each segment as a .wem
	// blob next to its WAV.
	Encoder Encoder
}

// Split carves the master recording into per-reference segments and
// returns the written WAV paths, ordered like opts.References.
func Split(opts SplitOptions) ([]string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	durations := make([]time.Duration, len(opts.References))
	for i, ref := range opts.References {
		d, err := wav.FileDuration(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "probing %s", ref)
		}
		durations[i] = d
	}

	master, err := wav.DecodeFile(opts.Master)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", opts.Master)
	}
	defer master.Close()

	rate := opts.SampleRate
	if rate == 0 {
		rate = master.SampleRate()
	}

	channels := opts.Channels
	if channels == 0 {
		channels = master.Channels()
	}

	stream := master
	if master.SampleRate() != rate {
		stream = audio.NewResampler(master, rate)
	}
	if channels == 1 && master.Channels() > 1 {
		stream = audio.NewMonoMixer(stream)
	} else {
		channels = master.Channels()
	}

	samples, err := audio.ReadAll(stream, bufSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading master")
	}

	fadeFrames := int(opts.Fade.Seconds() * float64(rate))

	paths := make([]string, 0, len(opts.References))
	offset := 0
	for i, ref := range opts.References {
		frames := int(durations[i].Seconds() * float64(rate))
		length := frames * channels
		if offset+length > len(samples) {
			return paths, errors.Wrapf(ErrMasterTooShort,
				"segment %d of %d", i+1, len(opts.References))
		}

		segment := make([]float32, length)
		copy(segment, samples[offset:offset+length])
		offset += length

		if fadeFrames > 0 {
			audio.FadeOut(segment, channels, fadeFrames)
		}

		pcm16 := make([]int16, len(segment))
		for j, v := range segment {
			pcm16[j] = utils.Float32ToInt16(v)
		}

		name := filepath.Base(ref)
		out := filepath.Join(opts.OutputDir, name)
		if err := wav.EncodeFile(out, rate, channels, pcm16); err != nil {
			return paths, errors.Wrapf(err, "writing segment %s", name)
		}
		paths = append(paths, out)
		logrus.Debugf("segment %s: %d frames", name, frames)

		if opts.Encoder == nil {
			continue
		}
		blob := out[:len(out)-len(filepath.Ext(out))] + ".wem"
		if err := opts.Encoder.Transcode(out, blob); err != nil {
			return paths, errors.Wrapf(err, "encoding segment %s", name)
		}
	}

	logrus.Infof("split %s into %d segments", filepath.Base(opts.Master), len(paths))
	return paths, nil
}
