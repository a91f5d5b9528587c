// SPDX-License-Identifier: EPL-2.0

package shrink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrCannotShrink means every attempt in the ladder was tried and
// none produced a blob small enough for the slot.
var ErrCannotShrink = errors.New("no attempt produced a small enough asset")

// Attempt is one candidate encoding configuration.
type Attempt struct {
	SampleRate int
	Channels   int
}

// DefaultAttempts is the standard fidelity ladder: stereo at full
// rate first, then mono, then progressively lower sample rates.
var DefaultAttempts = []Attempt{
	{SampleRate: 48000, Channels: 2},
	{SampleRate: 44100, Channels: 2},
	{SampleRate: 44100, Channels: 1},
	{SampleRate: 32000, Channels: 1},
	{SampleRate: 22050, Channels: 1},
	{SampleRate: 16000, Channels: 1},
}

// Resampler re-encodes the waveform at src into dst at the given
// sample rate and channel count.
type Resampler interface {
	Resample(src, dst string, sampleRate, channels int) error
}

// Transcoder compresses the waveform at src into the blob at dst.
// The blob's size is not under the caller's control, which is the
// reason this package exists.
type Transcoder interface {
	Transcode(src, dst string) error
}

// Strategy drives the first-fit search. Zero Attempts means
// DefaultAttempts.
type Strategy struct {
	Attempts   []Attempt
	Resampler  Resampler
	Transcoder Transcoder
}

// Fit searches the attempt ladder for the first encoding of the
// waveform at srcWav that fits capacity, and returns its bytes.
//
// A failing resample or transcode counts as "did not fit" and the
// search moves on; only exhausting the ladder is an error. Scratch
// files live in a private temp directory keyed by asset id, so
// concurrent fits for different banks cannot collide.
func (s *Strategy) Fit(srcWav string, id uint32, capacity int) ([]byte, error) {
	attempts := s.Attempts
	if len(attempts) == 0 {
		attempts = DefaultAttempts
	}

	dir, err := os.MkdirTemp("", fmt.Sprintf("shrink-%d-", id))
	if err != nil {
		return nil, fmt.Errorf("shrink scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for _, a := range attempts {
		base := fmt.Sprintf("%d_%dhz_%dch", id, a.SampleRate, a.Channels)
		wavPath := filepath.Join(dir, base+".wav")
		blobPath := filepath.Join(dir, base+".wem")

		if err := s.Resampler.Resample(srcWav, wavPath, a.SampleRate, a.Channels); err != nil {
			logrus.Debugf("asset %d: resample to %dHz/%dch failed: %v", id, a.SampleRate, a.Channels, err)
			continue
		}
		if err := s.Transcoder.Transcode(wavPath, blobPath); err != nil {
			logrus.Debugf("asset %d: transcode at %dHz/%dch failed: %v", id, a.SampleRate, a.Channels, err)
			continue
		}

		info, err := os.Stat(blobPath)
		if err != nil {
			continue
		}
		if info.Size() <= int64(capacity) {
			logrus.Debugf("asset %d: fits at %dHz/%dch (%d <= %d bytes)",
				id, a.SampleRate, a.Channels, info.Size(), capacity)
			return os.ReadFile(blobPath)
		}
	}

	return nil, fmt.Errorf("asset %d into %d bytes: %w", id, capacity, ErrCannotShrink)
}
