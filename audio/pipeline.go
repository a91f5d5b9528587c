// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/echotools/bnkpatch/utils"
)

// ReadAll drains src and returns its samples as normalized float32.
// bufSize is the read buffer size in samples; 4096 is a reasonable
// default.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	var out []float32
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return out, nil
}

// ReadAll16 drains src and returns its samples as 16-bit PCM.
// bufSize is the read buffer size in samples; 4096 is a reasonable
// default.
func ReadAll16(src Source, bufSize int) ([]int16, error) {
	var pcm16 []int16
	buf := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			for i := 0; i < n; i++ {
				pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return pcm16, nil
}

// ResamplePCM16 runs src through the standard conversion pipeline and
// collects the result as 16-bit PCM: resample to sampleRate, then mix
// down to mono when channels is 1. A channels value of 2 keeps the
// source layout as-is; upmixing mono to stereo is not performed.
//
// The returned channel count is the pipeline's actual output layout.
func ResamplePCM16(src Source, sampleRate, channels, bufSize int) ([]int16, int, error) {
	if channels != 1 && channels != 2 {
		return nil, 0, ErrInvalidChannels
	}

	out := src
	// Identity resampling would still run the interpolator and nudge
	// samples, so skip it when the rate already matches.
	if src.SampleRate() != sampleRate {
		out = NewResampler(src, sampleRate)
	}
	outChannels := src.Channels()
	if channels == 1 && outChannels > 1 {
		out = NewMonoMixer(out)
		outChannels = 1
	}

	pcm16, err := ReadAll16(out, bufSize)
	if err != nil {
		return nil, 0, err
	}
	return pcm16, outChannels, nil
}
