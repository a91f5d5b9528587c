// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/echotools/bnkpatch/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	out, err := ReadAll(src, bufSize)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return out
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_HoldsConstantSignal(t *testing.T) {
	t.Parallel()

	// A flat signal must survive interpolation at any rate change.
	for _, rate := range []int{8000, 22050, 96000} {
		r := NewResampler(audiotest.NewConstantSource(44100, 1, 2000, 0.5), rate)

		out := drain(t, r, 256)
		if len(out) == 0 {
			t.Fatalf("rate %d: no output", rate)
		}
		for i, v := range out {
			if math.Abs(float64(v)-0.5) > 0.05 {
				t.Fatalf("rate %d: sample %d = %f, want ~0.5", rate, i, v)
			}
		}
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
		slack   int
	}{
		{"halve", 44100, 22050, 44100, 22050, 100},
		{"down to 8k", 48000, 8000, 48000, 8000, 50},
		{"double", 22050, 44100, 22050, 44100, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(audiotest.NewSilentSource(tt.srcRate, 1, tt.frames), tt.dstRate)

			got := len(drain(t, r, 1024))
			if got < tt.want-tt.slack || got > tt.want+tt.slack {
				t.Errorf("got %d frames, want %d ±%d", got, tt.want, tt.slack)
			}
		})
	}
}

func TestResampler_StereoStaysInterleaved(t *testing.T) {
	t.Parallel()

	// Left and right carry distinct flat values; after resampling the
	// interleave order must hold.
	src := audiotest.NewMockSource(44100, 2, 4000, func(_, channel int) float32 {
		if channel == 0 {
			return 0.25
		}
		return 0.75
	})

	out := drain(t, NewResampler(src, 22050), 512)
	if len(out) < 2 || len(out)%2 != 0 {
		t.Fatalf("got %d samples, want a positive even count", len(out))
	}

	for f := 0; f < len(out)/2; f++ {
		l, r := out[f*2], out[f*2+1]
		if math.Abs(float64(l)-0.25) > 0.05 || math.Abs(float64(r)-0.75) > 0.05 {
			t.Fatalf("frame %d = (%f, %f), want ~(0.25, 0.75)", f, l, r)
		}
	}
}

func TestResampler_DownsampledSineKeepsShape(t *testing.T) {
	t.Parallel()

	// A 440Hz tone downsampled to 8kHz still crosses zero and still
	// peaks near ±1.
	r := NewResampler(audiotest.NewSineSource(44100, 1, 44100, 440), 8000)

	out := drain(t, r, 1024)

	var peak float64
	crossings := 0
	for i := 1; i < len(out); i++ {
		if v := math.Abs(float64(out[i])); v > peak {
			peak = v
		}
		if (out[i-1] < 0) != (out[i] < 0) {
			crossings++
		}
	}

	if peak < 0.8 || peak > 1.1 {
		t.Errorf("peak = %f, want near 1.0", peak)
	}
	// 440Hz over one second crosses zero ~880 times.
	if crossings < 700 || crossings > 1000 {
		t.Errorf("zero crossings = %d, want ~880", crossings)
	}
}

func TestResampler_DstNotFrameAligned(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 22050)

	buf := make([]float32, 7) // not a multiple of 2 channels
	if _, err := r.ReadSamples(buf); err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_TinySource(t *testing.T) {
	t.Parallel()

	// Fewer frames than the interpolator window still terminates.
	r := NewResampler(audiotest.NewConstantSource(44100, 1, 2, 0.5), 22050)

	buf := make([]float32, 64)
	for i := 0; i < 100; i++ {
		if _, err := r.ReadSamples(buf); err == io.EOF {
			return
		} else if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("resampler never reached EOF on a 2-frame source")
}

func TestResampler_ReadAfterEOF(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 50), 4000)
	drain(t, r, 32)

	n, err := r.ReadSamples(make([]float32, 32))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		src := audiotest.NewSineSource(44100, 2, 44100, 440)
		r := NewResampler(src, 22050)
		b.StartTimer()

		for {
			if _, err := r.ReadSamples(buf); err == io.EOF {
				break
			}
		}
	}
}
