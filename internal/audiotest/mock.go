// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic audio source fakes for
// tests in other packages.
package audiotest

import (
	"io"
	"math"
)

// Wave computes the sample value for a frame index on one channel.
type Wave func(frame, channel int) float32

// MockSource streams a fixed number of generated frames. It mirrors
// the audio.Source contract without importing the package.
type MockSource struct {
	rate   int
	chans  int
	frames int
	pos    int
	wave   Wave
}

func NewMockSource(rate, chans, frames int, wave Wave) *MockSource {
	return &MockSource{rate: rate, chans: chans, frames: frames, wave: wave}
}

// NewSilentSource generates frames of silence.
func NewSilentSource(rate, chans, frames int) *MockSource {
	return NewConstantSource(rate, chans, frames, 0)
}

// NewConstantSource generates frames pinned to value.
func NewConstantSource(rate, chans, frames int, value float32) *MockSource {
	return NewMockSource(rate, chans, frames, func(int, int) float32 { return value })
}

// NewSineSource generates a sine wave at freq Hz, identical on every
// channel.
func NewSineSource(rate, chans, frames int, freq float64) *MockSource {
	step := 2 * math.Pi * freq / float64(rate)
	return NewMockSource(rate, chans, frames, func(frame, _ int) float32 {
		return float32(math.Sin(step * float64(frame)))
	})
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.chans }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the stream so one source can be replayed.
func (m *MockSource) Reset() { m.pos = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	want := len(dst) / m.chans
	if left := m.frames - m.pos; want > left {
		want = left
	}

	for f := 0; f < want; f++ {
		for c := 0; c < m.chans; c++ {
			dst[f*m.chans+c] = m.wave(m.pos+f, c)
		}
	}
	m.pos += want

	if m.pos == m.frames {
		return want * m.chans, io.EOF
	}
	return want * m.chans, nil
}
