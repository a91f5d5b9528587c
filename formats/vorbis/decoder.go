// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/echotools/bnkpatch/audio"
)

// Decoder decodes Ogg Vorbis streams into audio.Source values.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	return &source{
		pcm:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}

// pcmStream is the slice of oggvorbis.Reader the source needs; tests
// substitute their own.
type pcmStream interface {
	Read([]float32) (int, error)
}

type source struct {
	pcm        pcmStream
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// ReadSamples passes dst straight to the vorbis reader, trimmed to
// whole frames; oggvorbis already delivers normalized interleaved
// float32 in multiples of the channel count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) < s.channels {
		return 0, nil
	}

	return s.pcm.Read(dst[:len(dst)/s.channels*s.channels])
}
