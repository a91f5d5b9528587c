// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/echotools/bnkpatch/audio"
)

// Decoder decodes MPEG-1 layer 3 streams into audio.Source values.
type Decoder struct{}

// Decode parses the MP3 stream in r. go-mp3 always emits interleaved
// 16-bit stereo PCM regardless of the source layout, so the returned
// Source reports two channels.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{pcm: dec, sampleRate: dec.SampleRate()}, nil
}

// pcmStream is the slice of gomp3.Decoder the source needs; tests
// substitute their own.
type pcmStream interface {
	Read([]byte) (int, error)
}

type source struct {
	pcm        pcmStream
	sampleRate int
	raw        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return 2 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	s.raw = s.raw[:need]

	n, err := s.pcm.Read(s.raw)
	if n == 0 {
		return 0, err
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.raw[i*2:]))
		dst[i] = float32(v) / (1 << 15)
	}

	return samples, err
}
