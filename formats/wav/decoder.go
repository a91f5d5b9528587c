// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/echotools/bnkpatch/audio"
)

// Decoder decodes RIFF/WAVE PCM streams into audio.Source values.
type Decoder struct{}

// Decode parses the WAV stream in r. When r is not seekable the whole
// stream is buffered in memory first, as the RIFF parser needs random
// access.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav stream: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// DecodeFile opens path and decodes it. Closing the returned Source
// closes the file.
func DecodeFile(path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening wav file: %w", err)
	}

	src, err := Decoder{}.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
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

type source struct {
	dec        *gowav.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil {
		return 0, fmt.Errorf("reading wav samples: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	scale, bias := sampleScale(s.bitDepth)
	for i := 0; i < n; i++ {
		dst[i] = float32(s.intBuf.Data[i]-bias) / scale
	}

	if n < len(dst) {
		return n, io.EOF
	}
	return n, nil
}

// sampleScale returns the divisor and offset that map integer PCM to
// [-1, 1). 8-bit WAV is unsigned (0..255), so it carries a 128 bias;
// the wider depths are signed and centered already.
func sampleScale(bitDepth int) (scale float32, bias int) {
	switch bitDepth {
	case 8:
		return 1 << 7, 128
	case 24:
		return 1 << 23, 0
	case 32:
		return 1 << 31, 0
	default:
		return 1 << 15, 0
	}
}
