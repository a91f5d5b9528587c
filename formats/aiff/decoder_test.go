// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

func writeTestAiff(t *testing.T, rate, channels int, samples []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test file: %v", err)
	}
	defer f.Close()

	enc := goaiff.NewEncoder(f, rate, 16, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           samples,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding test aiff: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	return path
}

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	path := writeTestAiff(t, 8000, 1, []int{0, 16384, -16384, 32767})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening test file: %v", err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768}
	for i, w := range want {
		if buf[i] != w {
			t.Errorf("sample %d = %f, want %f", i, buf[i], w)
		}
	}
}

func TestDecode_NonSeekableReader(t *testing.T) {
	t.Parallel()

	path := writeTestAiff(t, 8000, 2, []int{100, -100, 200, -200})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading test file: %v", err)
	}

	// io.MultiReader hides the underlying Seeker.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("FORMless noise")))
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
	}
}

// fakePCM drives the source directly, bypassing the chunk parser.
type fakePCM struct {
	format *goaudio.Format
	data   []int
	pos    int
	err    error
}

func (f *fakePCM) Format() *goaudio.Format { return f.format }

func (f *fakePCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}

	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestReadSamples_EOFOnDrainedStream(t *testing.T) {
	t.Parallel()

	fake := &fakePCM{
		format: &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		data:   []int{1, 2, 3},
	}
	src := &source{dec: fake, sampleRate: 8000, channels: 1}

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if n != 3 || err != io.EOF {
		t.Fatalf("short read = (%d, %v), want (3, io.EOF)", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("drained read = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestReadSamples_WrapsDecoderError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("truncated SSND chunk")
	src := &source{dec: &fakePCM{err: wantErr}, sampleRate: 8000, channels: 1}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, wantErr) {
		t.Errorf("ReadSamples() error = %v, want %v", err, wantErr)
	}
}
