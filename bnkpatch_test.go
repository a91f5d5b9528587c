// SPDX-License-Identifier: EPL-2.0

package bnkpatch

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/echotools/bnkpatch/formats/wav"
)

func TestDecoders_KnownFormats(t *testing.T) {
	t.Parallel()

	registry := Decoders()
	for _, format := range []string{"wav", "mp3", "ogg", "oga", "aiff", "aif"} {
		if _, ok := registry.Get(format); !ok {
			t.Errorf("Decoders() missing %q", format)
		}
	}
}

func TestDecoderFor(t *testing.T) {
	t.Parallel()

	if _, err := DecoderFor("/some/dir/clip.WAV"); err != nil {
		t.Errorf("DecoderFor(clip.WAV) error = %v", err)
	}

	if _, err := DecoderFor("clip.flac"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecoderFor(clip.flac) error = %v, want ErrUnsupportedFormat", err)
	}

	if _, err := DecoderFor("noextension"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecoderFor(noextension) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := DecodeFile(filepath.Join(t.TempDir(), "nope.wav"))
	if err == nil {
		t.Error("DecodeFile() error = nil, want error")
	}
}

func TestConvertFile_StereoToMono(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "in.wav")
	dstPath := filepath.Join(dir, "out.wav")

	// Constant-value stereo so the mono mix is easy to predict.
	samples := make([]int16, 2000)
	for i := range samples {
		samples[i] = 8000
	}
	if err := wav.EncodeFile(srcPath, 44100, 2, samples); err != nil {
		t.Fatalf("EncodeFile() error = %v", err)
	}

	if err := ConvertFile(srcPath, dstPath, 22050, 1); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	src, err := wav.DecodeFile(dstPath)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", src.SampleRate())
	}

	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestWavResampler_ImplementsShrinkContract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "in.wav")
	dstPath := filepath.Join(dir, "out.wav")

	if err := wav.EncodeFile(srcPath, 48000, 2, make([]int16, 960)); err != nil {
		t.Fatalf("EncodeFile() error = %v", err)
	}

	if err := (WavResampler{}).Resample(srcPath, dstPath, 16000, 1); err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	src, err := wav.DecodeFile(dstPath)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 16000 || src.Channels() != 1 {
		t.Errorf("output layout = %dHz/%dch, want 16000Hz/1ch",
			src.SampleRate(), src.Channels())
	}
}
