// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/echotools/bnkpatch/audio"
)

// Encode writes samples as 16-bit PCM WAV. The writer must be seekable
// because the RIFF chunk sizes are patched once all samples are known.
func Encode(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	enc := gowav.NewEncoder(w, sampleRate, 16, channels, 1)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// EncodeFile writes samples as a 16-bit PCM WAV file at path,
// replacing any existing file.
func EncodeFile(path string, sampleRate, channels int, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}

	if err := Encode(f, sampleRate, channels, samples); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// WriteFile drains src and writes it as a 16-bit PCM WAV at path,
// keeping the source's sample rate and channel layout. bufSize is the
// read buffer size in samples.
func WriteFile(path string, src audio.Source, bufSize int) error {
	pcm16, err := audio.ReadAll16(src, bufSize)
	if err != nil {
		return fmt.Errorf("draining source: %w", err)
	}
	return EncodeFile(path, src.SampleRate(), src.Channels(), pcm16)
}

// FileDuration reports the play time of the WAV file at path without
// decoding its samples.
func FileDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening wav file: %w", err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, ErrNotWavFile
	}

	d, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("reading wav duration: %w", err)
	}

	return d, nil
}
