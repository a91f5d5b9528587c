// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV waveform decoding and encoding on top of
// the github.com/go-audio libraries.
//
// Decoding yields an audio.Source of normalized float32 samples:
//
//	decoder := wav.Decoder{}
//	src, err := decoder.Decode(file)
//
// Encoding writes 16-bit PCM:
//
//	err := wav.EncodeFile("out.wav", 44100, 2, samples)
//
// FileDuration reports a file's play time without decoding its
// samples, which the sequencer uses to size segments.
package wav
