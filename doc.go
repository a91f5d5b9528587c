// SPDX-License-Identifier: EPL-2.0

// Package bnkpatch is a toolkit for patching audio assets inside
// soundbank container files without rebuilding them.
//
// The subpackages split the work into layers:
//   - bnk: the container codec (chunk scanning, asset index,
//     extraction, in-place injection)
//   - shrink: the first-fit search that squeezes replacement audio
//     into a fixed-size slot
//   - wem: drivers for the external encode and decode tools
//   - batch: multi-bank patch and extract runs
//   - sequence: merging reference clips and splitting re-recorded
//     masters back into per-asset files
//   - audio, formats/...: the decoding and resampling pipeline
//
// The root package ties the format decoders together:
//
//	src, err := bnkpatch.DecodeFile("voice.mp3")
//
//	err = bnkpatch.ConvertFile("voice.mp3", "voice.wav", 44100, 2)
//
// WavResampler plugs the in-process pipeline into shrink.Strategy, so
// only the proprietary transcoding step needs an external tool.
package bnkpatch
