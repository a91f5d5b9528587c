// SPDX-License-Identifier: EPL-2.0

package bnkpatch

// WavResampler rewrites WAV files at a new sample rate and channel
// count using the in-process conversion pipeline. It satisfies
// shrink.Resampler, so shrinking needs no external resampling tool.
type WavResampler struct{}

func (WavResampler) Resample(src, dst string, sampleRate, channels int) error {
	return ConvertFile(src, dst, sampleRate, channels)
}
