// SPDX-License-Identifier: EPL-2.0

package audio

// FadeOut applies a linear gain ramp to the tail of an interleaved
// sample buffer, taking the last fadeFrames frames from full gain
// down to silence. The buffer is modified in place. A fade longer
// than the buffer fades the whole buffer.
func FadeOut(buf []float32, channels, fadeFrames int) {
	if channels <= 0 || fadeFrames <= 0 {
		return
	}
	frames := len(buf) / channels
	if fadeFrames > frames {
		fadeFrames = frames
	}

	start := frames - fadeFrames
	for f := 0; f < fadeFrames; f++ {
		gain := float32(fadeFrames-f) / float32(fadeFrames+1)
		base := (start + f) * channels
		for c := 0; c < channels; c++ {
			buf[base+c] *= gain
		}
	}
}
