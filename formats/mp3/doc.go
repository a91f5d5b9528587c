// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 layer 3 streams into audio sources via
// github.com/hajimehoshi/go-mp3. Output is always interleaved stereo
// normalized to float32 in [-1, 1); run it through
// audio.ResamplePCM16 to change the rate or collapse to mono.
package mp3
