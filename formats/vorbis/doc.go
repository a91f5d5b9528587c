// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into audio sources via
// github.com/jfreymuth/oggvorbis. The reader hands back normalized
// interleaved float32 directly, so decoding is a thin adapter.
package vorbis
