// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile reports that the stream lacks a FORM/AIFF header.
	ErrNotAiffFile = errors.New("aiff: not an aiff file")

	// ErrOnlyPCM16bitSupported reports a sample depth other than 16.
	ErrOnlyPCM16bitSupported = errors.New("aiff: only 16-bit pcm is supported")

	// ErrUnsupportedAiffLayout reports a missing or degenerate COMM chunk.
	ErrUnsupportedAiffLayout = errors.New("aiff: unsupported layout")
)
