// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrFormatMismatch  = errors.New("sources must share sample rate and channel count")
	ErrNoSources       = errors.New("at least one source is required")
	ErrInvalidChannels = errors.New("unsupported channel count")
)
