// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 quantizes a normalized sample to 16-bit PCM,
// clamping anything outside [-1, 1]. The positive rail maps to 32767
// so +1.0 cannot overflow.
func Float32ToInt16(x float32) int16 {
	switch {
	case x >= 1:
		return 32767
	case x <= -1:
		return -32767
	}
	return int16(x * 32767)
}
