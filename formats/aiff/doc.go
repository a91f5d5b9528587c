// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF streams into audio sources via
// github.com/go-audio/aiff. Only 16-bit PCM material is accepted;
// anything else fails with ErrOnlyPCM16bitSupported.
package aiff
