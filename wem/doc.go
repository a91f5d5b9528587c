// SPDX-License-Identifier: EPL-2.0

// Package wem drives the external audio conversion executables as
// black boxes: an encoder that compresses WAV waveforms into WEM
// blobs, and a decoder that turns WEM blobs back into WAV.
//
// Both run process-per-call with no shared state, so callers may
// invoke them concurrently for different banks. Each invocation has a
// single, caller-specified output path: the tool is either told the
// path directly, or its one documented drop location is renamed to
// the path in a single step. There is no searching of candidate
// locations after the fact.
package wem
