// SPDX-License-Identifier: EPL-2.0

// Package sequence assembles and carves voice-over recordings.
//
// The workflow it supports: merge a set of reference clips into one
// master WAV, re-record that master in a single take, then split the
// new master back into per-clip files using the reference durations as
// cut points. Split segments keep the reference file names, so they
// drop straight into a replacement directory.
package sequence
