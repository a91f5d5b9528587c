// SPDX-License-Identifier: EPL-2.0

// Package bnk implements the soundbank container codec.
//
// A bank file is a flat sequence of tagged, length-prefixed chunks.
// Two chunks matter here: DIDX, whose payload is a run of fixed
// 12-byte index records {asset id, relative offset, used size}, and
// DATA, whose payload holds the concatenated asset blobs the index
// points into. Everything else is skipped untouched.
//
// The package supports three operations on a loaded container:
//
//   - building an Index of every embedded asset,
//   - extracting each asset as a standalone blob,
//   - injecting replacement bytes into an asset's slot in place.
//
// Injection is strictly size-constrained: a slot's capacity is the
// used size recorded in the bank at index-build time, and a
// replacement may never exceed it. The container is never resized and
// assets never move; a patch rewrites only the slot bytes and the
// record's used-size field. Shorter replacements have the remainder
// of their slot zero-filled so no stale bytes survive.
//
// Asset blobs are opaque to this package. Their codec, sample rate
// and channel layout are the concern of the tools that produce them.
package bnk
