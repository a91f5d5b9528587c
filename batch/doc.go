// SPDX-License-Identifier: EPL-2.0

// Package batch runs patch and extract operations across sets of bank
// files.
//
// A batch never aborts because one bank or one asset failed: every
// outcome is captured in a structured result and the run keeps going.
// Banks are processed in parallel, each container exclusively owned by
// its worker; nothing inside a single bank runs concurrently.
package batch
