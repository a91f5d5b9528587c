// SPDX-License-Identifier: EPL-2.0

// Package shrink re-encodes replacement audio at reduced fidelity
// until it fits a fixed slot capacity.
//
// The search walks an ordered ladder of (sample rate, channel count)
// attempts from highest fidelity down, resampling and transcoding the
// source waveform once per attempt, and returns the first result that
// fits. It is a greedy first-fit, not a search for the best fit:
// stereo and high sample rates are kept as long as possible, channel
// count is sacrificed before sample rate, and the ladder order is the
// only notion of preference.
//
// Resampling and transcoding are collaborator interfaces so the
// search stays a pure function over the attempt list; tests inject
// fakes instead of invoking real executables.
package shrink
