// SPDX-License-Identifier: MIT

// Package convolution implements the numeric kernels behind temporal
// distributions: consolidation of colliding time keys and the outer-sum /
// outer-product convolution of two sparse time series.
//
// A time series here is a pair of parallel slices: int64 time keys (epoch
// seconds for absolute points, signed seconds for relative offsets) and
// float64 amounts. The kernels never look at calendars; the caller decides
// what a key means through Basis.
//
// Consolidate:
//
//   - Groups amounts by identical key and sums them.
//   - Emits one entry per distinct key, sorted ascending.
//   - Drops entries whose sum is exactly zero.
//   - Negative keys are fine: grouping is a stable sort followed by a linear
//     merge of runs, so no offset into a non-negative index space is needed.
//
// Convolve:
//
//   - Forms every pairwise combination of the two inputs (n*m pairs), adding
//     times and multiplying amounts, then consolidates.
//   - The result basis follows ResultBasis: Absolute+Relative → Absolute,
//     Relative+Relative → Relative, Absolute+Absolute is rejected.
//
// Complexity:
//
//   - Consolidate: O(n log n) time, O(n) memory.
//   - Convolve:    O(n·m·log(n·m)) time, O(n·m) memory before consolidation.
//
// Errors (sentinel):
//
//   - ErrEmptyInput       if an input series has no points.
//   - ErrLengthMismatch   if times and amounts differ in length.
//   - ErrAbsolutePair     if both operands are absolute.
//   - ErrUnknownBasis     if a Basis value is outside the enum.
//   - ErrWrongBasis       if a pinned-basis entry point gets the other basis.
package convolution
