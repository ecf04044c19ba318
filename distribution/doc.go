// SPDX-License-Identifier: MIT

// Package distribution provides the temporal distribution value type: a sparse,
// irregularly sampled function of time whose amounts sum to a physical
// quantity (not a probability density).
//
// What is a temporal distribution?
//
//	A list of (time, amount) points. Times are int64 seconds and are either
//	absolute (Unix epoch, UTC) or relative (signed offsets). Amounts are
//	float64. "5 kg of CO2, 2 kg now and 3 kg one year later" is the relative
//	distribution {0: 2, 31556952: 3}.
//
// Algebra:
//
//   - Multiply(Scalar)        scales amounts.
//   - Multiply(*Distribution) convolves: outer sum of times, outer product of
//     amounts, consolidated. Absolute × Absolute is ErrInvalidOperation.
//   - Add(*Distribution)      Relative+Relative is a consolidated union;
//     Relative+Absolute adds pointwise by position (equal lengths required);
//     Absolute+Absolute is ErrInvalidOperation.
//   - Add(Scalar)             shifts every amount.
//   - Div(x)                  scales by 1/x; not defined for absolute values.
//   - Simplify(...)           lossy k-means compression of the time axis that
//     conserves the total amount.
//
// Every operator returns a new value; receivers are never mutated.
//
// Multiplication dispatch:
//
//	Any value taking part in a product implements Factor. A Factor that also
//	implements Prioritized and reports TakesPrecedence()==true receives
//	control of the product, whichever side it is on. Fixed and
//	FixedTimeOfYear use this to impose their own semantics, and user types
//	(for example a dynamic characterization function) plug in the same way.
//
// Variants:
//
//   - Fixed: absorbs the other operand into a scalar (its total) and returns
//     itself scaled. The calendar position never moves.
//   - FixedTimeOfYear: a relative window inside a calendar year. Multiplied by
//     an absolute distribution it lands in the latest year whose window does
//     not run past the reference point (or merely starts before it, with
//     allow-overlap).
//
// Portable records:
//
//	ToRecord produces {kind, time_basis, times, amounts, ...}; a Registry maps
//	kind tags to loaders and is owned by the host application.
package distribution
