// SPDX-License-Identifier: MIT

package distribution

import (
	"fmt"
	"math"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/temporalis/convolution"
)

// Distribution is an immutable temporal distribution.
// len(times) == len(amounts) > 0 always holds for a constructed value.
type Distribution struct {
	basis   TimeBasis
	times   []int64
	amounts []float64
}

// New validates and copies times and amounts into a new Distribution.
//
// Fails with ErrInvalidDistribution when:
//   - basis is not Absolute or Relative,
//   - the slices differ in length,
//   - the slices are empty.
//
// Zero amounts are kept; use Nonzero to drop them. Times need not be sorted.
func New(basis TimeBasis, times []int64, amounts []float64) (*Distribution, error) {
	if !basis.Valid() {
		return nil, errors.Wrapf(ErrInvalidDistribution, "unknown time basis %d", int(basis))
	}
	if len(times) != len(amounts) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "times has %d points, amounts has %d", len(times), len(amounts))
	}
	if len(times) == 0 {
		return nil, errors.Wrap(ErrInvalidDistribution, "no points")
	}

	return newOwned(basis, append([]int64(nil), times...), append([]float64(nil), amounts...)), nil
}

// NewRelative is New(Relative, times, amounts).
func NewRelative(times []int64, amounts []float64) (*Distribution, error) {
	return New(Relative, times, amounts)
}

// NewAbsolute is New(Absolute, times, amounts).
func NewAbsolute(times []int64, amounts []float64) (*Distribution, error) {
	return New(Absolute, times, amounts)
}

// FromDates builds an absolute distribution; each date is truncated to whole seconds.
func FromDates(dates []time.Time, amounts []float64) (*Distribution, error) {
	times := make([]int64, len(dates))
	for i, d := range dates {
		times[i] = d.Unix()
	}

	return New(Absolute, times, amounts)
}

// FromDurations builds a relative distribution; each offset is truncated
// toward zero to whole seconds.
func FromDurations(offsets []time.Duration, amounts []float64) (*Distribution, error) {
	times := make([]int64, len(offsets))
	for i, d := range offsets {
		times[i] = int64(d / time.Second)
	}

	return New(Relative, times, amounts)
}

// newOwned wraps slices the caller hands over; no validation, no copy.
func newOwned(basis TimeBasis, times []int64, amounts []float64) *Distribution {
	return &Distribution{basis: basis, times: times, amounts: amounts}
}

// fromSeries wraps a kernel result, rejecting the empty series left behind
// when every amount cancels.
func fromSeries(s convolution.Series, op string) (*Distribution, error) {
	if len(s.Times) == 0 {
		return nil, errors.Wrapf(ErrInvalidDistribution, "%s: every amount cancelled to zero", op)
	}

	return newOwned(s.Basis, s.Times, s.Amounts), nil
}

// Basis returns the time basis.
func (d *Distribution) Basis() TimeBasis { return d.basis }

// Len returns the number of points.
func (d *Distribution) Len() int { return len(d.times) }

// Times returns a copy of the time keys in seconds.
func (d *Distribution) Times() []int64 { return append([]int64(nil), d.times...) }

// Amounts returns a copy of the amounts.
func (d *Distribution) Amounts() []float64 { return append([]float64(nil), d.amounts...) }

// At returns the i-th point. It panics if i is out of range, like slice indexing.
func (d *Distribution) At(i int) (int64, float64) { return d.times[i], d.amounts[i] }

// Total returns the sum of amounts.
func (d *Distribution) Total() float64 {
	var sum float64
	for _, a := range d.amounts {
		sum += a
	}

	return sum
}

// Series exposes the distribution to the convolution kernels.
// The slices are shared; kernels never write to their inputs.
func (d *Distribution) Series() convolution.Series {
	return convolution.Series{Basis: d.basis, Times: d.times, Amounts: d.amounts}
}

// Dates returns absolute times as UTC time.Time values.
func (d *Distribution) Dates() ([]time.Time, error) {
	if d.basis != Absolute {
		return nil, errors.Wrap(ErrInvalidOperation, "relative distribution has no dates")
	}
	out := make([]time.Time, len(d.times))
	for i, t := range d.times {
		out[i] = time.Unix(t, 0).UTC()
	}

	return out, nil
}

// Durations returns relative times as time.Duration values.
func (d *Distribution) Durations() ([]time.Duration, error) {
	if d.basis != Relative {
		return nil, errors.Wrap(ErrInvalidOperation, "absolute distribution has no durations")
	}
	out := make([]time.Duration, len(d.times))
	for i, t := range d.times {
		out[i] = time.Duration(t) * time.Second
	}

	return out, nil
}

// Nonzero returns a distribution without zero-amount points. The receiver is
// returned as is when it has none. Fails with ErrInvalidDistribution when
// every amount is zero, since an empty distribution cannot exist.
func (d *Distribution) Nonzero() (*Distribution, error) {
	zeros := 0
	for _, a := range d.amounts {
		if a == 0 {
			zeros++
		}
	}
	if zeros == 0 {
		return d, nil
	}
	if zeros == len(d.amounts) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "all %d amounts are zero", zeros)
	}

	times := make([]int64, 0, len(d.times)-zeros)
	amounts := make([]float64, 0, len(d.times)-zeros)
	for i, a := range d.amounts {
		if a != 0 {
			times = append(times, d.times[i])
			amounts = append(amounts, a)
		}
	}

	return newOwned(d.basis, times, amounts), nil
}

// Scale returns the distribution with every amount multiplied by f.
func (d *Distribution) Scale(f float64) *Distribution {
	amounts := make([]float64, len(d.amounts))
	for i, a := range d.amounts {
		amounts[i] = a * f
	}

	return newOwned(d.basis, append([]int64(nil), d.times...), amounts)
}

// Convolve returns the temporal convolution d × other.
// Absolute × Absolute fails with ErrInvalidOperation; a nil other is
// ErrUnsupportedOperand.
func (d *Distribution) Convolve(other *Distribution) (*Distribution, error) {
	if other == nil {
		return nil, errors.Wrap(ErrUnsupportedOperand, "Distribution × nil *Distribution")
	}
	if d.basis == Absolute && other.basis == Absolute {
		return nil, errors.Wrapf(ErrInvalidOperation,
			"cannot multiply two absolute distributions (%d and %d points)", d.Len(), other.Len())
	}
	var (
		s   convolution.Series
		err error
	)
	switch {
	case d.basis == Absolute:
		s, err = convolution.ConvolveAbsoluteRelative(d.Series(), other.Series())
	case other.basis == Absolute:
		s, err = convolution.ConvolveAbsoluteRelative(other.Series(), d.Series())
	default:
		s, err = convolution.ConvolveRelativeRelative(d.Series(), other.Series())
	}
	if err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrInvalidOperation, "%v", err), err)
	}

	return fromSeries(s, "multiply")
}

// Multiply implements Factor.
//
// Dispatch order:
//  1. Scalar: amounts scaled, times unchanged.
//  2. Prioritized operand claiming precedence: other.Multiply(d).
//  3. *Distribution: convolution.
//  4. anything else: ErrUnsupportedOperand.
func (d *Distribution) Multiply(other Factor) (Factor, error) {
	if nilFactor(other) {
		return nil, errors.Wrapf(ErrUnsupportedOperand, "Distribution × nil %T", other)
	}
	switch o := other.(type) {
	case Scalar:
		return d.Scale(float64(o)), nil
	}
	if takesPrecedence(other) {
		return other.Multiply(d)
	}
	if o, ok := other.(*Distribution); ok {
		return d.Convolve(o)
	}

	return nil, errors.Wrapf(ErrUnsupportedOperand, "Distribution × %T", other)
}

// nilFactor reports whether f is nil or a nil pointer of a built-in kind.
func nilFactor(f Factor) bool {
	switch v := f.(type) {
	case nil:
		return true
	case *Distribution:
		return v == nil
	case *Fixed:
		return v == nil
	case *FixedTimeOfYear:
		return v == nil
	}

	return false
}

// Div returns the distribution with amounts divided by x.
// Dividing an absolute distribution or dividing by zero is ErrInvalidOperation.
func (d *Distribution) Div(x float64) (*Distribution, error) {
	if d.basis == Absolute {
		return nil, errors.Wrap(ErrInvalidOperation, "cannot divide an absolute distribution")
	}
	if x == 0 || math.IsNaN(x) {
		return nil, errors.Wrapf(ErrInvalidOperation, "cannot divide by %v", x)
	}

	return d.Scale(1 / x), nil
}

// AddScalar returns the distribution with x added to every amount.
func (d *Distribution) AddScalar(x float64) *Distribution {
	amounts := make([]float64, len(d.amounts))
	for i, a := range d.amounts {
		amounts[i] = a + x
	}

	return newOwned(d.basis, append([]int64(nil), d.times...), amounts)
}

// Add returns d + other.
//
//   - Scalar: every amount shifted by the scalar.
//   - Relative + Relative: union of points, consolidated.
//   - Relative + Absolute (either order): equal lengths required
//     (ErrDimensionMismatch); times and amounts are added position by
//     position and the result is absolute.
//   - Absolute + Absolute: ErrInvalidOperation.
//   - anything else: ErrUnsupportedOperand.
func (d *Distribution) Add(other Factor) (*Distribution, error) {
	var o *Distribution
	switch v := other.(type) {
	case Scalar:
		return d.AddScalar(float64(v)), nil
	case *Distribution:
		if v == nil {
			return nil, errors.Wrap(ErrUnsupportedOperand, "Distribution + nil *Distribution")
		}
		o = v
	default:
		return nil, errors.Wrapf(ErrUnsupportedOperand, "Distribution + %T", other)
	}

	switch {
	case d.basis == Absolute && o.basis == Absolute:
		return nil, errors.Wrap(ErrInvalidOperation, "cannot add two absolute distributions")

	case d.basis == Relative && o.basis == Relative:
		times := make([]int64, 0, len(d.times)+len(o.times))
		times = append(append(times, d.times...), o.times...)
		amounts := make([]float64, 0, len(d.amounts)+len(o.amounts))
		amounts = append(append(amounts, d.amounts...), o.amounts...)
		t, a, err := convolution.Consolidate(times, amounts)
		if err != nil {
			return nil, errors.WithSecondaryError(errors.Wrapf(ErrInvalidOperation, "%v", err), err)
		}

		return fromSeries(convolution.Series{Basis: Relative, Times: t, Amounts: a}, "add")

	default:
		if d.Len() != o.Len() {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"pointwise %s + %s addition needs equal lengths, got %d and %d", d.basis, o.basis, d.Len(), o.Len())
		}
		times := make([]int64, len(d.times))
		amounts := make([]float64, len(d.amounts))
		for i := range d.times {
			times[i] = d.times[i] + o.times[i]
			amounts[i] = d.amounts[i] + o.amounts[i]
		}

		return newOwned(Absolute, times, amounts), nil
	}
}

// Cumulative returns a distribution with the running sum of amounts in the
// stored point order.
func (d *Distribution) Cumulative() *Distribution {
	amounts := make([]float64, len(d.amounts))
	var sum float64
	for i, a := range d.amounts {
		sum += a
		amounts[i] = sum
	}

	return newOwned(d.basis, append([]int64(nil), d.times...), amounts)
}

// Less orders distributions by total amount.
func (d *Distribution) Less(other *Distribution) bool {
	if other == nil {
		return false
	}

	return d.Total() < other.Total()
}

// String implements fmt.Stringer.
func (d *Distribution) String() string {
	return fmt.Sprintf("%s temporal distribution with %d points and total %.4g", d.basis, d.Len(), d.Total())
}
