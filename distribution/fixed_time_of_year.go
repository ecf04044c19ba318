// SPDX-License-Identifier: MIT

package distribution

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// FixedTimeOfYear is a relative window inside a calendar year, such as
// "harvest happens March to May". Times are offsets from 1 January 00:00 UTC
// and must lie in [0, MaxTimeOfYear].
//
// Multiplied by an absolute distribution, each absolute point t is replaced
// by the start of a year and the window is convolved on top:
//
//	offset := t - startOfYear(t)
//	bound  := max(window)            (min(window) when allowOverlap)
//	offset >  bound → start of t's own year
//	offset <= bound → start of the previous year
//
// So the window lands in the latest year in which it is already over when t
// happens (or, with allowOverlap, already started).
type FixedTimeOfYear struct {
	d            *Distribution
	allowOverlap bool
}

// NewFixedTimeOfYear builds a window from relative offsets.
// Fails with ErrInvalidDistribution on bad shapes and ErrRange when an offset
// falls outside [0, MaxTimeOfYear].
func NewFixedTimeOfYear(times []int64, amounts []float64, allowOverlap bool) (*FixedTimeOfYear, error) {
	d, err := New(Relative, times, amounts)
	if err != nil {
		return nil, err
	}

	return FixedTimeOfYearFrom(d, allowOverlap)
}

// FixedTimeOfYearFrom wraps a relative distribution as a yearly window.
func FixedTimeOfYearFrom(d *Distribution, allowOverlap bool) (*FixedTimeOfYear, error) {
	if d == nil {
		return nil, errors.Wrap(ErrInvalidDistribution, "nil distribution")
	}
	if d.basis != Relative {
		return nil, errors.Wrap(ErrInvalidDistribution, "time of year window must be relative")
	}
	for i, t := range d.times {
		if t < 0 || t > MaxTimeOfYear {
			return nil, errors.Wrapf(ErrRange,
				"time of year offset %d (index %d) outside [0, %d] seconds", t, i, MaxTimeOfYear)
		}
	}

	return &FixedTimeOfYear{d: d, allowOverlap: allowOverlap}, nil
}

// Distribution returns the window as a plain relative distribution.
func (y *FixedTimeOfYear) Distribution() *Distribution { return y.d }

// AllowOverlap reports whether a reference point inside the window keeps the
// window in the same year.
func (y *FixedTimeOfYear) AllowOverlap() bool { return y.allowOverlap }

// Basis is always Relative.
func (y *FixedTimeOfYear) Basis() TimeBasis { return y.d.basis }

// Len returns the number of points.
func (y *FixedTimeOfYear) Len() int { return y.d.Len() }

// Times returns a copy of the offsets.
func (y *FixedTimeOfYear) Times() []int64 { return y.d.Times() }

// Amounts returns a copy of the amounts.
func (y *FixedTimeOfYear) Amounts() []float64 { return y.d.Amounts() }

// Total returns the sum of amounts.
func (y *FixedTimeOfYear) Total() float64 { return y.d.Total() }

// TakesPrecedence always reports true so the window controls products with
// plain distributions on either side.
func (y *FixedTimeOfYear) TakesPrecedence() bool { return true }

// Multiply implements Factor.
//
//   - Scalar: the window scaled, still a FixedTimeOfYear.
//   - relative Temporal: ErrInvalidOperation (nothing to anchor to).
//   - absolute Temporal: anchored convolution, a plain absolute *Distribution.
//   - anything else: ErrUnsupportedOperand.
func (y *FixedTimeOfYear) Multiply(other Factor) (Factor, error) {
	if nilFactor(other) {
		return nil, errors.Wrapf(ErrUnsupportedOperand, "FixedTimeOfYear × nil %T", other)
	}
	switch o := other.(type) {
	case Scalar:
		return &FixedTimeOfYear{d: y.d.Scale(float64(o)), allowOverlap: y.allowOverlap}, nil
	case Temporal:
		if o.Basis() != Absolute {
			return nil, errors.Wrap(ErrInvalidOperation, "cannot multiply a time of year window by a relative distribution")
		}
		return y.anchor(o.Times(), o.Amounts())
	}

	return nil, errors.Wrapf(ErrUnsupportedOperand, "FixedTimeOfYear × %T", other)
}

// anchor replaces each absolute point with its anchor year start and
// convolves the window on top.
func (y *FixedTimeOfYear) anchor(times []int64, amounts []float64) (*Distribution, error) {
	bound := y.bound()
	anchors := make([]int64, len(times))
	var start, offset int64
	for i, t := range times {
		start = StartOfYear(t)
		offset = t - start
		if offset > bound {
			anchors[i] = start
		} else {
			anchors[i] = StartOfPreviousYear(t)
		}
	}

	return newOwned(Absolute, anchors, amounts).Convolve(y.d)
}

// bound returns the window edge a reference point must pass to stay in its own year.
func (y *FixedTimeOfYear) bound() int64 {
	b := y.d.times[0]
	for _, t := range y.d.times[1:] {
		if y.allowOverlap && t < b || !y.allowOverlap && t > b {
			b = t
		}
	}

	return b
}

// String implements fmt.Stringer.
func (y *FixedTimeOfYear) String() string {
	return fmt.Sprintf("time of year window (allow overlap: %t), %s", y.allowOverlap, y.d)
}

// StartOfYear returns 1 January 00:00:00 UTC of the year containing the epoch second t.
func StartOfYear(t int64) int64 {
	return time.Date(time.Unix(t, 0).UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
}

// StartOfPreviousYear returns 1 January 00:00:00 UTC of the year before the one containing t.
func StartOfPreviousYear(t int64) int64 {
	return time.Date(time.Unix(t, 0).UTC().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
}
