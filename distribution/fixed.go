// SPDX-License-Identifier: MIT

package distribution

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Fixed is a distribution pinned to its own times. In any product it wins:
// the other operand collapses to a coefficient (a Scalar as is, anything
// Temporal to its Total) and the result is the Fixed scaled by it.
type Fixed struct {
	d *Distribution
}

// NewFixed validates like New and wraps the result as a Fixed.
// A Fixed is anchored to the calendar, so a Relative basis is
// ErrInvalidDistribution.
func NewFixed(basis TimeBasis, times []int64, amounts []float64) (*Fixed, error) {
	d, err := New(basis, times, amounts)
	if err != nil {
		return nil, err
	}

	return fixedOf(d)
}

func fixedOf(d *Distribution) (*Fixed, error) {
	if d.basis != Absolute {
		return nil, errors.Wrapf(ErrInvalidDistribution, "fixed distribution needs absolute times, got %s", d.basis)
	}

	return &Fixed{d: d}, nil
}

// FixedFrom wraps an existing distribution. The distribution is immutable, so
// it is shared rather than copied. The basis is not checked; d is expected to
// be absolute, since a relative Fixed cannot be placed on a timeline.
func FixedFrom(d *Distribution) *Fixed {
	return &Fixed{d: d}
}

// Distribution returns the underlying plain distribution.
func (f *Fixed) Distribution() *Distribution { return f.d }

// Basis returns the time basis.
func (f *Fixed) Basis() TimeBasis { return f.d.basis }

// Len returns the number of points.
func (f *Fixed) Len() int { return f.d.Len() }

// Times returns a copy of the time keys.
func (f *Fixed) Times() []int64 { return f.d.Times() }

// Amounts returns a copy of the amounts.
func (f *Fixed) Amounts() []float64 { return f.d.Amounts() }

// Total returns the sum of amounts.
func (f *Fixed) Total() float64 { return f.d.Total() }

// TakesPrecedence always reports true: a Fixed claims every product.
func (f *Fixed) TakesPrecedence() bool { return true }

// Multiply implements Factor. The result keeps f's basis and times.
//
//   - Scalar:   coefficient is the scalar.
//   - Temporal: coefficient is other.Total().
//   - a Prioritized plugin that is not Temporal receives the product.
//   - anything else: ErrUnsupportedOperand.
func (f *Fixed) Multiply(other Factor) (Factor, error) {
	if nilFactor(other) {
		return nil, errors.Wrapf(ErrUnsupportedOperand, "Fixed × nil %T", other)
	}
	switch o := other.(type) {
	case Scalar:
		return &Fixed{d: f.d.Scale(float64(o))}, nil
	case Temporal:
		return &Fixed{d: f.d.Scale(o.Total())}, nil
	}
	if takesPrecedence(other) {
		return other.Multiply(f)
	}

	return nil, errors.Wrapf(ErrUnsupportedOperand, "Fixed × %T", other)
}

// String implements fmt.Stringer.
func (f *Fixed) String() string {
	return fmt.Sprintf("fixed %s", f.d)
}
