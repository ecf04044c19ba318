// SPDX-License-Identifier: MIT

package distribution

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/temporalis/convolution"
)

// Sentinel errors. Callers match them with errors.Is; the returned errors
// carry operand context (lengths, bases, values) on top of these.
var (
	// ErrInvalidDistribution signals malformed construction input: shape
	// mismatch, empty arrays or an unknown time basis.
	ErrInvalidDistribution = errors.New("distribution: invalid distribution")

	// ErrInvalidOperation signals algebra that has no meaning, such as
	// multiplying or adding two absolute distributions, or dividing one.
	ErrInvalidOperation = errors.New("distribution: invalid operation")

	// ErrDimensionMismatch signals a pointwise relative/absolute addition
	// between distributions of different lengths.
	ErrDimensionMismatch = errors.New("distribution: incompatible dimensions")

	// ErrRange signals a FixedTimeOfYear window outside [0, MaxTimeOfYear].
	ErrRange = errors.New("distribution: value out of range")

	// ErrUnsupportedOperand signals an operand type the operator cannot combine with.
	ErrUnsupportedOperand = errors.New("distribution: unsupported operand")

	// ErrUnknownLoaderTag signals a portable record whose kind has no loader
	// in the Registry.
	ErrUnknownLoaderTag = errors.New("distribution: unknown loader tag")

	// ErrIncongruentDistribution signals a stored distribution whose total does
	// not agree with the amount it is attached to.
	ErrIncongruentDistribution = errors.New("distribution: incongruent distribution")
)

// TimeBasis tells whether times are absolute points or relative offsets.
type TimeBasis = convolution.Basis

// Time bases.
const (
	Relative = convolution.Relative
	Absolute = convolution.Absolute
)

// Durations in seconds. Month and Year are the average Gregorian lengths
// (30.436875 and 365.2425 days).
const (
	Second int64 = 1
	Minute       = 60 * Second
	Hour         = 60 * Minute
	Day          = 24 * Hour
	Month        = 2_629_746 * Second
	Year         = 31_556_952 * Second
)

// MaxTimeOfYear is the largest offset a FixedTimeOfYear window may hold:
// 366 days, so a window may run to the last second of a leap year.
const MaxTimeOfYear = 366 * Day

// Factor is anything that can take part in a product with a distribution:
// Scalar, *Distribution, *Fixed, *FixedTimeOfYear or a user-supplied type.
type Factor interface {
	// Multiply returns receiver × other as a new value.
	Multiply(other Factor) (Factor, error)
}

// Prioritized is a Factor that may claim the product when it is the right
// operand. When TakesPrecedence reports true, the left operand hands the
// whole product to the receiver's Multiply.
type Prioritized interface {
	Factor
	TakesPrecedence() bool
}

// Temporal is the read-only view shared by every distribution-shaped value.
// Times and Amounts return copies.
type Temporal interface {
	Factor
	Basis() TimeBasis
	Times() []int64
	Amounts() []float64
	Len() int
	Total() float64
}

// Scalar is a plain number used as a Factor.
type Scalar float64

// Multiply multiplies two scalars, or hands the product to the other operand
// (multiplication by a number commutes).
func (s Scalar) Multiply(other Factor) (Factor, error) {
	if nilFactor(other) {
		return nil, errors.Wrapf(ErrUnsupportedOperand, "Scalar × nil %T", other)
	}
	if o, ok := other.(Scalar); ok {
		return s * o, nil
	}

	return other.Multiply(s)
}

// takesPrecedence reports whether f claims products it takes part in.
func takesPrecedence(f Factor) bool {
	p, ok := f.(Prioritized)
	return ok && p.TakesPrecedence()
}
