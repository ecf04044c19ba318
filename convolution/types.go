// SPDX-License-Identifier: MIT

package convolution

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors returned by the kernels.
var (
	// ErrEmptyInput indicates that a series passed to Convolve has no points.
	ErrEmptyInput = errors.New("convolution: empty input series")

	// ErrLengthMismatch indicates that the times and amounts of one series
	// have different lengths.
	ErrLengthMismatch = errors.New("convolution: times and amounts length mismatch")

	// ErrAbsolutePair indicates an attempt to combine two absolute series.
	// Two points in time cannot be summed into a meaningful point in time.
	ErrAbsolutePair = errors.New("convolution: cannot convolve two absolute series")

	// ErrUnknownBasis indicates a Basis value outside the declared enum.
	ErrUnknownBasis = errors.New("convolution: unknown time basis")

	// ErrWrongBasis indicates that a pinned-basis entry point received an
	// operand expressed in the other basis.
	ErrWrongBasis = errors.New("convolution: operand has the wrong time basis")
)

// Basis tells how the int64 time keys of a series are interpreted.
type Basis int

const (
	// Relative keys are signed durations in seconds from an implicit origin.
	Relative Basis = iota

	// Absolute keys are points in time, seconds since the Unix epoch (UTC).
	Absolute
)

// String returns the wire name of the basis ("relative" or "absolute").
func (b Basis) String() string {
	switch b {
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// Valid reports whether b is one of the declared bases.
func (b Basis) Valid() bool {
	return b == Relative || b == Absolute
}

// ParseBasis maps a wire name back to a Basis.
func ParseBasis(s string) (Basis, error) {
	switch s {
	case "relative":
		return Relative, nil
	case "absolute":
		return Absolute, nil
	default:
		return Relative, errors.Wrapf(ErrUnknownBasis, "%q", s)
	}
}

// ResultBasis returns the basis of the convolution of a and b.
//
//	Absolute × Relative → Absolute
//	Relative × Absolute → Absolute
//	Relative × Relative → Relative
//	Absolute × Absolute → ErrAbsolutePair
func ResultBasis(a, b Basis) (Basis, error) {
	if !a.Valid() || !b.Valid() {
		return Relative, errors.Wrapf(ErrUnknownBasis, "%d, %d", int(a), int(b))
	}
	if a == Absolute && b == Absolute {
		return Relative, ErrAbsolutePair
	}
	if a == Absolute || b == Absolute {
		return Absolute, nil
	}

	return Relative, nil
}
