// SPDX-License-Identifier: MIT

package convolution

import (
	"github.com/cockroachdb/errors"
)

// Series is a sparse time series handed to the kernels: parallel times and
// amounts plus the basis the times are expressed in.
type Series struct {
	Basis   Basis
	Times   []int64
	Amounts []float64
}

// validate checks shape invariants shared by every kernel entry point.
func (s Series) validate(name string) error {
	if len(s.Times) != len(s.Amounts) {
		return errors.Wrapf(ErrLengthMismatch, "%s: times=%d amounts=%d", name, len(s.Times), len(s.Amounts))
	}
	if len(s.Times) == 0 {
		return errors.Wrapf(ErrEmptyInput, "%s", name)
	}
	if !s.Basis.Valid() {
		return errors.Wrapf(ErrUnknownBasis, "%s: %d", name, int(s.Basis))
	}

	return nil
}

// Convolve computes the temporal convolution of first and second.
//
// Implementation:
//   - Stage 1: validate both series and resolve the result basis.
//   - Stage 2: build the flattened outer sum of times and outer product of
//     amounts, row-major in first (first[i] pairs with every second[j]).
//   - Stage 3: consolidate the n*m pairs.
//
// A length-1 operand degenerates to a broadcast shift and scale of the other
// one; no special casing is needed for that.
//
// The returned Series may be empty if all products cancel or are zero.
func Convolve(first, second Series) (Series, error) {
	// Stage 1: validate
	if err := first.validate("first"); err != nil {
		return Series{}, err
	}
	if err := second.validate("second"); err != nil {
		return Series{}, err
	}
	basis, err := ResultBasis(first.Basis, second.Basis)
	if err != nil {
		return Series{}, err
	}

	// Stage 2: outer sum / outer product
	n, m := len(first.Times), len(second.Times)
	times := make([]int64, n*m)
	amounts := make([]float64, n*m)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < m; j++ {
			times[k] = first.Times[i] + second.Times[j]
			amounts[k] = first.Amounts[i] * second.Amounts[j]
			k++
		}
	}

	// Stage 3: consolidate
	outTimes, outAmounts, err := Consolidate(times, amounts)
	if err != nil {
		return Series{}, err
	}

	return Series{Basis: basis, Times: outTimes, Amounts: outAmounts}, nil
}

// ConvolveAbsoluteRelative convolves an absolute series with a relative one.
// It is Convolve with the basis combination pinned, for call sites that want
// the argument order to document intent.
func ConvolveAbsoluteRelative(absolute, relative Series) (Series, error) {
	if absolute.Basis != Absolute {
		return Series{}, errors.Wrapf(ErrWrongBasis, "first operand must be absolute, got %s", absolute.Basis)
	}
	if relative.Basis != Relative {
		return Series{}, errors.Wrapf(ErrWrongBasis, "second operand must be relative, got %s", relative.Basis)
	}

	return Convolve(absolute, relative)
}

// ConvolveRelativeRelative convolves two relative series.
func ConvolveRelativeRelative(first, second Series) (Series, error) {
	if first.Basis != Relative || second.Basis != Relative {
		return Series{}, errors.Wrapf(ErrWrongBasis, "both operands must be relative, got %s and %s", first.Basis, second.Basis)
	}

	return Convolve(first, second)
}
