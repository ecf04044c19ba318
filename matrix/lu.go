// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"github.com/cockroachdb/errors"
)

// LU is a factorization P·A = L·U with partial pivoting. L is unit lower
// triangular and stored below the diagonal of lu; U is on and above it.
type LU struct {
	n    int
	lu   []float64
	perm []int // perm[i] is the row of A that ended up in row i
}

// Factorize computes the LU factorization of a square matrix.
//
// Stage 1 (Validate): a must be square.
// Stage 2 (Execute): Doolittle elimination column by column, swapping in the
// row with the largest absolute pivot.
// Stage 3 (Finalize): a column without a non-zero pivot is ErrSingular.
//
// Complexity: O(n³) time, O(n²) memory. a is not modified.
func Factorize(a *Dense) (*LU, error) {
	if a.r != a.c {
		return nil, errors.Wrapf(ErrNonSquare, "Factorize: %d×%d", a.r, a.c)
	}
	n := a.r
	lu := append([]float64(nil), a.data...)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var (
		i, j, k, p int
		maxAbs, f  float64
	)
	for k = 0; k < n; k++ {
		// pick pivot row
		p, maxAbs = k, math.Abs(lu[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(lu[i*n+k]); v > maxAbs {
				p, maxAbs = i, v
			}
		}
		if maxAbs == 0 {
			return nil, errors.Wrapf(ErrSingular, "Factorize: no pivot in column %d", k)
		}
		if p != k {
			for j = 0; j < n; j++ {
				lu[k*n+j], lu[p*n+j] = lu[p*n+j], lu[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		// eliminate below the pivot
		for i = k + 1; i < n; i++ {
			f = lu[i*n+k] / lu[k*n+k]
			lu[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				lu[i*n+j] -= f * lu[k*n+j]
			}
		}
	}

	return &LU{n: n, lu: lu, perm: perm}, nil
}

// Size returns n.
func (f *LU) Size() int { return f.n }

// Solve returns x with A·x = b.
func (f *LU) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "Solve: system of %d, right-hand side of %d", f.n, len(b))
	}
	n := f.n
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	// forward substitution with unit L
	for i := 0; i < n; i++ {
		for k := 0; k < i; k++ {
			x[i] -= f.lu[i*n+k] * x[k]
		}
	}
	// back substitution with U
	for i := n - 1; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			x[i] -= f.lu[i*n+k] * x[k]
		}
		x[i] /= f.lu[i*n+i]
	}

	return x, nil
}

// SolveT returns y with Aᵀ·y = b.
func (f *LU) SolveT(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, errors.Wrapf(ErrDimensionMismatch, "SolveT: system of %d, right-hand side of %d", f.n, len(b))
	}
	n := f.n
	// Aᵀ = Uᵀ·Lᵀ·P, so solve Uᵀ·z = b, then Lᵀ·w = z, then y = Pᵀ·w.
	z := append([]float64(nil), b...)
	for i := 0; i < n; i++ {
		for k := 0; k < i; k++ {
			z[i] -= f.lu[k*n+i] * z[k]
		}
		z[i] /= f.lu[i*n+i]
	}
	for i := n - 1; i >= 0; i-- {
		for k := i + 1; k < n; k++ {
			z[i] -= f.lu[k*n+i] * z[k]
		}
	}
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[f.perm[i]] = z[i]
	}

	return y, nil
}

// Solve factorizes a and solves A·x = b in one step.
func Solve(a *Dense, b []float64) ([]float64, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, err
	}

	return f.Solve(b)
}

// Inverse returns A⁻¹ by solving against each unit vector.
func Inverse(a *Dense) (*Dense, error) {
	f, err := Factorize(a)
	if err != nil {
		return nil, err
	}
	n := f.n
	inv := &Dense{r: n, c: n, data: make([]float64, n*n)}
	e := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		col, err := f.Solve(e)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			inv.data[i*n+j] = v
		}
	}

	return inv, nil
}
