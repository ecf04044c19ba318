package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/temporalis/matrix"
)

// TestSolveNeedsPivoting uses a zero leading entry that a non-pivoting
// scheme would reject.
func TestSolveNeedsPivoting(t *testing.T) {
	a := fromRows(t, [][]float64{
		{0, 2, 1},
		{1, 1, 0},
		{3, 0, 1},
	})
	want := []float64{1, -2, 3}
	b, err := a.MatVec(want)
	require.NoError(t, err)

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)
	require.InDeltaSlice(t, want, x, 1e-12)
}

// TestSolveT checks Aᵀ·y = b against a direct transpose solve.
func TestSolveT(t *testing.T) {
	a := fromRows(t, [][]float64{
		{4, -2, 1},
		{3, 6, -4},
		{2, 1, 8},
	})
	b := []float64{12, -25, 32}

	f, err := matrix.Factorize(a)
	require.NoError(t, err)
	require.Equal(t, 3, f.Size())
	y, err := f.SolveT(b)
	require.NoError(t, err)

	direct, err := matrix.Solve(a.Transpose(), b)
	require.NoError(t, err)
	require.InDeltaSlice(t, direct, y, 1e-12)

	back, err := a.Transpose().MatVec(y)
	require.NoError(t, err)
	require.InDeltaSlice(t, b, back, 1e-12)
}

// TestInverse verifies A·A⁻¹ = I.
func TestInverse(t *testing.T) {
	a := fromRows(t, [][]float64{
		{1, 0, 0},
		{-0.5, 1, 0},
		{0, -2, 1},
	})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	for j := 0; j < 3; j++ {
		col := make([]float64, 3)
		for i := range col {
			col[i], err = inv.At(i, j)
			require.NoError(t, err)
		}
		e, err := a.MatVec(col)
		require.NoError(t, err)
		want := []float64{0, 0, 0}
		want[j] = 1
		require.InDeltaSlice(t, want, e, 1e-12)
	}
}

// TestFactorizeErrors covers non-square and singular input.
func TestFactorizeErrors(t *testing.T) {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Factorize(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	singular := fromRows(t, [][]float64{{1, 2}, {2, 4}})
	_, err = matrix.Factorize(singular)
	require.ErrorIs(t, err, matrix.ErrSingular)

	f, err := matrix.Factorize(fromRows(t, [][]float64{{2}}))
	require.NoError(t, err)
	_, err = f.Solve([]float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = f.SolveT(nil)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
