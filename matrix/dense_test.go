// Package matrix_test contains unit tests for the Dense implementation.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/temporalis/matrix"
)

// fromRows builds a Dense from literal rows.
func fromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}
	return m
}

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfBounds ensures At, Set and Add return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Add(0, 2, 1), matrix.ErrIndexOutOfBounds)
}

// TestSetRejectsNaNInf keeps non-finite values out of a matrix.
func TestSetRejectsNaNInf(t *testing.T) {
	m, err := matrix.NewDense(1, 1)
	require.NoError(t, err)

	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Add(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

// TestAddAccumulates verifies that Add sums into a cell.
func TestAddAccumulates(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Add(1, 2, 2.5))
	require.NoError(t, m.Add(1, 2, -1))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 1.5, v)
}

// TestCloneIndependence ensures Clone returns a deep copy.
func TestCloneIndependence(t *testing.T) {
	m := fromRows(t, [][]float64{{1, 0}, {0, 2}})
	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

// TestTransposeAndProducts checks Transpose, MatVec and VecMat against hand results.
func TestTransposeAndProducts(t *testing.T) {
	m := fromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	tr := m.Transpose()
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	require.Equal(t, "[1, 4]\n[2, 5]\n[3, 6]\n", tr.String())

	y, err := m.MatVec([]float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	z, err := m.VecMat([]float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{5, 7, 9}, z)

	_, err = m.MatVec([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = m.VecMat([]float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestIdentity checks the diagonal of NewIdentity.
func TestIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	require.Equal(t, "[1, 0, 0]\n[0, 1, 0]\n[0, 0, 1]\n", id.String())
}
