package distribution_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/temporalis/distribution"
)

func TestFixedAbsorbsOtherOperand(t *testing.T) {
	f, err := distribution.NewFixed(distribution.Absolute, []int64{date(2030, time.January, 1)}, []float64{1})
	require.NoError(t, err)
	rel := mustNew(t, distribution.Relative, days(0, 10), []float64{1.5, 0.5})
	abs := mustNew(t, distribution.Absolute, []int64{date(2020, time.June, 1)}, []float64{3})

	cases := []struct {
		name  string
		left  distribution.Factor
		right distribution.Factor
		want  float64
	}{
		{"fixed × scalar", f, distribution.Scalar(4), 4},
		{"scalar × fixed", distribution.Scalar(4), f, 4},
		{"fixed × relative", f, rel, 2},
		{"relative × fixed", rel, f, 2},
		{"absolute × fixed", abs, f, 3},
		{"fixed × fixed", f, distribution.FixedFrom(abs), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.left.Multiply(tc.right)
			require.NoError(t, err)
			fixed, ok := got.(*distribution.Fixed)
			require.True(t, ok, "got %T", got)
			require.Equal(t, []int64{date(2030, time.January, 1)}, fixed.Times())
			require.Equal(t, []float64{tc.want}, fixed.Amounts())
			require.Equal(t, distribution.Absolute, fixed.Basis())
		})
	}
}

func TestFixedErrors(t *testing.T) {
	_, err := distribution.NewFixed(distribution.Relative, []int64{1}, nil)
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	_, err = distribution.NewFixed(distribution.Relative, []int64{1}, []float64{1})
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	_, err = distribution.FixedFromRecord(distribution.Record{TimeBasis: "relative", Times: []int64{1}, Amounts: []float64{1}})
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	f, err := distribution.NewFixed(distribution.Absolute, []int64{1}, []float64{1})
	require.NoError(t, err)
	_, err = f.Multiply(opaque{})
	require.ErrorIs(t, err, distribution.ErrUnsupportedOperand)
	_, err = f.Multiply(nil)
	require.ErrorIs(t, err, distribution.ErrUnsupportedOperand)
}

func TestFixedAccessors(t *testing.T) {
	d := mustNew(t, distribution.Relative, []int64{1, 2}, []float64{1, 2})
	f := distribution.FixedFrom(d)

	require.Same(t, d, f.Distribution())
	require.True(t, f.TakesPrecedence())
	require.Equal(t, 2, f.Len())
	require.Equal(t, 3.0, f.Total())
	require.Equal(t, "fixed relative temporal distribution with 2 points and total 3", f.String())
}
