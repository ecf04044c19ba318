package distribution_test

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/katalvlaran/temporalis/distribution"
)

func TestRecordRoundTrip(t *testing.T) {
	reg := distribution.NewRegistry()
	abs := mustNew(t, distribution.Absolute, []int64{date(2024, time.March, 1), date(1999, time.December, 31)}, []float64{0.1, 1e-9})
	rel := mustNew(t, distribution.Relative, days(-3, 0, 700), []float64{1.0 / 3, 1.0 / 3, 1.0 / 3})

	for _, d := range []*distribution.Distribution{abs, rel} {
		raw, err := distribution.Encode(d)
		require.NoError(t, err)
		require.Equal(t, distribution.KindDistribution, gjson.GetBytes(raw, "kind").String())
		require.Equal(t, d.Basis().String(), gjson.GetBytes(raw, "time_basis").String())

		got, err := reg.Decode(raw)
		require.NoError(t, err)
		back, ok := got.(*distribution.Distribution)
		require.True(t, ok)
		require.Equal(t, d.Basis(), back.Basis())
		require.Equal(t, d.Times(), back.Times())
		require.InDeltaSlice(t, d.Amounts(), back.Amounts(), 1e-12)
	}
}

func TestRecordVariants(t *testing.T) {
	reg := distribution.NewRegistry()

	f, err := distribution.NewFixed(distribution.Absolute, []int64{date(2030, time.January, 1)}, []float64{2})
	require.NoError(t, err)
	raw, err := distribution.Encode(f)
	require.NoError(t, err)
	require.False(t, gjson.GetBytes(raw, "allow_overlap").Exists())
	got, err := reg.Decode(raw)
	require.NoError(t, err)
	require.IsType(t, &distribution.Fixed{}, got)
	require.Equal(t, f.Times(), got.(*distribution.Fixed).Times())

	y, err := distribution.NewFixedTimeOfYear(days(59, 151), []float64{0.5, 0.5}, true)
	require.NoError(t, err)
	raw, err = distribution.Encode(y)
	require.NoError(t, err)
	require.True(t, gjson.GetBytes(raw, "allow_overlap").Bool())
	got, err = reg.Decode(raw)
	require.NoError(t, err)
	back, ok := got.(*distribution.FixedTimeOfYear)
	require.True(t, ok)
	require.True(t, back.AllowOverlap())
	require.Equal(t, days(59, 151), back.Times())

	// A year window outside its range is rejected on load.
	_, err = reg.Decode([]byte(`{"kind":"temporalis.FixedTimeOfYear","time_basis":"relative","times":[-5],"amounts":[1]}`))
	require.ErrorIs(t, err, distribution.ErrRange)
}

func TestRegistryDecodeErrors(t *testing.T) {
	reg := distribution.NewRegistry()

	_, err := reg.Decode([]byte(`{"kind":`))
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	_, err = reg.Decode([]byte(`{"times":[1],"amounts":[1]}`))
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	_, err = reg.Decode([]byte(`{"kind":"acme.Seasonal","times":[1],"amounts":[1]}`))
	require.ErrorIs(t, err, distribution.ErrUnknownLoaderTag)

	_, err = reg.Decode([]byte(`{"kind":"temporalis.Distribution","time_basis":"datetime64[s]","times":[1],"amounts":[1]}`))
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	_, err = reg.Decode([]byte(`{"kind":"temporalis.Distribution","time_basis":"relative","times":[1,2],"amounts":[1]}`))
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)

	_, err = reg.Decode([]byte(`{"kind":"temporalis.Distribution","time_basis":"relative","times":"soon","amounts":[1]}`))
	require.ErrorIs(t, err, distribution.ErrInvalidDistribution)
}

func TestDecodeErrorsMatchStandardIs(t *testing.T) {
	_, err := distribution.FromRecord(distribution.Record{TimeBasis: "datetime64[s]", Times: []int64{1}, Amounts: []float64{1}})
	require.Error(t, err)
	require.True(t, stderrors.Is(err, distribution.ErrInvalidDistribution))
	require.Contains(t, err.Error(), "datetime64[s]")

	_, err = distribution.NewRegistry().Decode([]byte(`{"kind":`))
	require.Error(t, err)
	require.True(t, stderrors.Is(err, distribution.ErrInvalidDistribution))
}

func TestRegistryCustomLoader(t *testing.T) {
	reg := distribution.NewRegistry().Register("acme.Half", func([]byte) (distribution.Factor, error) {
		return half{}, nil
	})

	got, err := reg.Decode([]byte(`{"kind":"acme.Half"}`))
	require.NoError(t, err)
	require.Equal(t, half{}, got)

	// The other registry is untouched.
	_, err = distribution.NewRegistry().Decode([]byte(`{"kind":"acme.Half"}`))
	require.ErrorIs(t, err, distribution.ErrUnknownLoaderTag)
}
