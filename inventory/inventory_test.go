package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
)

func loadBasic(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.LoadFile("testdata/basic.yaml", distribution.NewRegistry())
	require.NoError(t, err)
	return inv
}

func TestLoadBasic(t *testing.T) {
	inv := loadBasic(t)

	require.Len(t, inv.Activities, 6)
	require.Equal(t, []int{1, 2}, inv.IDs(inventory.Flow))
	require.Equal(t, []int{3, 4, 5, 6}, inv.IDs(inventory.Process))

	b, ok := inv.ByCode("B")
	require.True(t, ok)
	require.Equal(t, 4, b.ID)
	require.Equal(t, "db", b.Database)
	require.Equal(t, "B (db|B)", b.Label())

	// Six declared exchanges plus an implicit unit production per process.
	require.Len(t, inv.Exchanges, 10)
	require.Equal(t, 1.0, inv.ProductionAmount(4))

	require.Equal(t, map[int]float64{1: 1, 2: 25}, inv.Method)
	require.Equal(t, map[int]float64{3: 2}, inv.Demand)
	require.Empty(t, inv.StaticActivities())
	require.NoError(t, inv.CheckExchanges(distribution.DefaultCongruenceTolerance))
}

func TestLoadSpread(t *testing.T) {
	inv := loadBasic(t)
	store := inventory.NewMemoryStore(inv)

	got, err := store.Exchanges(context.Background(), 1, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, inventory.Biosphere, got[0].Kind)
	require.Equal(t, 8.0, got[0].Amount)

	d, ok := got[0].Distribution.(*distribution.Distribution)
	require.True(t, ok)
	require.Equal(t, []int64{10 * distribution.Year, 12 * distribution.Year, 14 * distribution.Year, 17 * distribution.Year}, d.Times())
	require.InDelta(t, 1.0, d.Total(), 1e-12)
}

func TestMemoryStore(t *testing.T) {
	inv := loadBasic(t)
	store := inventory.NewMemoryStore(inv)
	ctx := context.Background()

	got, err := store.Exchanges(ctx, 4, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 5.0, got[0].Amount)

	// Own production is not an edge.
	got, err = store.Exchanges(ctx, 4, 4)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = store.Exchanges(ctx, 6, 3)
	require.NoError(t, err)
	require.Empty(t, got)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = store.Exchanges(cancelled, 4, 3)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadRecordAndExplicitIDs(t *testing.T) {
	src := `
database: x
static: true
activities:
  - {code: F, kind: flow, id: 100}
  - code: P
    exchanges:
      - {input: P, kind: production, amount: 2}
      - input: F
        kind: biosphere
        amount: 3
        distribution:
          kind: temporalis.FixedTimeOfYear
          time_basis: relative
          times: [0, 86400]
          amounts: [0.5, 0.5]
          allow_overlap: true
`
	inv, err := inventory.Load(strings.NewReader(src), distribution.NewRegistry())
	require.NoError(t, err)

	p, ok := inv.ByCode("P")
	require.True(t, ok)
	require.Equal(t, 101, p.ID)
	require.True(t, p.Static)
	require.Equal(t, 2.0, inv.ProductionAmount(p.ID))
	require.Contains(t, inv.StaticActivities(), p.ID)

	exs, err := inventory.NewMemoryStore(inv).Exchanges(context.Background(), 100, p.ID)
	require.NoError(t, err)
	require.Len(t, exs, 1)
	y, ok := exs[0].Distribution.(*distribution.FixedTimeOfYear)
	require.True(t, ok)
	require.True(t, y.AllowOverlap())
}

func TestLoadErrors(t *testing.T) {
	reg := distribution.NewRegistry()
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"unknown input", `
activities:
  - code: A
    exchanges: [{input: Z, amount: 1}]
`, inventory.ErrUnknownActivity},
		{"duplicate code", `
activities:
  - code: A
  - code: A
`, inventory.ErrDuplicateActivity},
		{"unknown field", `
activities:
  - code: A
    colour: blue
`, inventory.ErrDecode},
		{"biosphere from a process", `
activities:
  - code: A
  - code: B
    exchanges: [{input: A, kind: biosphere, amount: 1}]
`, inventory.ErrInvalidExchange},
		{"unknown exchange kind", `
activities:
  - code: A
  - code: B
    exchanges: [{input: A, kind: substitution, amount: 1}]
`, inventory.ErrInvalidExchange},
		{"distribution and spread", `
activities:
  - code: A
  - code: B
    exchanges:
      - input: A
        amount: 1
        spread: {start: 0, end: 1}
        distribution: {kind: temporalis.Distribution}
`, inventory.ErrDecode},
		{"unknown loader tag", `
activities:
  - code: A
  - code: B
    exchanges:
      - input: A
        amount: 1
        distribution: {kind: acme.Seasonal}
`, distribution.ErrUnknownLoaderTag},
		{"bad spread", `
activities:
  - code: A
  - code: B
    exchanges:
      - input: A
        amount: 1
        spread: {start: 4, end: 0}
`, distribution.ErrInvalidDistribution},
		{"unknown method flow", `
activities:
  - code: A
method: {CO2: 1}
`, inventory.ErrUnknownActivity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.Load(strings.NewReader(tc.src), reg)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestCheckExchangesReportsPair(t *testing.T) {
	td, err := distribution.NewRelative([]int64{1, 2, 3}, []float64{0.98 / 3, 0.98 / 3, 0.98 / 3})
	require.NoError(t, err)
	inv := &inventory.Inventory{
		Activities: []inventory.Activity{
			{ID: 1, Code: "f", Name: "e", Database: "test", Kind: inventory.Process},
			{ID: 2, Code: "b", Name: "a", Database: "test", Kind: inventory.Process},
		},
		Exchanges: []inventory.Exchange{
			{Input: 1, Output: 2, Kind: inventory.Technosphere, Amount: 4.5, Distribution: td},
		},
	}
	require.NoError(t, inv.Validate())

	err = inv.CheckExchanges(distribution.DefaultCongruenceTolerance)
	require.ErrorIs(t, err, distribution.ErrIncongruentDistribution)
	msg := err.Error()
	require.Contains(t, msg, "input e (test|f) id 1")
	require.Contains(t, msg, "output a (test|b) id 2")
	require.Contains(t, msg, "exchange amount 4.5000e+00")
	require.Contains(t, msg, "temporal distribution sum 4.4100e+00")

	require.NoError(t, inv.CheckExchanges(0.05))
}
