package sqlitestore_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
	"github.com/katalvlaran/temporalis/lca"
	"github.com/katalvlaran/temporalis/sqlitestore"
	"github.com/katalvlaran/temporalis/timeline"
	"github.com/katalvlaran/temporalis/traversal"
)

func loadBasic(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.LoadFile("../inventory/testdata/basic.yaml", distribution.NewRegistry())
	require.NoError(t, err)
	return inv
}

func openMemory(t *testing.T) *sqlitestore.Store {
	t.Helper()
	s, err := sqlitestore.Open(context.Background(), ":memory:", distribution.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLookup(t *testing.T) {
	ctx := context.Background()
	inv := loadBasic(t)
	s := openMemory(t)
	require.NoError(t, s.Save(ctx, inv))

	got, err := s.Exchanges(ctx, 1, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, inventory.Biosphere, got[0].Kind)
	require.Equal(t, 8.0, got[0].Amount)
	d, ok := got[0].Distribution.(*distribution.Distribution)
	require.True(t, ok)
	require.Equal(t, distribution.Relative, d.Basis())
	require.Equal(t, []int64{10 * distribution.Year, 12 * distribution.Year, 14 * distribution.Year, 17 * distribution.Year}, d.Times())

	got, err = s.Exchanges(ctx, 5, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Nil(t, got[0].Distribution)

	// Own production is not an edge.
	got, err = s.Exchanges(ctx, 4, 4)
	require.NoError(t, err)
	require.Empty(t, got)

	// Saving again replaces the inventory.
	require.NoError(t, s.Save(ctx, inv))
	got, err = s.Exchanges(ctx, 4, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	inv := loadBasic(t)
	s := openMemory(t)
	require.NoError(t, s.Save(ctx, inv))

	back, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, inv.Activities, back.Activities)
	require.Equal(t, inv.Method, back.Method)
	require.Equal(t, inv.Demand, back.Demand)
	require.Len(t, back.Exchanges, len(inv.Exchanges))
	for i, e := range inv.Exchanges {
		require.Equal(t, e.Input, back.Exchanges[i].Input)
		require.Equal(t, e.Output, back.Exchanges[i].Output)
		require.Equal(t, e.Kind, back.Exchanges[i].Kind)
		require.Equal(t, e.Amount, back.Exchanges[i].Amount)
	}
}

func TestVariantsSurvive(t *testing.T) {
	ctx := context.Background()
	inv := loadBasic(t)
	window, err := distribution.NewFixedTimeOfYear([]int64{0, 30 * distribution.Day}, []float64{0.5, 0.5}, true)
	require.NoError(t, err)
	for i, e := range inv.Exchanges {
		if e.Input == 2 && e.Output == 5 {
			inv.Exchanges[i].Distribution = window
		}
	}
	s := openMemory(t)
	require.NoError(t, s.Save(ctx, inv))

	got, err := s.Exchanges(ctx, 2, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	y, ok := got[0].Distribution.(*distribution.FixedTimeOfYear)
	require.True(t, ok)
	require.True(t, y.AllowOverlap())
	require.Equal(t, window.Times(), y.Times())
}

func TestSaveUnencodable(t *testing.T) {
	inv := loadBasic(t)
	inv.Exchanges[0].Distribution = distribution.Scalar(2)
	s := openMemory(t)

	err := s.Save(context.Background(), inv)
	require.ErrorIs(t, err, sqlitestore.ErrUnencodable)
}

func TestTimelineFromStore(t *testing.T) {
	ctx := context.Background()
	inv := loadBasic(t)
	s := openMemory(t)
	require.NoError(t, s.Save(ctx, inv))

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	l, err := lca.New(stored, nil)
	require.NoError(t, err)
	require.NoError(t, l.Calculate())

	res, err := traversal.BuildTimeline(ctx, l, l, s,
		traversal.WithStart(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.InDelta(t, 160, res.Timeline.Total(timeline.ByFlow(1)), 1e-9)
	require.InDelta(t, 10, res.Timeline.Total(timeline.ByFlow(2)), 1e-9)
}

func TestExchangesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM exchanges WHERE`).
		WithArgs(4, 3).
		WillReturnError(context.DeadlineExceeded)

	s := sqlitestore.New(db, nil)
	_, err = s.Exchanges(context.Background(), 4, 3)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Contains(t, err.Error(), "query exchanges 4 -> 3")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExchangesBadRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"input", "output", "kind", "amount", "distribution"}).
		AddRow(4, 3, "technosphere", 5.0, `{"kind":"nowhere.Thing","times":[0],"amounts":[1]}`)
	mock.ExpectQuery(`SELECT (.+) FROM exchanges WHERE`).WithArgs(4, 3).WillReturnRows(rows)

	s := sqlitestore.New(db, distribution.NewRegistry())
	_, err = s.Exchanges(context.Background(), 4, 3)
	require.ErrorIs(t, err, distribution.ErrUnknownLoaderTag)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, table := range []string{"demand", "method", "exchanges", "activities"} {
		mock.ExpectExec(`DELETE FROM ` + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`INSERT INTO activities`).WillReturnError(context.Canceled)
	mock.ExpectRollback()

	s := sqlitestore.New(db, nil)
	err = s.Save(context.Background(), loadBasic(t))
	require.ErrorIs(t, err, context.Canceled)
	require.Contains(t, err.Error(), "insert activity 1")
	require.NoError(t, mock.ExpectationsWereMet())
}
