package timeline_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/timeline"
)

func date(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

func absolute(t *testing.T, times []int64, amounts []float64) *distribution.Distribution {
	t.Helper()
	d, err := distribution.NewAbsolute(times, amounts)
	require.NoError(t, err)
	return d
}

// sample mirrors a small inventory: flow 1 from activity 2 in December 2020,
// flow 3 from activity 4 in May 2022.
func sample(t *testing.T) *timeline.Timeline {
	t.Helper()
	tl := timeline.New()
	require.NoError(t, tl.Add(absolute(t,
		[]int64{date(2020, time.December, 20), date(2020, time.December, 21)}, []float64{10, 9}), 1, 2))
	require.NoError(t, tl.Add(absolute(t,
		[]int64{date(2020, time.December, 15), date(2020, time.December, 16)}, []float64{20, 19}), 1, 2))
	require.NoError(t, tl.Add(absolute(t,
		[]int64{date(2022, time.May, 25), date(2022, time.May, 26)}, []float64{50, 49}), 3, 4))
	return tl
}

func TestAdd(t *testing.T) {
	tl := timeline.New()
	require.NotEqual(t, uuid.Nil, tl.ID)

	require.NoError(t, tl.Add(absolute(t, []int64{1, 2, 3}, []float64{0, 5, 0}), 7, 8))
	recs := tl.Records()
	require.Len(t, recs, 1)
	require.Equal(t, []int64{2}, recs[0].Distribution.Times())
	require.Equal(t, 7, recs[0].Flow)
	require.Equal(t, 8, recs[0].Activity)

	// Nothing but zeros: nothing recorded.
	require.NoError(t, tl.Add(absolute(t, []int64{1}, []float64{0}), 7, 8))
	require.Equal(t, 1, tl.Len())

	rel, err := distribution.NewRelative([]int64{1}, []float64{1})
	require.NoError(t, err)
	require.ErrorIs(t, tl.Add(rel, 7, 8), timeline.ErrNotAbsolute)
	require.ErrorIs(t, tl.Add(nil, 7, 8), timeline.ErrNilDistribution)
}

func TestTableSortedByTime(t *testing.T) {
	tbl, err := sample(t).Table()
	require.NoError(t, err)
	require.Equal(t, timeline.Table{
		{Time: date(2020, time.December, 15), Amount: 20, Flow: 1, Activity: 2},
		{Time: date(2020, time.December, 16), Amount: 19, Flow: 1, Activity: 2},
		{Time: date(2020, time.December, 20), Amount: 10, Flow: 1, Activity: 2},
		{Time: date(2020, time.December, 21), Amount: 9, Flow: 1, Activity: 2},
		{Time: date(2022, time.May, 25), Amount: 50, Flow: 3, Activity: 4},
		{Time: date(2022, time.May, 26), Amount: 49, Flow: 3, Activity: 4},
	}, tbl)
	require.Equal(t, 157.0, tbl.Total())
	require.Equal(t, "2022-05-26", tbl[5].Date().Format("2006-01-02"))
}

func TestTableStableForEqualTimes(t *testing.T) {
	tl := timeline.New()
	require.NoError(t, tl.Add(absolute(t, []int64{10}, []float64{1}), 5, 1))
	require.NoError(t, tl.Add(absolute(t, []int64{10}, []float64{2}), 4, 1))

	tbl, err := tl.Table()
	require.NoError(t, err)
	require.Equal(t, 5, tbl[0].Flow)
	require.Equal(t, 4, tbl[1].Flow)
}

func TestTableEmpty(t *testing.T) {
	_, err := timeline.New().Table()
	require.ErrorIs(t, err, timeline.ErrEmptyTimeline)
}

func TestFilterAndTotals(t *testing.T) {
	tl := sample(t)

	require.Equal(t, 157.0, tl.Total())
	require.Equal(t, 58.0, tl.Total(timeline.ByFlow(1)))
	require.Equal(t, 99.0, tl.Total(timeline.ByActivity(4)))
	require.Equal(t, 0.0, tl.Total(timeline.ByFlow(1), timeline.ByActivity(4)))
	require.Equal(t, 58.0, tl.Total(timeline.ByPair(1, 2)))

	sub := tl.Filter(timeline.ByFlow(3))
	require.Equal(t, 1, sub.Len())
	require.Equal(t, tl.ID, sub.ID)
	require.Equal(t, 3, tl.Len())

	require.Equal(t, []int{1, 3}, tl.Flows())
	require.Equal(t, []int{2, 4}, tl.Activities())
}

func TestSumByYear(t *testing.T) {
	tbl, err := sample(t).Table()
	require.NoError(t, err)

	require.Equal(t, timeline.Table{
		{Time: date(2020, time.January, 1), Amount: 58, Flow: 1, Activity: 2},
		{Time: date(2022, time.January, 1), Amount: 99, Flow: 3, Activity: 4},
	}, tbl.SumByYear())
}
