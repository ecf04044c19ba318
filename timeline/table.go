// SPDX-License-Identifier: MIT

package timeline

import (
	"sort"

	"github.com/katalvlaran/temporalis/distribution"
)

// Total returns the sum of all amounts.
func (tb Table) Total() float64 {
	var sum float64
	for _, r := range tb {
		sum += r.Amount
	}

	return sum
}

// SumByYear groups rows by calendar year, flow and activity. Each output row
// is dated 1 January of its year and the result is ordered by time, flow and
// activity.
func (tb Table) SumByYear() Table {
	type key struct {
		year           int64
		flow, activity int
	}
	sums := make(map[key]float64)
	order := make([]key, 0)
	for _, r := range tb {
		k := key{year: distribution.StartOfYear(r.Time), flow: r.Flow, activity: r.Activity}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] += r.Amount
	}

	out := make(Table, len(order))
	for i, k := range order {
		out[i] = Row{Time: k.year, Amount: sums[k], Flow: k.flow, Activity: k.activity}
	}
	out.sortByKey()

	return out
}

// Characterizer turns one inventory row into impact rows.
type Characterizer func(Row) Table

// Characterize applies the characterizer registered for each row's flow and
// concatenates the results, sorted by time (stable). Rows whose flow has no
// characterizer are skipped.
func (tb Table) Characterize(by map[int]Characterizer) Table {
	out := make(Table, 0, len(tb))
	for _, r := range tb {
		fn, ok := by[r.Flow]
		if !ok {
			continue
		}
		out = append(out, fn(r)...)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Time < out[b].Time })

	return out
}

func (tb Table) sortByKey() {
	sort.Slice(tb, func(a, b int) bool {
		switch {
		case tb[a].Time != tb[b].Time:
			return tb[a].Time < tb[b].Time
		case tb[a].Flow != tb[b].Flow:
			return tb[a].Flow < tb[b].Flow
		default:
			return tb[a].Activity < tb[b].Activity
		}
	})
}
