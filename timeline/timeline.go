// SPDX-License-Identifier: MIT

package timeline

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/katalvlaran/temporalis/distribution"
)

// Timeline accumulates flow records in insertion order.
type Timeline struct {
	// ID identifies the run that produced the timeline.
	ID      uuid.UUID
	records []FlowRecord
}

// New returns an empty timeline with a fresh random ID.
func New() *Timeline {
	return &Timeline{ID: uuid.New()}
}

// Add records d for (flow, activity). Zero-amount points are dropped first;
// a distribution with nothing but zeros leaves the timeline unchanged.
func (t *Timeline) Add(d *distribution.Distribution, flow, activity int) error {
	if d == nil {
		return errors.Wrapf(ErrNilDistribution, "flow %d, activity %d", flow, activity)
	}
	if d.Basis() != distribution.Absolute {
		return errors.Wrapf(ErrNotAbsolute, "flow %d, activity %d: got %s", flow, activity, d.Basis())
	}
	nz, err := d.Nonzero()
	if errors.Is(err, distribution.ErrInvalidDistribution) {
		return nil
	}
	if err != nil {
		return err
	}
	t.records = append(t.records, FlowRecord{Distribution: nz, Flow: flow, Activity: activity})

	return nil
}

// Len returns the number of records.
func (t *Timeline) Len() int { return len(t.records) }

// Records returns the records in insertion order. The slice is a copy; the
// distributions are immutable and shared.
func (t *Timeline) Records() []FlowRecord {
	return append([]FlowRecord(nil), t.records...)
}

// Match selects records by flow and/or activity.
type Match func(FlowRecord) bool

// ByFlow matches records of one flow.
func ByFlow(flow int) Match { return func(r FlowRecord) bool { return r.Flow == flow } }

// ByActivity matches records of one activity.
func ByActivity(activity int) Match { return func(r FlowRecord) bool { return r.Activity == activity } }

// ByPair matches records of one flow emitted by one activity.
func ByPair(flow, activity int) Match {
	return func(r FlowRecord) bool { return r.Flow == flow && r.Activity == activity }
}

// Filter returns a new timeline, sharing the ID, with the records every
// match accepts.
func (t *Timeline) Filter(match ...Match) *Timeline {
	out := &Timeline{ID: t.ID}
	for _, r := range t.records {
		if accepts(r, match) {
			out.records = append(out.records, r)
		}
	}

	return out
}

// Total sums the amounts of the records every match accepts.
func (t *Timeline) Total(match ...Match) float64 {
	var sum float64
	for _, r := range t.records {
		if accepts(r, match) {
			sum += r.Distribution.Total()
		}
	}

	return sum
}

func accepts(r FlowRecord, match []Match) bool {
	for _, m := range match {
		if !m(r) {
			return false
		}
	}

	return true
}

// Flows returns the distinct flow ids, ascending.
func (t *Timeline) Flows() []int {
	return distinct(t.records, func(r FlowRecord) int { return r.Flow })
}

// Activities returns the distinct activity ids, ascending.
func (t *Timeline) Activities() []int {
	return distinct(t.records, func(r FlowRecord) int { return r.Activity })
}

func distinct(records []FlowRecord, key func(FlowRecord) int) []int {
	seen := make(map[int]struct{}, len(records))
	out := make([]int, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Ints(out)

	return out
}

// Table flattens the timeline into rows sorted ascending by time. Rows with
// equal times keep insertion order. Fails with ErrEmptyTimeline when there
// are no records.
func (t *Timeline) Table() (Table, error) {
	n := 0
	for _, r := range t.records {
		n += r.Distribution.Len()
	}
	if n == 0 {
		return nil, errors.Wrapf(ErrEmptyTimeline, "timeline %s", t.ID)
	}

	rows := make(Table, 0, n)
	for _, r := range t.records {
		for i := 0; i < r.Distribution.Len(); i++ {
			tm, amount := r.Distribution.At(i)
			rows = append(rows, Row{Time: tm, Amount: amount, Flow: r.Flow, Activity: r.Activity})
		}
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Time < rows[b].Time })

	return rows, nil
}
