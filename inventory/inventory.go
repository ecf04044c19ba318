// SPDX-License-Identifier: MIT

package inventory

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/temporalis/distribution"
)

// Inventory is a set of activities, the exchanges between them, a
// characterization method and an optional default demand.
type Inventory struct {
	Activities []Activity
	Exchanges  []Exchange
	// Method maps flow ids to characterization factors.
	Method map[int]float64
	// Demand maps process ids to the amount of product requested.
	Demand map[int]float64
}

// Activity returns the activity with the given id.
func (inv *Inventory) Activity(id int) (Activity, bool) {
	for _, a := range inv.Activities {
		if a.ID == id {
			return a, true
		}
	}

	return Activity{}, false
}

// ByCode returns the activity with the given code.
func (inv *Inventory) ByCode(code string) (Activity, bool) {
	for _, a := range inv.Activities {
		if a.Code == code {
			return a, true
		}
	}

	return Activity{}, false
}

// IDs returns the ids of all activities of one kind, ascending.
func (inv *Inventory) IDs(kind ActivityKind) []int {
	out := make([]int, 0, len(inv.Activities))
	for _, a := range inv.Activities {
		if a.Kind == kind {
			out = append(out, a.ID)
		}
	}
	sort.Ints(out)

	return out
}

// StaticActivities returns the set of static process ids.
func (inv *Inventory) StaticActivities() map[int]struct{} {
	out := make(map[int]struct{})
	for _, a := range inv.Activities {
		if a.Static {
			out[a.ID] = struct{}{}
		}
	}

	return out
}

// Validate checks ids and codes are unique, every exchange references known
// activities and each exchange kind fits its endpoints:
//
//	production, technosphere: process → process
//	biosphere:                flow → process
func (inv *Inventory) Validate() error {
	kinds := make(map[int]ActivityKind, len(inv.Activities))
	codes := make(map[string]struct{}, len(inv.Activities))
	for _, a := range inv.Activities {
		if _, dup := kinds[a.ID]; dup {
			return errors.Wrapf(ErrDuplicateActivity, "id %d", a.ID)
		}
		if _, dup := codes[a.Code]; dup && a.Code != "" {
			return errors.Wrapf(ErrDuplicateActivity, "code %q", a.Code)
		}
		if a.Kind != Process && a.Kind != Flow {
			return errors.Wrapf(ErrInvalidExchange, "activity %d has unknown kind %q", a.ID, a.Kind)
		}
		kinds[a.ID] = a.Kind
		codes[a.Code] = struct{}{}
	}

	for i, e := range inv.Exchanges {
		in, ok := kinds[e.Input]
		if !ok {
			return errors.Wrapf(ErrUnknownActivity, "exchange %d: input %d", i, e.Input)
		}
		out, ok := kinds[e.Output]
		if !ok {
			return errors.Wrapf(ErrUnknownActivity, "exchange %d: output %d", i, e.Output)
		}
		if out != Process {
			return errors.Wrapf(ErrInvalidExchange, "exchange %d: output %d is not a process", i, e.Output)
		}
		switch e.Kind {
		case Production, Technosphere:
			if in != Process {
				return errors.Wrapf(ErrInvalidExchange, "exchange %d: %s input %d is not a process", i, e.Kind, e.Input)
			}
		case Biosphere:
			if in != Flow {
				return errors.Wrapf(ErrInvalidExchange, "exchange %d: biosphere input %d is not a flow", i, e.Input)
			}
		default:
			return errors.Wrapf(ErrInvalidExchange, "exchange %d: unknown kind %q", i, e.Kind)
		}
	}

	return nil
}

// CheckExchanges verifies every exchange carrying a temporal distribution:
// the distribution must total one within the relative tolerance. The first
// offending exchange is reported with both activities, the exchange amount
// and amount times the distribution total.
func (inv *Inventory) CheckExchanges(tolerance float64) error {
	for _, e := range inv.Exchanges {
		td, ok := e.Distribution.(distribution.Temporal)
		if !ok {
			continue
		}
		if err := distribution.CheckCongruent(td, e.Amount, tolerance); err != nil {
			in, _ := inv.Activity(e.Input)
			out, _ := inv.Activity(e.Output)
			return errors.Wrapf(err, "input %s id %d, output %s id %d", in.Label(), e.Input, out.Label(), e.Output)
		}
	}

	return nil
}

// ProductionAmount returns the summed production exchanges of a process,
// or 1 when it declares none.
func (inv *Inventory) ProductionAmount(id int) float64 {
	var (
		sum   float64
		found bool
	)
	for _, e := range inv.Exchanges {
		if e.Kind == Production && e.Output == id && e.Input == id {
			sum += e.Amount
			found = true
		}
	}
	if !found {
		return 1
	}

	return sum
}
