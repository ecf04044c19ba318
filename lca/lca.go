// SPDX-License-Identifier: MIT

package lca

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/temporalis/inventory"
	"github.com/katalvlaran/temporalis/matrix"
)

// LCA holds the matrices of one inventory and, once calculated, the supply
// and unit scores for one demand.
type LCA struct {
	processes []int       // column/row index → process id
	flows     []int       // row index → flow id
	procIdx   map[int]int // process id → index
	flowIdx   map[int]int // flow id → index
	tech      *matrix.Dense
	bio       *matrix.Dense // nil without flows
	cf        []float64
	demand    []float64
	log       *zap.Logger

	calculated bool
	supply     []float64 // activity levels
	unit       []float64 // cumulative score per unit of product
	direct     []float64 // direct score per unit of activity
	score      float64
}

// New builds the matrices of inv for the given demand (process id → amount).
// A nil demand falls back to inv.Demand.
//
// Every process produces one unit of its product unless it declares a
// production exchange. Exchanges are summed per cell.
func New(inv *inventory.Inventory, demand map[int]float64, opts ...Option) (*LCA, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if demand == nil {
		demand = inv.Demand
	}
	if len(demand) == 0 {
		return nil, ErrEmptyDemand
	}

	l := &LCA{
		processes: inv.IDs(inventory.Process),
		flows:     inv.IDs(inventory.Flow),
		log:       cfg.Logger,
	}
	if len(l.processes) == 0 {
		return nil, errors.Wrap(ErrUnknownActivity, "inventory has no process")
	}
	l.procIdx = indexOf(l.processes)
	l.flowIdx = indexOf(l.flows)

	// Stage 1: technosphere, with the reference production on the diagonal.
	var err error
	if l.tech, err = matrix.NewDense(len(l.processes), len(l.processes)); err != nil {
		return nil, err
	}
	for j, id := range l.processes {
		if err = l.tech.Set(j, j, inv.ProductionAmount(id)); err != nil {
			return nil, err
		}
	}
	if len(l.flows) > 0 {
		if l.bio, err = matrix.NewDense(len(l.flows), len(l.processes)); err != nil {
			return nil, err
		}
	}

	// Stage 2: exchanges.
	for _, e := range inv.Exchanges {
		j := l.procIdx[e.Output]
		switch e.Kind {
		case inventory.Production:
			if e.Input != e.Output {
				err = l.tech.Add(l.procIdx[e.Input], j, e.Amount)
			}
		case inventory.Technosphere:
			err = l.tech.Add(l.procIdx[e.Input], j, -e.Amount)
		case inventory.Biosphere:
			err = l.bio.Add(l.flowIdx[e.Input], j, e.Amount)
		}
		if err != nil {
			return nil, err
		}
	}

	// Stage 3: characterization and demand.
	l.cf = make([]float64, len(l.flows))
	for id, v := range inv.Method {
		i, ok := l.flowIdx[id]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownActivity, "characterization factor for flow %d", id)
		}
		l.cf[i] = v
	}
	l.demand = make([]float64, len(l.processes))
	for id, v := range demand {
		j, ok := l.procIdx[id]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownActivity, "demand for process %d", id)
		}
		l.demand[j] = v
	}

	l.log.Debug("matrices built",
		zap.Int("processes", len(l.processes)),
		zap.Int("flows", len(l.flows)),
		zap.Int("exchanges", len(inv.Exchanges)),
	)

	return l, nil
}

func indexOf(ids []int) map[int]int {
	out := make(map[int]int, len(ids))
	for i, id := range ids {
		out[id] = i
	}

	return out
}

// PatchTechnosphere overwrites the technosphere cell of product (the
// producing process) used by activity. Consumption is negative. The LCA
// must be calculated again afterwards.
func (l *LCA) PatchTechnosphere(product, activity int, value float64) error {
	i, ok := l.procIdx[product]
	if !ok {
		return errors.Wrapf(ErrUnknownActivity, "product %d", product)
	}
	j, ok := l.procIdx[activity]
	if !ok {
		return errors.Wrapf(ErrUnknownActivity, "activity %d", activity)
	}
	if err := l.tech.Set(i, j, value); err != nil {
		return err
	}
	l.calculated = false

	return nil
}

// Calculate solves the supply and the unit scores.
func (l *LCA) Calculate() error {
	lu, err := matrix.Factorize(l.tech)
	if err != nil {
		return errors.Wrap(err, "lca: technosphere")
	}
	if l.supply, err = lu.Solve(l.demand); err != nil {
		return err
	}

	l.direct = make([]float64, len(l.processes))
	if l.bio != nil {
		if l.direct, err = l.bio.VecMat(l.cf); err != nil {
			return err
		}
	}
	if l.unit, err = lu.SolveT(l.direct); err != nil {
		return err
	}

	l.score = 0
	for j, d := range l.demand {
		l.score += d * l.unit[j]
	}
	l.calculated = true
	l.log.Info("lca calculated", zap.Float64("score", l.score))

	return nil
}

// Score returns the total characterized score.
func (l *LCA) Score() (float64, error) {
	if !l.calculated {
		return 0, ErrNotCalculated
	}

	return l.score, nil
}

// Supply returns the activity level of every process needed by the demand.
func (l *LCA) Supply() (map[int]float64, error) {
	if !l.calculated {
		return nil, ErrNotCalculated
	}
	out := make(map[int]float64, len(l.processes))
	for j, id := range l.processes {
		out[id] = l.supply[j]
	}

	return out, nil
}

// UnitScore returns the cumulative score of one unit of the product of a process.
func (l *LCA) UnitScore(id int) (float64, error) {
	if !l.calculated {
		return 0, ErrNotCalculated
	}
	j, ok := l.procIdx[id]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownActivity, "process %d", id)
	}

	return l.unit[j], nil
}

// Processes returns the process ids in matrix order.
func (l *LCA) Processes() []int { return append([]int(nil), l.processes...) }

// Flows returns the flow ids in matrix order.
func (l *LCA) Flows() []int { return append([]int(nil), l.flows...) }

// TechnosphereValue returns A[product][activity].
func (l *LCA) TechnosphereValue(product, activity int) (float64, error) {
	i, ok := l.procIdx[product]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownActivity, "product %d", product)
	}
	j, ok := l.procIdx[activity]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownActivity, "activity %d", activity)
	}

	return l.tech.At(i, j)
}

// BiosphereValue returns B[flow][activity].
func (l *LCA) BiosphereValue(flow, activity int) (float64, error) {
	i, ok := l.flowIdx[flow]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownActivity, "flow %d", flow)
	}
	j, ok := l.procIdx[activity]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownActivity, "activity %d", activity)
	}

	return l.bio.At(i, j)
}

// demanded returns the demanded process ids, ascending.
func (l *LCA) demanded() []int {
	out := make([]int, 0, len(l.processes))
	for j, d := range l.demand {
		if d != 0 {
			out = append(out, l.processes[j])
		}
	}

	return out
}
