// SPDX-License-Identifier: MIT

package traversal

import (
	"container/heap"
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
	"github.com/katalvlaran/temporalis/timeline"
)

// Result is the outcome of BuildTimeline.
type Result struct {
	Timeline *timeline.Timeline
	Graph    *Graph
	Pops     int // queue entries expanded
	Pushes   int // queue entries created
}

// BuildTimeline traverses the supply graph through tr and accumulates every
// biosphere flow it meets, spread over time, into a new Timeline.
//
// Steps:
//  1. Traverse the graph with the configured Params.
//  2. Push every edge leaving the functional unit, valued root × edge amount,
//     where root is one unit at the start date.
//  3. Pop entries by ascending 1 / cumulative score and expand them (see
//     package doc).
//
// Errors: ErrNilCollaborator, anything the collaborators return,
// ErrUnknownNode, *MultipleExchangesError, ErrExchangeNotFound, algebra
// errors from package distribution, and ctx.Err() when ctx ends mid-run.
func BuildTimeline(ctx context.Context, tr Traverser, m Matrices, s ExchangeStore, opts ...Option) (*Result, error) {
	if tr == nil || m == nil || s == nil {
		return nil, ErrNilCollaborator
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	start := cfg.Start.UTC().Truncate(24 * time.Hour)
	root, err := distribution.FromDates([]time.Time{start}, []float64{1})
	if err != nil {
		return nil, err
	}

	g, err := tr.Traverse(ctx, cfg.Params)
	if err != nil {
		return nil, errors.Wrap(err, "traversal: graph traversal")
	}

	r := &runner{
		ctx:     ctx,
		options: cfg,
		graph:   g,
		m:       m,
		store:   s,
		tl:      timeline.New(),
		edges:   make(map[int][]Edge),
		flows:   make(map[int][]Flow),
		log:     cfg.Logger,
	}
	r.log = r.log.With(zap.String("run", r.tl.ID.String()))
	r.log.Info("building timeline",
		zap.Time("start", start),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
		zap.Int("flows", len(g.Flows)),
		zap.Int("calculations", g.Calculations),
		zap.Bool("draw_from_matrix", cfg.DrawFromMatrix),
	)

	if err = r.init(root); err != nil {
		return nil, err
	}
	if err = r.process(); err != nil {
		return nil, err
	}

	r.log.Info("timeline built",
		zap.Int("records", r.tl.Len()),
		zap.Int("pops", r.pops),
		zap.Int("pushes", r.pushes),
	)

	return &Result{Timeline: r.tl, Graph: g, Pops: r.pops, Pushes: r.pushes}, nil
}

// runner holds the mutable state of one BuildTimeline call.
type runner struct {
	ctx     context.Context
	options Options
	graph   *Graph
	m       Matrices
	store   ExchangeStore
	tl      *timeline.Timeline
	edges   map[int][]Edge // by consumer unique id
	flows   map[int][]Flow // by activity unique id
	pq      nodePQ
	seq     int
	pops    int
	pushes  int
	log     *zap.Logger
}

// init indexes the graph and seeds the queue with the functional unit's edges.
func (r *runner) init(root *distribution.Distribution) error {
	for _, e := range r.graph.Edges {
		r.edges[e.ConsumerID] = append(r.edges[e.ConsumerID], e)
	}
	for _, f := range r.graph.Flows {
		r.flows[f.ActivityUniqueID] = append(r.flows[f.ActivityUniqueID], f)
	}

	heap.Init(&r.pq)
	for _, e := range r.edges[r.options.Params.FunctionalUnitID] {
		v, err := root.Multiply(distribution.Scalar(e.Amount))
		if err != nil {
			return err
		}
		if err = r.push(e.ProducerID, v); err != nil {
			return err
		}
	}

	return nil
}

// push enqueues the node with unique id for expansion.
func (r *runner) push(uniqueID int, v distribution.Factor) error {
	node, ok := r.graph.Nodes[uniqueID]
	if !ok {
		return errors.Wrapf(ErrUnknownNode, "unique id %d", uniqueID)
	}
	heap.Push(&r.pq, &queueItem{
		priority: 1 / node.CumulativeScore,
		seq:      r.seq,
		value:    v,
		node:     node,
	})
	r.seq++
	r.pushes++

	return nil
}

// process pops nodes until the queue is empty.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		if err := r.ctx.Err(); err != nil {
			return err
		}
		item := heap.Pop(&r.pq).(*queueItem)
		r.pops++
		node := item.node
		r.log.Debug("expanding node",
			zap.Int("unique_id", node.UniqueID),
			zap.Int("activity", node.ActivityID),
			zap.Float64("cumulative_score", node.CumulativeScore),
		)

		// Amount of activity behind the product amount that reached the node.
		level, err := perUnit(item.value, node)
		if err != nil {
			return err
		}

		for _, f := range r.flows[node.UniqueID] {
			if err = r.emit(level, f, node); err != nil {
				return err
			}
		}

		for _, e := range r.edges[node.UniqueID] {
			producer, ok := r.graph.Nodes[e.ProducerID]
			if !ok {
				return errors.Wrapf(ErrUnknownNode, "producer unique id %d of consumer %d", e.ProducerID, node.UniqueID)
			}
			value, err := r.technosphereValue(producer.ActivityID, node.ActivityID)
			if err != nil {
				return err
			}
			next, err := multiply(level, value)
			if err != nil {
				return errors.Wrapf(err, "technosphere edge %d -> %d", producer.ActivityID, node.ActivityID)
			}
			if err = r.push(producer.UniqueID, next); err != nil {
				return err
			}
		}
	}

	return nil
}

// emit records the flow of one node in the timeline.
func (r *runner) emit(level distribution.Factor, f Flow, node Node) error {
	values, err := r.biosphereValues(f.FlowID, node.ActivityID)
	if err != nil {
		return err
	}
	for _, value := range values {
		out, err := multiply(level, value)
		if err != nil {
			return errors.Wrapf(err, "biosphere flow %d of activity %d", f.FlowID, node.ActivityID)
		}
		d, err := asDistribution(out)
		if err != nil {
			return errors.Wrapf(err, "biosphere flow %d of activity %d", f.FlowID, node.ActivityID)
		}
		if d, err = d.Simplify(r.options.Simplify...); err != nil {
			return err
		}
		if err = r.tl.Add(d, f.FlowID, node.ActivityID); err != nil {
			return err
		}
	}

	return nil
}

// technosphereValue resolves the value of the edge from producer to consumer
// as a chain of factors.
func (r *runner) technosphereValue(producer, consumer int) ([]distribution.Factor, error) {
	records, err := r.store.Exchanges(r.ctx, producer, consumer)
	if err != nil {
		return nil, errors.Wrapf(err, "technosphere exchanges %d -> %d", producer, consumer)
	}
	if len(records) > 1 {
		return nil, &MultipleExchangesError{Input: producer, Output: consumer, Count: len(records)}
	}

	var magnitude float64
	if r.options.DrawFromMatrix {
		cell, err := r.m.TechnosphereValue(producer, consumer)
		if err != nil {
			return nil, err
		}
		magnitude = -cell
	}
	if len(records) == 0 {
		if !r.options.DrawFromMatrix {
			return nil, errors.Wrapf(ErrExchangeNotFound, "technosphere %d -> %d", producer, consumer)
		}

		return []distribution.Factor{distribution.Scalar(magnitude)}, nil
	}
	if !r.options.DrawFromMatrix {
		magnitude = records[0].Amount
	}

	return exchangeValue(records[0], magnitude)
}

// biosphereValues resolves the values of every record linking flow to
// activity. Several records share the magnitude by their amounts.
func (r *runner) biosphereValues(flow, activity int) ([][]distribution.Factor, error) {
	records, err := r.store.Exchanges(r.ctx, flow, activity)
	if err != nil {
		return nil, errors.Wrapf(err, "biosphere exchanges %d -> %d", flow, activity)
	}

	var cell float64
	if r.options.DrawFromMatrix {
		if cell, err = r.m.BiosphereValue(flow, activity); err != nil {
			return nil, err
		}
	}
	if len(records) == 0 {
		if !r.options.DrawFromMatrix {
			return nil, errors.Wrapf(ErrExchangeNotFound, "biosphere %d -> %d", flow, activity)
		}

		return [][]distribution.Factor{{distribution.Scalar(cell)}}, nil
	}

	var sum float64
	for _, e := range records {
		sum += e.Amount
	}
	out := make([][]distribution.Factor, 0, len(records))
	for _, e := range records {
		var magnitude float64
		switch {
		case r.options.DrawFromMatrix && len(records) == 1:
			magnitude = cell
		case r.options.DrawFromMatrix:
			if sum == 0 {
				return nil, errors.Wrapf(distribution.ErrInvalidOperation,
					"biosphere %d -> %d: %d exchanges sum to zero", flow, activity, len(records))
			}
			magnitude = cell * e.Amount / sum
		case len(records) == 1:
			magnitude = e.Amount
		default:
			if sum == 0 {
				return nil, errors.Wrapf(distribution.ErrInvalidOperation,
					"biosphere %d -> %d: %d exchanges sum to zero", flow, activity, len(records))
			}
			magnitude = e.Amount / sum
		}
		value, err := exchangeValue(e, magnitude)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}

	return out, nil
}

// exchangeValue spreads magnitude with the exchange's distribution.
//
//   - no distribution: the scalar magnitude.
//   - Temporal: rescaled so its total equals magnitude.
//   - any other factor: applied as is, then scaled by magnitude.
func exchangeValue(e inventory.Exchange, magnitude float64) ([]distribution.Factor, error) {
	switch d := e.Distribution.(type) {
	case nil:
		return []distribution.Factor{distribution.Scalar(magnitude)}, nil
	case distribution.Temporal:
		total := d.Total()
		if total == 0 {
			return nil, errors.Wrapf(distribution.ErrIncongruentDistribution,
				"exchange %d -> %d: distribution sums to zero", e.Input, e.Output)
		}
		v, err := d.Multiply(distribution.Scalar(magnitude / total))
		if err != nil {
			return nil, err
		}

		return []distribution.Factor{v}, nil
	default:
		return []distribution.Factor{d, distribution.Scalar(magnitude)}, nil
	}
}

// perUnit turns the product amount reaching node into an activity amount.
func perUnit(v distribution.Factor, node Node) (distribution.Factor, error) {
	ref := node.ReferenceProduction
	if ref == 0 || ref == 1 {
		return v, nil
	}

	return v.Multiply(distribution.Scalar(1 / ref))
}

// multiply folds the chain of factors onto v, left to right.
func multiply(v distribution.Factor, chain []distribution.Factor) (distribution.Factor, error) {
	var err error
	for _, f := range chain {
		if v, err = v.Multiply(f); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// asDistribution unwraps the plain distribution behind a temporal factor.
func asDistribution(f distribution.Factor) (*distribution.Distribution, error) {
	switch v := f.(type) {
	case *distribution.Distribution:
		return v, nil
	case interface {
		Distribution() *distribution.Distribution
	}:
		return v.Distribution(), nil
	case distribution.Temporal:
		return distribution.New(v.Basis(), v.Times(), v.Amounts())
	}

	return nil, errors.Wrapf(distribution.ErrUnsupportedOperand, "%T is not a temporal distribution", f)
}
