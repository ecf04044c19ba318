// SPDX-License-Identifier: MIT

package lca

import (
	"container/heap"
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/temporalis/traversal"
)

// pending is a node waiting to be expanded.
type pending struct {
	node traversal.Node
	seq  int
}

// frontier is a max-heap of pending nodes by absolute cumulative score,
// ties in creation order.
type frontier []pending

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	a, b := math.Abs(f[i].node.CumulativeScore), math.Abs(f[j].node.CumulativeScore)
	if a != b {
		return a > b
	}

	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) { *f = append(*f, x.(pending)) }

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]

	return item
}

// walker holds the state of one Traverse call.
type walker struct {
	l      *LCA
	p      traversal.Params
	g      *traversal.Graph
	queue  frontier
	next   int     // next unique id
	cutoff float64 // absolute score cutoff for nodes
}

// Traverse implements traversal.Traverser. The functional unit becomes the
// node p.FunctionalUnitID with activity id -1 and the total score.
//
// Flows are reported for expanded nodes only, sorted by score descending,
// and kept when |score| >= BiosphereCutoff × |total|.
func (l *LCA) Traverse(ctx context.Context, p traversal.Params) (*traversal.Graph, error) {
	if !l.calculated {
		return nil, ErrNotCalculated
	}
	w := &walker{
		l: l,
		p: p,
		g: &traversal.Graph{
			Nodes: make(map[int]traversal.Node),
		},
		cutoff: p.Cutoff * math.Abs(l.score),
	}

	// Stage 1: the functional unit and the demanded products.
	fu := traversal.Node{
		UniqueID:            p.FunctionalUnitID,
		ActivityID:          -1,
		Supply:              1,
		CumulativeScore:     l.score,
		ReferenceProduction: 1,
	}
	w.g.Nodes[fu.UniqueID] = fu
	w.g.Calculations++
	for _, id := range l.demanded() {
		j := l.procIdx[id]
		w.visit(fu, j, l.demand[j])
	}

	// Stage 2: best first expansion.
	for w.queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.MaxCalculations > 0 && w.g.Calculations >= p.MaxCalculations {
			l.log.Warn("traversal stopped at max calculations",
				zap.Int("max_calculations", p.MaxCalculations),
				zap.Int("pending", w.queue.Len()),
			)
			break
		}
		item := heap.Pop(&w.queue).(pending)
		w.expand(item.node)
		w.g.Calculations++
	}

	// Stage 3: finalize flows.
	sort.SliceStable(w.g.Flows, func(a, b int) bool { return w.g.Flows[a].Score > w.g.Flows[b].Score })
	l.log.Debug("graph traversed",
		zap.Int("nodes", len(w.g.Nodes)),
		zap.Int("edges", len(w.g.Edges)),
		zap.Int("flows", len(w.g.Flows)),
		zap.Int("calculations", w.g.Calculations),
	)

	return w.g, nil
}

// visit adds the node supplying amount of product j to consumer, unless it
// falls below the cutoff.
func (w *walker) visit(consumer traversal.Node, j int, amount float64) {
	score := amount * w.l.unit[j]
	if math.Abs(score) < w.cutoff {
		return
	}
	ref, _ := w.l.tech.At(j, j)
	node := traversal.Node{
		UniqueID:            w.next,
		ActivityID:          w.l.processes[j],
		Supply:              amount,
		CumulativeScore:     score,
		ReferenceProduction: ref,
	}
	if ref != 0 {
		node.DirectEmissionsScore = amount / ref * w.l.direct[j]
	}
	w.next++
	w.g.Nodes[node.UniqueID] = node
	w.g.Edges = append(w.g.Edges, traversal.Edge{
		ConsumerID: consumer.UniqueID,
		ProducerID: node.UniqueID,
		Amount:     amount,
	})
	if _, static := w.p.StaticActivities[node.ActivityID]; static {
		return
	}
	heap.Push(&w.queue, pending{node: node, seq: node.UniqueID})
}

// expand reports the flows of node and visits its inputs in product order.
func (w *walker) expand(node traversal.Node) {
	j := w.l.procIdx[node.ActivityID]
	if node.ReferenceProduction == 0 {
		return
	}
	level := node.Supply / node.ReferenceProduction

	flowCutoff := w.p.BiosphereCutoff * math.Abs(w.l.score)
	for f, id := range w.l.flows {
		b, _ := w.l.bio.At(f, j)
		if b == 0 {
			continue
		}
		amount := level * b
		score := amount * w.l.cf[f]
		if math.Abs(score) < flowCutoff {
			continue
		}
		w.g.Flows = append(w.g.Flows, traversal.Flow{
			ActivityUniqueID: node.UniqueID,
			ActivityID:       node.ActivityID,
			FlowID:           id,
			Amount:           amount,
			Score:            score,
		})
	}

	for i := range w.l.processes {
		if i == j {
			continue
		}
		a, _ := w.l.tech.At(i, j)
		if a >= 0 {
			continue
		}
		w.visit(node, i, -a*level)
	}
}
