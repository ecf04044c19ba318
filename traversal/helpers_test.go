package traversal_test

import (
	"context"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/traversal"
)

// half claims every product and halves it.
type half struct{}

func (half) TakesPrecedence() bool { return true }

func (half) Multiply(other distribution.Factor) (distribution.Factor, error) {
	switch o := other.(type) {
	case distribution.Scalar:
		return o * 0.5, nil
	case *distribution.Distribution:
		return o.Scale(0.5), nil
	}
	return nil, distribution.ErrUnsupportedOperand
}

// fixedGraph returns the same graph for every traversal.
type fixedGraph struct{ g *traversal.Graph }

func (f fixedGraph) Traverse(context.Context, traversal.Params) (*traversal.Graph, error) {
	return f.g, nil
}

// brokenGraph has an edge to a node it does not list.
type brokenGraph struct{}

func (brokenGraph) Traverse(context.Context, traversal.Params) (*traversal.Graph, error) {
	return &traversal.Graph{
		Nodes: map[int]traversal.Node{-1: {UniqueID: -1}},
		Edges: []traversal.Edge{{ConsumerID: -1, ProducerID: 42, Amount: 1}},
	}, nil
}
