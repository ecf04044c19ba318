// SPDX-License-Identifier: MIT

package inventory

import (
	"context"
)

type pair struct{ input, output int }

// MemoryStore answers exchange lookups from an in-memory inventory.
// It is read-only after construction and safe for concurrent readers.
type MemoryStore struct {
	byPair map[pair][]Exchange
}

// NewMemoryStore indexes the exchanges of inv by (input, output).
func NewMemoryStore(inv *Inventory) *MemoryStore {
	s := &MemoryStore{byPair: make(map[pair][]Exchange, len(inv.Exchanges))}
	for _, e := range inv.Exchanges {
		k := pair{e.Input, e.Output}
		s.byPair[k] = append(s.byPair[k], e)
	}

	return s
}

// Exchanges returns every exchange from input to output, in inventory order.
// An activity's production of its own product is not an edge and is left out.
func (s *MemoryStore) Exchanges(ctx context.Context, input, output int) ([]Exchange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all := s.byPair[pair{input, output}]
	out := make([]Exchange, 0, len(all))
	for _, e := range all {
		if e.Kind != Production || e.Input != e.Output {
			out = append(out, e)
		}
	}

	return out, nil
}
