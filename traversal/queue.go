// SPDX-License-Identifier: MIT

package traversal

import "github.com/katalvlaran/temporalis/distribution"

// queueItem is a node waiting to be expanded with the amount that reached it.
type queueItem struct {
	priority float64             // 1 / cumulative score of node
	seq      int                 // insertion order, breaks priority ties
	value    distribution.Factor // product amount reaching node, over time
	node     Node
}

// nodePQ is a min-heap of *queueItem ordered by priority, then insertion order.
type nodePQ []*queueItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less reports whether item i goes before item j.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}

	return pq[i].seq < pq[j].seq
}

// Swap exchanges items i and j.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds an item; used by heap.Push.
func (pq *nodePQ) Push(x interface{}) {
	*pq = append(*pq, x.(*queueItem))
}

// Pop removes the last item; used by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
