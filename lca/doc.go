// SPDX-License-Identifier: MIT

// Package lca is the static life cycle assessment the timeline builder
// relies on: matrices built from an inventory, a supply solve, unit
// cumulative scores and a cutoff-driven walk of the supply graph.
//
// Matrices:
//
//	A  technosphere, processes × processes. A[i][j] is the product i that one
//	   unit of activity j makes (positive) or consumes (negative).
//	B  biosphere, flows × processes. B[f][j] is the flow f one unit of
//	   activity j emits.
//	c  characterization factors per flow.
//
// Calculate solves A·s = d for the activity levels s, and Aᵀ·u = Bᵀ·c for
// the cumulative score u of one unit of each product. The total score is
// d·u.
//
// Traverse starts at the functional unit and expands nodes best first by
// absolute cumulative score. Every visit of an activity is a new node with
// its own unique id, counted from 0 in creation order. A child whose score
// is below Cutoff × |total| is left out; static activities are kept as nodes
// but not expanded; at most MaxCalculations nodes are expanded.
//
// Errors (sentinel):
//
//   - ErrEmptyDemand     no demand given.
//   - ErrUnknownActivity demand or lookup naming an id that is not in the matrices.
//   - ErrNotCalculated   scores requested before Calculate.
//
// An *LCA is not safe for concurrent mutation; once calculated, concurrent
// reads and traversals are safe.
package lca
