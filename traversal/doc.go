// SPDX-License-Identifier: MIT

// Package traversal builds the timeline of a dynamic LCA by walking the
// supply graph from the functional unit and convolving temporal
// distributions along every edge.
//
// Overview:
//
//   - A Traverser (the graph collaborator) returns the finite set of nodes,
//     edges and biosphere flows worth visiting, with cumulative scores.
//   - Matrices gives the technosphere and biosphere cell values the edge
//     magnitudes are drawn from.
//   - An ExchangeStore returns the raw exchange records of a
//     (producer, consumer) or (flow, activity) pair, possibly carrying
//     temporal distributions.
//
// Algorithm:
//
//	root := Absolute{start: 1}
//	push every edge leaving the functional unit as root × edge amount
//	while the queue is not empty:
//	    pop the entry with the smallest 1/cumulative score
//	    for each biosphere flow of the node:
//	        timeline += simplify(value × exchange value)
//	    for each edge feeding the node:
//	        push producer with value × exchange value / reference production
//
// Entries with equal priority pop in insertion order.
//
// Exchange values:
//
//   - Drawn from the matrix (the default), the magnitude of an edge is the
//     matrix cell, so matrix patches are honoured. A stored distribution is
//     rescaled to that magnitude; a technosphere pair without a record
//     degrades to the scalar cell value.
//   - Otherwise magnitudes are the raw exchange amounts and a missing
//     technosphere record is ErrExchangeNotFound.
//   - Several biosphere records for one pair share the magnitude by their
//     amounts. Several technosphere records for one pair are ambiguous and
//     fail with *MultipleExchangesError.
//
// Errors (sentinel):
//
//   - ErrMultipleExchanges  (matched by *MultipleExchangesError)
//   - ErrExchangeNotFound
//   - ErrUnknownNode        an edge refers to a node the graph lacks.
//   - ErrNilCollaborator    a nil Traverser, Matrices or ExchangeStore.
//
// A run is single-threaded; concurrent runs need their own collaborators
// unless those are immutable.
package traversal
