// SPDX-License-Identifier: MIT

// Package temporalis is a dynamic life cycle assessment toolkit: it spreads
// the emissions of a product system over time by carrying temporal
// distributions along every edge of its supply graph.
//
// What is in the box?
//
//	convolution/  consolidation and convolution kernels over (time, amount) series
//	distribution/ temporal distributions, Fixed and FixedTimeOfYear variants,
//	                builders, simplification, portable JSON records
//	timeline/     flow records, flattened tables, yearly sums, climate characterization
//	inventory/    activities, exchanges, YAML loading, in-memory exchange store
//	matrix/       dense matrices and LU solves
//	lca/          static LCA and cutoff-driven graph traversal
//	traversal/    the timeline builder walking the graph
//	sqlitestore/  SQLite persistence of inventories
//	cmd/temporalis command line front end
//
// Quick example:
//
//	A ──5──▶ B ──2──▶ C
//	         │
//	         └──4──▶ D
//
// A consumes 5 B spread over four years; B emits its CO2 ten to seventeen
// years after it is used. The timeline of one A lists every emission at the
// date it happens, not summed into one number.
//
//	go install github.com/katalvlaran/temporalis/cmd/temporalis@latest
//	temporalis run inventory.yaml --start 2024-01-01
package temporalis
