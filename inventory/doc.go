// SPDX-License-Identifier: MIT

// Package inventory holds the activity/exchange data model of a life cycle
// inventory and the read-only exchange lookup used during traversal.
//
// An Activity is either a process (it produces a product and consumes
// others) or an elementary flow (an emission or resource). An Exchange links
// an input activity to the output activity that consumes, produces or emits
// it, with a scalar amount and an optional temporal distribution describing
// how that amount is spread in time.
//
// Inventories are usually read from YAML with Load or LoadFile:
//
//	database: example
//	activities:
//	  - code: CO2
//	    kind: flow
//	  - code: A
//	    exchanges:
//	      - input: B
//	        amount: 5
//	        spread: {start: 0, end: 4, resolution: Y, steps: 5}
//	  - code: B
//	    exchanges:
//	      - input: CO2
//	        kind: biosphere
//	        amount: 8
//	        distribution:
//	          kind: temporalis.Distribution
//	          time_basis: relative
//	          times: [315569520, 536479384]
//	          amounts: [0.5, 0.5]
//	method:
//	  CO2: 1
//	demand:
//	  A: 2
//
// Exchanges reference activities by code; the enclosing activity is the
// output. A process without a production exchange produces one unit of
// itself. Activity ids are assigned in file order unless given explicitly.
package inventory
