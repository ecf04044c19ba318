// SPDX-License-Identifier: MIT

// Package timeline collects the flow-level results of a dynamic LCA run and
// flattens them into a time-sorted table.
//
// Overview:
//
//   - A FlowRecord is one absolute temporal distribution tagged with the
//     elementary flow it quantifies and the activity that emits it.
//   - A Timeline accumulates FlowRecords in insertion order. It is owned by a
//     single traversal and is not safe for concurrent writers.
//   - Table flattens every record into (time, amount, flow, activity) rows,
//     sorted ascending by time; rows sharing a time keep insertion order.
//
// Post-processing:
//
//   - Filter / Total / Flows / Activities slice a timeline by flow or activity.
//   - Table.SumByYear groups rows by calendar year, flow and activity.
//   - CharacterizeCO2 and CharacterizeMethane turn one row into a series of
//     yearly radiative-forcing rows (W/m² per kg), marginal or cumulative;
//     Table.Characterize applies such functions per flow.
//
// Errors (sentinel):
//
//   - ErrEmptyTimeline   Table on a timeline without records.
//   - ErrNotAbsolute     Add with a relative distribution.
//   - ErrNilDistribution Add with a nil distribution.
package timeline
