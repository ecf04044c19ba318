// SPDX-License-Identifier: MIT

// Package sqlitestore keeps inventories in a SQLite database and answers
// exchange lookups from it during timeline builds.
//
// Distributions are stored as their JSON records and decoded through a
// distribution.Registry on every lookup, so plugin kinds registered by the
// host application come back as the right type. The pure-Go driver
// modernc.org/sqlite is used; no cgo is needed.
//
// Errors (sentinel):
//
//   - ErrUnencodable  a distribution without a portable record.
//
// Database errors are wrapped with the statement they came from.
package sqlitestore
