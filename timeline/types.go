// SPDX-License-Identifier: MIT

package timeline

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/temporalis/distribution"
)

// Sentinel errors.
var (
	// ErrEmptyTimeline is returned by Table when nothing was ever recorded.
	ErrEmptyTimeline = errors.New("timeline: timeline is empty")

	// ErrNotAbsolute is returned by Add when the distribution is not pinned to dates.
	ErrNotAbsolute = errors.New("timeline: distribution must be absolute")

	// ErrNilDistribution is returned by Add for a nil distribution.
	ErrNilDistribution = errors.New("timeline: nil distribution")
)

// FlowRecord is one flow emitted by one activity over time.
type FlowRecord struct {
	Distribution *distribution.Distribution
	Flow         int
	Activity     int
}

// Row is one flattened timeline entry. Time is in epoch seconds.
type Row struct {
	Time     int64   `json:"time"`
	Amount   float64 `json:"amount"`
	Flow     int     `json:"flow"`
	Activity int     `json:"activity"`
}

// Date returns the row time as a UTC time.Time.
func (r Row) Date() time.Time { return time.Unix(r.Time, 0).UTC() }

// Table is a flattened timeline sorted by time.
type Table []Row
