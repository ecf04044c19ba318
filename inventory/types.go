// SPDX-License-Identifier: MIT

package inventory

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/temporalis/distribution"
)

// Sentinel errors.
var (
	// ErrUnknownActivity signals a reference to an activity that does not exist.
	ErrUnknownActivity = errors.New("inventory: unknown activity")

	// ErrDuplicateActivity signals two activities sharing an id or code.
	ErrDuplicateActivity = errors.New("inventory: duplicate activity")

	// ErrInvalidExchange signals an exchange whose kind does not fit its
	// endpoints, or an unknown kind.
	ErrInvalidExchange = errors.New("inventory: invalid exchange")

	// ErrDecode signals a malformed inventory file.
	ErrDecode = errors.New("inventory: cannot decode inventory")
)

// ActivityKind tells processes and elementary flows apart.
type ActivityKind string

// Activity kinds.
const (
	Process ActivityKind = "process"
	Flow    ActivityKind = "flow"
)

// ExchangeKind is the role an exchange plays for its output activity.
type ExchangeKind string

// Exchange kinds.
const (
	Production   ExchangeKind = "production"
	Technosphere ExchangeKind = "technosphere"
	Biosphere    ExchangeKind = "biosphere"
)

// Activity is a process or an elementary flow.
type Activity struct {
	ID       int
	Code     string
	Name     string
	Database string
	Kind     ActivityKind
	// Static activities are not expanded by the graph traversal.
	Static bool
}

// Label returns "name (database|code)" for messages.
func (a Activity) Label() string {
	name := a.Name
	if name == "" {
		name = a.Code
	}

	return name + " (" + a.Database + "|" + a.Code + ")"
}

// Exchange is one edge of the inventory: Input flows into Output.
type Exchange struct {
	Input  int
	Output int
	Kind   ExchangeKind
	Amount float64
	// Distribution spreads Amount over time; nil means all at once. Stored
	// distributions are shares: a Temporal one should total one.
	Distribution distribution.Factor
}
