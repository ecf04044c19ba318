// SPDX-License-Identifier: MIT

package traversal

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
)

// Sentinel errors.
var (
	// ErrMultipleExchanges signals more than one technosphere record for one
	// producer/consumer pair.
	ErrMultipleExchanges = errors.New("traversal: multiple technosphere exchanges")

	// ErrExchangeNotFound signals a technosphere edge without an exchange record
	// while magnitudes come from the records.
	ErrExchangeNotFound = errors.New("traversal: exchange not found")

	// ErrUnknownNode signals an edge that refers to a missing node.
	ErrUnknownNode = errors.New("traversal: unknown node")

	// ErrNilCollaborator signals a nil Traverser, Matrices or ExchangeStore.
	ErrNilCollaborator = errors.New("traversal: nil collaborator")
)

// MultipleExchangesError names the ambiguous pair.
type MultipleExchangesError struct {
	Input  int // producer activity id
	Output int // consumer activity id
	Count  int
}

// Error implements error.
func (e *MultipleExchangesError) Error() string {
	return fmt.Sprintf("traversal: found %d exchanges for link between %d and %d", e.Count, e.Input, e.Output)
}

// Is makes errors.Is(err, ErrMultipleExchanges) hold.
func (e *MultipleExchangesError) Is(target error) bool { return target == ErrMultipleExchanges }

// FunctionalUnitID is the unique id of the functional unit node.
const FunctionalUnitID = -1

// Node is one visit of an activity in the supply graph. The same activity
// may appear as several nodes, one per path.
type Node struct {
	UniqueID             int
	ActivityID           int
	Supply               float64 // product amount supplied along this path
	CumulativeScore      float64 // score of Supply, upstream included
	DirectEmissionsScore float64 // score of the node's own flows
	ReferenceProduction  float64 // product output per unit of activity
}

// Edge links a consuming node to the node producing its input.
type Edge struct {
	ConsumerID int // unique id
	ProducerID int // unique id
	Amount     float64
}

// Flow is a biosphere flow emitted by a node.
type Flow struct {
	ActivityUniqueID int
	ActivityID       int
	FlowID           int
	Amount           float64
	Score            float64
}

// Graph is what a Traverser returns.
type Graph struct {
	Nodes        map[int]Node
	Edges        []Edge
	Flows        []Flow
	Calculations int
}

// Params bounds a graph traversal.
type Params struct {
	FunctionalUnitID int
	Cutoff           float64 // relative to the total score
	BiosphereCutoff  float64 // relative to the total score
	MaxCalculations  int
	StaticActivities map[int]struct{}
}

// Traverser walks the supply graph.
type Traverser interface {
	Traverse(ctx context.Context, p Params) (*Graph, error)
}

// Matrices gives read access to matrix cells. Technosphere consumption is
// stored negative.
type Matrices interface {
	TechnosphereValue(product, activity int) (float64, error)
	BiosphereValue(flow, activity int) (float64, error)
}

// ExchangeStore returns the exchange records from input to output.
type ExchangeStore interface {
	Exchanges(ctx context.Context, input, output int) ([]inventory.Exchange, error)
}

// Defaults.
const (
	DefaultCutoff          = 5e-3
	DefaultBiosphereCutoff = 1e-5
	DefaultMaxCalculations = 100_000
)

// Options configures BuildTimeline.
type Options struct {
	Start          time.Time // date of the functional unit, truncated to the UTC day
	Params         Params
	DrawFromMatrix bool
	Simplify       []distribution.SimplifyOption
	Logger         *zap.Logger
}

// Option is a functional option for BuildTimeline.
type Option func(*Options)

// DefaultOptions returns today's date, functional unit -1, cutoff 5e-3,
// biosphere cutoff 1e-5, 100000 calculations, draw from matrix and a no-op logger.
func DefaultOptions() Options {
	return Options{
		Start: time.Now().UTC(),
		Params: Params{
			FunctionalUnitID: FunctionalUnitID,
			Cutoff:           DefaultCutoff,
			BiosphereCutoff:  DefaultBiosphereCutoff,
			MaxCalculations:  DefaultMaxCalculations,
		},
		DrawFromMatrix: true,
		Logger:         zap.NewNop(),
	}
}

// WithStart sets the date of the functional unit.
func WithStart(t time.Time) Option { return func(o *Options) { o.Start = t } }

// WithFunctionalUnit sets the unique id of the functional unit node.
func WithFunctionalUnit(id int) Option {
	return func(o *Options) { o.Params.FunctionalUnitID = id }
}

// WithCutoff sets the relative score cutoff. Panics if c < 0.
func WithCutoff(c float64) Option {
	if c < 0 {
		panic("traversal: WithCutoff: cutoff must be non-negative")
	}
	return func(o *Options) { o.Params.Cutoff = c }
}

// WithBiosphereCutoff sets the relative flow cutoff. Panics if c < 0.
func WithBiosphereCutoff(c float64) Option {
	if c < 0 {
		panic("traversal: WithBiosphereCutoff: cutoff must be non-negative")
	}
	return func(o *Options) { o.Params.BiosphereCutoff = c }
}

// WithMaxCalculations bounds node expansions. Panics if n <= 0.
func WithMaxCalculations(n int) Option {
	if n <= 0 {
		panic("traversal: WithMaxCalculations: limit must be positive")
	}
	return func(o *Options) { o.Params.MaxCalculations = n }
}

// WithStaticActivities marks activities the traversal must not expand.
func WithStaticActivities(ids map[int]struct{}) Option {
	return func(o *Options) { o.Params.StaticActivities = ids }
}

// WithDrawFromMatrix chooses where edge magnitudes come from.
func WithDrawFromMatrix(on bool) Option { return func(o *Options) { o.DrawFromMatrix = on } }

// WithSimplify passes options to Distribution.Simplify for flow results.
func WithSimplify(opts ...distribution.SimplifyOption) Option {
	return func(o *Options) { o.Simplify = opts }
}

// WithLogger sets the logger. A nil logger means no logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.Logger = l
	}
}
