// SPDX-License-Identifier: MIT

package lca

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Sentinel errors.
var (
	// ErrEmptyDemand signals a calculation without demand.
	ErrEmptyDemand = errors.New("lca: empty demand")

	// ErrUnknownActivity signals an id missing from the matrices.
	ErrUnknownActivity = errors.New("lca: unknown activity")

	// ErrNotCalculated signals scores requested before Calculate.
	ErrNotCalculated = errors.New("lca: not calculated")
)

// Options configures an LCA.
type Options struct {
	Logger *zap.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
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
