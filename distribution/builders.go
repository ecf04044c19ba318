// SPDX-License-Identifier: MIT

package distribution

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// Shape selects how a builder spreads a unit amount over its steps.
type Shape string

// Shapes understood by the builders.
const (
	// Uniform gives every step the same amount.
	Uniform Shape = "uniform"

	// Triangular rises linearly to a mode and falls back to zero at the far
	// end; the mode defaults to the midpoint. Needs at least three steps.
	Triangular Shape = "triangular"

	// Normal follows a Gaussian density over [-0.5, 0.5] with the given sigma.
	Normal Shape = "normal"
)

// DefaultSteps is the number of points a builder produces when not told otherwise.
const DefaultSteps = 50

// Resolution names the unit of relative builder bounds.
type Resolution string

// Resolutions and their length in seconds.
const (
	Seconds Resolution = "s"
	Minutes Resolution = "m"
	Hours   Resolution = "h"
	Days    Resolution = "D"
	Months  Resolution = "M"
	Years   Resolution = "Y"
)

var resolutionSeconds = map[Resolution]int64{
	Seconds: Second,
	Minutes: Minute,
	Hours:   Hour,
	Days:    Day,
	Months:  Month,
	Years:   Year,
}

// Seconds returns the length of one unit in seconds, or 0 for unknown units.
func (r Resolution) Seconds() int64 { return resolutionSeconds[r] }

// BuildOptions configures the builders.
type BuildOptions struct {
	Steps int
	Shape Shape
	// Param is the triangular mode (in resolution units for RelativeSpan, epoch
	// seconds for AbsoluteSpan) or the normal sigma. Nil means the shape default.
	Param *float64
}

// BuildOption is a functional option for the builders.
type BuildOption func(*BuildOptions)

// WithSteps sets the number of points.
func WithSteps(n int) BuildOption { return func(o *BuildOptions) { o.Steps = n } }

// WithUniform selects the Uniform shape.
func WithUniform() BuildOption {
	return func(o *BuildOptions) { o.Shape, o.Param = Uniform, nil }
}

// WithTriangular selects the Triangular shape with its mode at the midpoint.
func WithTriangular() BuildOption {
	return func(o *BuildOptions) { o.Shape, o.Param = Triangular, nil }
}

// WithTriangularMode selects the Triangular shape with an explicit mode,
// given in resolution units for RelativeSpan.
func WithTriangularMode(mode float64) BuildOption {
	return func(o *BuildOptions) { o.Shape, o.Param = Triangular, &mode }
}

// WithTriangularDate selects the Triangular shape with its mode at a date,
// for AbsoluteSpan.
func WithTriangularDate(mode time.Time) BuildOption {
	m := float64(mode.Unix())
	return func(o *BuildOptions) { o.Shape, o.Param = Triangular, &m }
}

// WithNormal selects the Normal shape with the given sigma.
func WithNormal(sigma float64) BuildOption {
	return func(o *BuildOptions) { o.Shape, o.Param = Normal, &sigma }
}

// RelativeSpan builds a normalized (total 1) relative distribution over
// [start, end] expressed in res units.
//
// Point i sits at start + i·(end−start)/(steps−1) units, truncated toward
// zero to a whole unit, then converted to seconds.
//
// Fails with ErrInvalidDistribution for steps < 2, start >= end, an unknown
// resolution or shape, or a shape parameter out of range.
func RelativeSpan(start, end int64, res Resolution, opts ...BuildOption) (*Distribution, error) {
	unit := res.Seconds()
	if unit == 0 {
		return nil, errors.Wrapf(ErrInvalidDistribution, "unknown resolution %q", string(res))
	}
	cfg := buildOptions(opts)
	if err := checkBounds(float64(start), float64(end), cfg.Steps); err != nil {
		return nil, err
	}
	weights, err := shapeWeights(cfg, float64(start), float64(end))
	if err != nil {
		return nil, err
	}

	times := make([]int64, cfg.Steps)
	for i, x := range linspace(float64(start), float64(end), cfg.Steps) {
		times[i] = int64(x) * unit
	}

	return newOwned(Relative, times, weights), nil
}

// AbsoluteSpan builds a normalized (total 1) absolute distribution with points
// evenly spaced from start to end inclusive, truncated to whole seconds.
// Errors as for RelativeSpan.
func AbsoluteSpan(start, end time.Time, opts ...BuildOption) (*Distribution, error) {
	cfg := buildOptions(opts)
	s, e := float64(start.Unix()), float64(end.Unix())
	if err := checkBounds(s, e, cfg.Steps); err != nil {
		return nil, err
	}
	weights, err := shapeWeights(cfg, s, e)
	if err != nil {
		return nil, err
	}

	times := make([]int64, cfg.Steps)
	for i, x := range linspace(s, e, cfg.Steps) {
		times[i] = int64(x)
	}

	return newOwned(Absolute, times, weights), nil
}

func buildOptions(opts []BuildOption) BuildOptions {
	cfg := BuildOptions{Steps: DefaultSteps, Shape: Uniform}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func checkBounds(start, end float64, steps int) error {
	if steps < 2 {
		return errors.Wrapf(ErrInvalidDistribution, "need at least two steps, got %d", steps)
	}
	if start >= end {
		return errors.Wrapf(ErrInvalidDistribution, "start %v must be before end %v", start, end)
	}

	return nil
}

// linspace returns n evenly spaced values from a to b inclusive.
func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b

	return out
}

// shapeWeights returns the normalized weights of cfg.Shape over [start, end].
func shapeWeights(cfg BuildOptions, start, end float64) ([]float64, error) {
	var (
		raw []float64
		err error
	)
	switch cfg.Shape {
	case Uniform, "":
		raw, err = ShapeArray(cfg.Steps, Uniform, nil)
	case Triangular:
		var c *float64
		if cfg.Param != nil {
			if *cfg.Param < start || *cfg.Param > end {
				return nil, errors.Wrapf(ErrInvalidDistribution,
					"triangular mode %v outside [%v, %v]", *cfg.Param, start, end)
			}
			rel := (*cfg.Param - start) / (end - start)
			c = &rel
		}
		raw, err = ShapeArray(cfg.Steps, Triangular, c)
	default:
		raw, err = ShapeArray(cfg.Steps, cfg.Shape, cfg.Param)
	}
	if err != nil {
		return nil, err
	}

	var sum float64
	for _, w := range raw {
		sum += w
	}
	for i := range raw {
		raw[i] /= sum
	}

	return raw, nil
}

// ShapeArray returns the unnormalized weights of a shape sampled at n points.
//
//   - Uniform: all ones; param ignored.
//   - Triangular: density of the triangular distribution on [0, 1] with mode
//     param (default 0.5) sampled at n evenly spaced points; n >= 3 and
//     0 <= param <= 1.
//   - Normal: Gaussian density with sigma param (> 0, required) sampled at n
//     evenly spaced points of [-0.5, 0.5].
func ShapeArray(n int, shape Shape, param *float64) ([]float64, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidDistribution, "need at least one step, got %d", n)
	}
	out := make([]float64, n)
	switch shape {
	case Uniform:
		for i := range out {
			out[i] = 1
		}

	case Triangular:
		if n < 3 {
			return nil, errors.Wrapf(ErrInvalidDistribution, "triangular shape must have at least three steps, got %d", n)
		}
		c := 0.5
		if param != nil {
			c = *param
		}
		if math.IsNaN(c) || c < 0 || c > 1 {
			return nil, errors.Wrapf(ErrInvalidDistribution, "triangular mode %v outside [0, 1]", c)
		}
		for i, x := range linspace(0, 1, n) {
			switch {
			case x == c:
				out[i] = 2
			case x < c:
				out[i] = 2 * x / c
			default:
				out[i] = 2 * (1 - x) / (1 - c)
			}
		}

	case Normal:
		if param == nil || math.IsNaN(*param) || *param <= 0 {
			return nil, errors.Wrap(ErrInvalidDistribution, "normal shape needs a positive sigma")
		}
		sigma := *param
		norm := 1 / (sigma * math.Sqrt(2*math.Pi))
		for i, x := range linspace(-0.5, 0.5, n) {
			z := x / sigma
			out[i] = norm * math.Exp(-z*z/2)
		}

	default:
		return nil, errors.Wrapf(ErrInvalidDistribution, "unknown shape %q", string(shape))
	}

	return out, nil
}
