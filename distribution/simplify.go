// SPDX-License-Identifier: MIT

package distribution

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/temporalis/convolution"
)

// Simplification defaults.
const (
	// DefaultSimplifyThreshold is the point count at or below which Simplify
	// returns the receiver unchanged; it is also the default cluster count.
	DefaultSimplifyThreshold = 1000

	// DefaultSimplifyIterations bounds the Lloyd iterations of the clustering.
	DefaultSimplifyIterations = 30
)

const (
	panicThresholdInvalid  = "distribution: WithThreshold: threshold must be positive"
	panicClustersInvalid   = "distribution: WithClusters: cluster count must be positive"
	panicIterationsInvalid = "distribution: WithIterations: iterations must be positive"
)

// SimplifyOptions configures Simplify.
type SimplifyOptions struct {
	Threshold  int // points above which clustering kicks in
	Clusters   int // target cluster count; 0 means Threshold
	Iterations int // maximum Lloyd iterations
}

// SimplifyOption is a functional option for Simplify.
type SimplifyOption func(*SimplifyOptions)

// DefaultSimplifyOptions returns threshold 1000, clusters = threshold, 30 iterations.
func DefaultSimplifyOptions() SimplifyOptions {
	return SimplifyOptions{
		Threshold:  DefaultSimplifyThreshold,
		Iterations: DefaultSimplifyIterations,
	}
}

// WithThreshold sets the point count above which Simplify clusters. Panics if n <= 0.
func WithThreshold(n int) SimplifyOption {
	if n <= 0 {
		panic(panicThresholdInvalid)
	}
	return func(o *SimplifyOptions) { o.Threshold = n }
}

// WithClusters sets the number of clusters. Panics if k <= 0.
func WithClusters(k int) SimplifyOption {
	if k <= 0 {
		panic(panicClustersInvalid)
	}
	return func(o *SimplifyOptions) { o.Clusters = k }
}

// WithIterations bounds the number of Lloyd iterations. Panics if n <= 0.
func WithIterations(n int) SimplifyOption {
	if n <= 0 {
		panic(panicIterationsInvalid)
	}
	return func(o *SimplifyOptions) { o.Iterations = n }
}

// Simplify compresses the time axis with one-dimensional k-means so that the
// result has at most k points (k = Clusters, or Threshold when unset).
//
// Behavior:
//   - Len() <= Threshold: the receiver is returned unchanged.
//   - Centers start at evenly spaced quantiles of the sorted times, so the
//     result is deterministic.
//   - Each iteration assigns every point to its nearest center and moves the
//     center to the mean time of its members; empty clusters keep their
//     position and vanish from the output. Iteration stops early once no
//     assignment changes.
//   - Each point's amount moves to its center; centers are consolidated, so
//     the total is conserved (up to float summation order) and every
//     resulting time lies within [min(times), max(times)].
func (d *Distribution) Simplify(opts ...SimplifyOption) (*Distribution, error) {
	cfg := DefaultSimplifyOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if d.Len() <= cfg.Threshold {
		return d, nil
	}
	k := cfg.Clusters
	if k == 0 {
		k = cfg.Threshold
	}

	// Stage 1: sort point indices by time; work relative to the minimum to keep
	// float means exact for epoch-sized values.
	n := d.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return d.times[order[a]] < d.times[order[b]] })
	base := d.times[order[0]]
	xs := make([]float64, n) // sorted offsets from base
	for i, idx := range order {
		xs[i] = float64(d.times[idx] - base)
	}

	// Stage 2: quantile initialization.
	centers := make([]float64, k)
	for c := 0; c < k; c++ {
		centers[c] = xs[(2*c+1)*n/(2*k)]
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	// Stage 3: Lloyd iterations. Points and centers are both sorted, so the
	// nearest center is found with a binary search.
	sums := make([]float64, k)
	counts := make([]int, k)
	for iter := 0; iter < cfg.Iterations; iter++ {
		sort.Float64s(centers)
		changed := false
		for i, x := range xs {
			c := nearest(centers, x)
			if labels[i] != c {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}
		for c := range sums {
			sums[c], counts[c] = 0, 0
		}
		for i, x := range xs {
			sums[labels[i]] += x
			counts[labels[i]]++
		}
		for c := range centers {
			if counts[c] > 0 {
				centers[c] = sums[c] / float64(counts[c])
			}
		}
	}

	// Stage 4: move amounts onto rounded centers and consolidate.
	keys := make([]int64, n)
	amounts := make([]float64, n)
	for i, idx := range order {
		keys[i] = base + int64(math.Round(centers[labels[i]]))
		amounts[i] = d.amounts[idx]
	}
	t, a, err := convolution.Consolidate(keys, amounts)
	if err != nil {
		return nil, errors.WithSecondaryError(errors.Wrapf(ErrInvalidOperation, "%v", err), err)
	}

	return fromSeries(convolution.Series{Basis: d.basis, Times: t, Amounts: a}, "simplify")
}

// nearest returns the index of the center closest to x; centers must be sorted.
// Ties go to the lower center.
func nearest(centers []float64, x float64) int {
	j := sort.SearchFloat64s(centers, x)
	if j == 0 {
		return 0
	}
	if j == len(centers) {
		return len(centers) - 1
	}
	if x-centers[j-1] <= centers[j]-x {
		return j - 1
	}

	return j
}
