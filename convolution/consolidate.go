// SPDX-License-Identifier: MIT

package convolution

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Consolidate collapses a multiset of (key, amount) pairs into one amount per
// distinct key.
//
// Behavior:
//   - Output keys are strictly increasing.
//   - Amounts sharing a key are summed in their input order, so the result is
//     deterministic for a given input.
//   - Entries whose sum is exactly zero are dropped. If everything cancels the
//     result is two empty (non-nil) slices; callers that need a non-empty
//     series must reject that case themselves.
//
// Inputs are not modified.
//
// Complexity: O(n log n) time, O(n) memory.
func Consolidate(keys []int64, amounts []float64) ([]int64, []float64, error) {
	if len(keys) != len(amounts) {
		return nil, nil, errors.Wrapf(ErrLengthMismatch, "keys=%d amounts=%d", len(keys), len(amounts))
	}

	n := len(keys)
	outKeys := make([]int64, 0, n)
	outAmounts := make([]float64, 0, n)
	if n == 0 {
		return outKeys, outAmounts, nil
	}

	// Stage 1: order positions by key; stability keeps summation order fixed.
	order := make([]int, n)
	var i int
	for i = range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })

	// Stage 2: merge runs of equal keys.
	var (
		current = keys[order[0]]
		sum     float64
		key     int64
	)
	for _, i = range order {
		key = keys[i]
		if key != current {
			if sum != 0 {
				outKeys = append(outKeys, current)
				outAmounts = append(outAmounts, sum)
			}
			current, sum = key, 0
		}
		sum += amounts[i]
	}
	if sum != 0 {
		outKeys = append(outKeys, current)
		outAmounts = append(outAmounts, sum)
	}

	return outKeys, outAmounts, nil
}
