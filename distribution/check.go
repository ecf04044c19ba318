// SPDX-License-Identifier: MIT

package distribution

import (
	"math"

	"github.com/cockroachdb/errors"
)

// DefaultCongruenceTolerance is the relative deviation CheckCongruent accepts.
const DefaultCongruenceTolerance = 0.01

// CheckCongruent verifies a distribution stored on an exchange of the given
// amount. Stored distributions are shares of the exchange amount, so their
// total must be one within the relative tolerance; the message reports the
// amount and amount·total so the offending exchange can be fixed directly.
func CheckCongruent(d Temporal, amount, tolerance float64) error {
	total := d.Total()
	if math.Abs(total-1) <= tolerance {
		return nil
	}

	return errors.Wrapf(ErrIncongruentDistribution,
		"temporal distribution doesn't sum to one: exchange amount %.4e, temporal distribution sum %.4e",
		amount, amount*total)
}
