package distribution_test

import (
	"time"

	"github.com/katalvlaran/temporalis/distribution"
)

const day = distribution.Day

func date(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}

func days(values ...int64) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = v * day
	}
	return out
}

// half is a user-supplied factor that claims every product and halves it.
type half struct{}

func (half) TakesPrecedence() bool { return true }

func (half) Multiply(other distribution.Factor) (distribution.Factor, error) {
	switch o := other.(type) {
	case distribution.Scalar:
		return o * 0.5, nil
	case *distribution.Distribution:
		return o.Scale(0.5), nil
	case *distribution.Fixed:
		return distribution.FixedFrom(o.Distribution().Scale(0.5)), nil
	}
	return nil, distribution.ErrUnsupportedOperand
}

// opaque is a factor nothing knows how to combine with.
type opaque struct{}

func (opaque) Multiply(distribution.Factor) (distribution.Factor, error) { return nil, nil }
