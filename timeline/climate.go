// SPDX-License-Identifier: MIT

package timeline

import (
	"math"

	"github.com/katalvlaran/temporalis/distribution"
)

// DefaultPeriod is the number of yearly steps a characterization produces.
const DefaultPeriod = 100

// CO2 impulse-response parameters (W/m²/kg, years).
const (
	co2Efficiency = 1.76e-15
	co2Alpha0     = 0.2173
)

var (
	co2Alphas = [3]float64{0.2240, 0.2824, 0.2763}
	co2Taus   = [3]float64{394.4, 36.54, 4.304}
)

// CH4 parameters: indirect effects on ozone and stratospheric water, forcing
// efficiency (W/m²/kg) and perturbation lifetime (years).
const (
	ch4OzoneFactor = 0.5
	ch4WaterFactor = 0.15
	ch4Efficiency  = 1.27e-13
	ch4Lifetime    = 12.4
)

// ClimateOptions configures a characterization.
type ClimateOptions struct {
	Period     int  // yearly steps, starting at the row date
	Cumulative bool // cumulative forcing instead of the yearly increment
}

// ClimateOption is a functional option for the characterizations.
type ClimateOption func(*ClimateOptions)

// WithPeriod sets the number of yearly steps. Panics if n <= 0.
func WithPeriod(n int) ClimateOption {
	if n <= 0 {
		panic("timeline: WithPeriod: period must be positive")
	}
	return func(o *ClimateOptions) { o.Period = n }
}

// WithCumulative reports cumulative radiative forcing.
func WithCumulative() ClimateOption {
	return func(o *ClimateOptions) { o.Cumulative = true }
}

// CharacterizeCO2 returns the radiative forcing of the CO2 in r over
// Period years. Row k is dated r.Time + k average years; its amount is the
// forcing integrated up to year k (cumulative) or the increment since year
// k−1, with 0 for the first row.
func CharacterizeCO2(r Row, opts ...ClimateOption) Table {
	return characterize(r, opts, func(y float64) float64 {
		f := co2Alpha0 * y
		for i, tau := range co2Taus {
			f += co2Alphas[i] * tau * (1 - math.Exp(-y/tau))
		}
		return co2Efficiency * f
	})
}

// CharacterizeMethane is CharacterizeCO2 for CH4.
func CharacterizeMethane(r Row, opts ...ClimateOption) Table {
	return characterize(r, opts, func(y float64) float64 {
		return (1 + ch4OzoneFactor + ch4WaterFactor) * ch4Efficiency * ch4Lifetime * (1 - math.Exp(-y/ch4Lifetime))
	})
}

// CO2 adapts CharacterizeCO2 to a Characterizer.
func CO2(opts ...ClimateOption) Characterizer {
	return func(r Row) Table { return CharacterizeCO2(r, opts...) }
}

// Methane adapts CharacterizeMethane to a Characterizer.
func Methane(opts ...ClimateOption) Characterizer {
	return func(r Row) Table { return CharacterizeMethane(r, opts...) }
}

func characterize(r Row, opts []ClimateOption, forcing func(years float64) float64) Table {
	cfg := ClimateOptions{Period: DefaultPeriod}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make(Table, cfg.Period)
	var prev float64
	for k := range out {
		cum := r.Amount * forcing(float64(k))
		amount := cum
		if !cfg.Cumulative {
			amount = cum - prev
			if k == 0 {
				amount = 0
			}
		}
		prev = cum
		out[k] = Row{
			Time:     r.Time + int64(k)*distribution.Year,
			Amount:   amount,
			Flow:     r.Flow,
			Activity: r.Activity,
		}
	}

	return out
}
