// Package growth implements the plant growth engine: seasonal growth signals,
// the bud/stem/leaf/flower lifecycles, apical-dominance inhibition, and the
// time-stepping orchestrator that turns production rules into structure.
package growth

import "github.com/nifets/ArborGen/sample"

// YearDays is the length of a simulated year.
const YearDays = 365

// CurvePoint is one keyframe of a growth curve.
type CurvePoint struct {
	T     float64
	Value float64
}

// Curve is a piecewise-linear function of time, defined by keyframes sorted
// by T. Evaluation clamps to the first/last keyframe outside the range.
// Day curves are cumulative over a year: the growth produced in a day range
// is the difference of the curve at its endpoints.
type Curve []CurvePoint

// Constant returns a curve with the same value everywhere.
func Constant(v float64) Curve {
	return Curve{{T: 0, Value: v}}
}

// Evaluate returns the curve value at t by linear interpolation.
func (c Curve) Evaluate(t float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if t <= c[0].T {
		return c[0].Value
	}
	last := c[len(c)-1]
	if t >= last.T {
		return last.Value
	}
	for i := 1; i < len(c); i++ {
		if t <= c[i].T {
			p, q := c[i-1], c[i]
			frac := (t - p.T) / (q.T - p.T)
			return p.Value + frac*(q.Value-p.Value)
		}
	}
	return last.Value
}

// Signal evaluates a seasonal growth magnitude from a within-year day curve
// and a year-level scale curve.
type Signal struct {
	Day   Curve       // cumulative growth over the year
	Year  Curve       // scale factor by tree age in years
	Noise float64     // stddev of the sampled growth amount
	Dist  sample.Dist // distribution of the noise
}

// Evaluate returns the growth amount for the elapsed day range as a random
// variable. When the range wraps past the year boundary (endDay < startDay),
// the unconsumed remainder of the prior season is added: the day curve's
// end-of-year value joins the difference before scaling.
func (g Signal) Evaluate(year int, startDay, endDay float64) sample.RandomVariable {
	mean := g.Day.Evaluate(endDay) - g.Day.Evaluate(startDay)
	if endDay < startDay {
		mean += g.Day.Evaluate(YearDays)
	}
	mean *= g.Year.Evaluate(float64(year))
	return sample.RandomVariable{Center: mean, Spread: g.Noise, Dist: g.Dist}
}
