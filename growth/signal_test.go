package growth

import (
	"math"
	"testing"

	"github.com/nifets/ArborGen/sample"
)

func TestCurveEvaluate(t *testing.T) {
	c := Curve{{T: 0, Value: 0}, {T: 100, Value: 10}, {T: 365, Value: 10}}

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"clamped below", -5, 0},
		{"first key", 0, 0},
		{"midpoint", 50, 5},
		{"second key", 100, 10},
		{"plateau", 200, 10},
		{"clamped above", 400, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Evaluate(tt.t); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestEmptyAndConstantCurves(t *testing.T) {
	if got := (Curve{}).Evaluate(50); got != 0 {
		t.Errorf("empty curve = %v, want 0", got)
	}
	if got := Constant(3).Evaluate(123); got != 3 {
		t.Errorf("constant curve = %v, want 3", got)
	}
}

func TestSignalEvaluate(t *testing.T) {
	day := Curve{{T: 0, Value: 0}, {T: 365, Value: 36.5}} // 0.1 per day
	year := Curve{{T: 0, Value: 1}, {T: 10, Value: 2}}

	g := Signal{Day: day, Year: year, Noise: 0.25, Dist: sample.DistNormal}

	rv := g.Evaluate(0, 100, 120)
	if math.Abs(rv.Center-2.0) > 1e-9 {
		t.Errorf("mean = %v, want 2.0", rv.Center)
	}
	if rv.Spread != 0.25 || rv.Dist != sample.DistNormal {
		t.Errorf("noise not carried through: %+v", rv)
	}

	// Year scale doubles the growth at age 10.
	rv = g.Evaluate(10, 100, 120)
	if math.Abs(rv.Center-4.0) > 1e-9 {
		t.Errorf("scaled mean = %v, want 4.0", rv.Center)
	}
}

func TestSignalYearWrapBoundaryTerm(t *testing.T) {
	// A growth season spanning the new year accumulates the remainder of
	// the prior year's curve: mean must include dayCurve(365).
	day := Curve{{T: 0, Value: 0}, {T: 200, Value: 5}, {T: 365, Value: 8}}
	g := Signal{Day: day, Year: Constant(2)}

	rv := g.Evaluate(3, 360, 10)
	want := 2 * ((day.Evaluate(10) - day.Evaluate(360)) + day.Evaluate(365))
	if math.Abs(rv.Center-want) > 1e-9 {
		t.Errorf("wrapped mean = %v, want %v", rv.Center, want)
	}
	if rv.Center <= 0 {
		t.Errorf("wrapped mean should be positive, got %v", rv.Center)
	}
}
