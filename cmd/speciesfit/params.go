package main

// ParamSpec describes one tunable parameter with its search range.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector defines the search space: one multiplicative scale per growth
// signal. A scale of 1 leaves the configured species untouched.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the signal-scale search space.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{Name: "primary_growth_scale", Min: 0.2, Max: 3.0, Default: 1.0},
		{Name: "secondary_growth_scale", Min: 0.2, Max: 3.0, Default: 1.0},
		{Name: "blooming_scale", Min: 0.2, Max: 3.0, Default: 1.0},
		{Name: "fruit_growth_scale", Min: 0.2, Max: 3.0, Default: 1.0},
		{Name: "leaf_decay_scale", Min: 0.2, Max: 3.0, Default: 1.0},
	}}
}

// Dim returns the number of parameters.
func (p *ParamVector) Dim() int {
	return len(p.Specs)
}

// DefaultVector returns the raw default values.
func (p *ParamVector) DefaultVector() []float64 {
	out := make([]float64, len(p.Specs))
	for i, s := range p.Specs {
		out[i] = s.Default
	}
	return out
}

// Normalize maps raw values into [0, 1] per spec range.
func (p *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		s := p.Specs[i]
		out[i] = (v - s.Min) / (s.Max - s.Min)
	}
	return out
}

// Denormalize maps [0, 1] coordinates back to raw values.
func (p *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		s := p.Specs[i]
		out[i] = s.Min + v*(s.Max-s.Min)
	}
	return out
}

// Clamp bounds raw values to their spec ranges. The optimizer explores an
// unbounded space; evaluations always use the clamped values.
func (p *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		s := p.Specs[i]
		if v < s.Min {
			v = s.Min
		}
		if v > s.Max {
			v = s.Max
		}
		out[i] = v
	}
	return out
}
