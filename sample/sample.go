// Package sample provides seeded random sampling of configured distributions.
//
// All stochastic choices in the simulation draw from a single Sampler stream
// so that a run is fully reproducible from its seed.
package sample

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Dist selects the distribution a RandomVariable is sampled from.
type Dist uint8

const (
	// DistUniform samples uniformly from [center-spread, center+spread].
	DistUniform Dist = iota
	// DistNormal samples a normal deviate with mean center and stddev spread.
	DistNormal
)

// RandomVariable is a scalar distribution parameterized by center and spread.
// Spread must be non-negative; spread 0 makes the variable deterministic.
type RandomVariable struct {
	Center float64
	Spread float64
	Dist   Dist
}

// Uniform returns a uniform random variable over [center-spread, center+spread].
func Uniform(center, spread float64) RandomVariable {
	return RandomVariable{Center: center, Spread: spread, Dist: DistUniform}
}

// Normal returns a normal random variable with the given mean and stddev.
func Normal(center, spread float64) RandomVariable {
	return RandomVariable{Center: center, Spread: spread, Dist: DistNormal}
}

// Sampler draws values from random variables using one seeded source.
type Sampler struct {
	src rand.Source
	rnd *rand.Rand
}

// New creates a sampler seeded with the given value.
func New(seed uint64) *Sampler {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Sampler{src: src, rnd: rand.New(src)}
}

// Value draws a single value from rv.
func (s *Sampler) Value(rv RandomVariable) float64 {
	if rv.Spread == 0 {
		return rv.Center
	}
	switch rv.Dist {
	case DistNormal:
		return distuv.Normal{Mu: rv.Center, Sigma: rv.Spread, Src: s.src}.Rand()
	default:
		return distuv.Uniform{Min: rv.Center - rv.Spread, Max: rv.Center + rv.Spread, Src: s.src}.Rand()
	}
}

// Range draws uniformly from [lo, hi).
func (s *Sampler) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}

// Chance reports a success with probability p; p >= 1 always succeeds.
func (s *Sampler) Chance(p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return s.rnd.Float64() <= p
}

// WeightedIndex picks an index with probability proportional to weights.
// Weights must be non-negative and sum to a positive value; the caller is
// responsible for validating this (see species.Table).
func (s *Sampler) WeightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := s.rnd.Float64() * total
	for i, w := range weights {
		x -= w
		if x < 0 {
			return i
		}
	}
	return len(weights) - 1
}
