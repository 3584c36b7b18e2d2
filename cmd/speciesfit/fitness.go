package main

import (
	"log"
	"math"

	"github.com/nifets/ArborGen/growth"
)

// Targets are the desired shape metrics of a mature tree after the evaluation
// run: live stems and leaves at the end, plus fruit dropped over the run.
type Targets struct {
	Stems  float64
	Leaves float64
	Fruit  float64
}

// FitnessEvaluator grows trees with scaled growth signals and scores them
// against the targets. Lower is better.
type FitnessEvaluator struct {
	params   *ParamVector
	base     growth.Species
	targets  Targets
	days     int
	stepDays int
	seeds    []uint64
}

// NewFitnessEvaluator creates an evaluator growing each candidate for the
// given number of days under every seed.
func NewFitnessEvaluator(params *ParamVector, base growth.Species, targets Targets,
	days, stepDays int, seeds []uint64) *FitnessEvaluator {

	return &FitnessEvaluator{
		params:   params,
		base:     base,
		targets:  targets,
		days:     days,
		stepDays: stepDays,
		seeds:    seeds,
	}
}

// Evaluate runs the candidate under every seed and returns the mean squared
// relative error against the targets.
func (e *FitnessEvaluator) Evaluate(raw []float64) float64 {
	scales := e.params.Clamp(raw)
	spec := e.scaledSpecies(scales)

	var total float64
	for _, seed := range e.seeds {
		tree, err := growth.NewTree(spec, growth.Options{Seed: seed, StepDays: e.stepDays})
		if err != nil {
			log.Printf("candidate rejected: %v", err)
			return math.Inf(1)
		}
		if err := tree.Grow(e.days, 1, 1); err != nil {
			log.Printf("candidate run failed: %v", err)
			return math.Inf(1)
		}

		total += relErr(float64(tree.StemCount()), e.targets.Stems)
		total += relErr(float64(tree.LeafCount()), e.targets.Leaves)
		total += relErr(float64(tree.FallenFlowerCount()), e.targets.Fruit)
	}
	return total / float64(len(e.seeds))
}

// scaledSpecies copies the base species with each signal's day curve scaled.
func (e *FitnessEvaluator) scaledSpecies(scales []float64) growth.Species {
	spec := e.base
	spec.PrimaryGrowth = scaleSignal(spec.PrimaryGrowth, scales[0])
	spec.SecondaryGrowth = scaleSignal(spec.SecondaryGrowth, scales[1])
	spec.Blooming = scaleSignal(spec.Blooming, scales[2])
	spec.FruitGrowth = scaleSignal(spec.FruitGrowth, scales[3])
	spec.LeafDecay = scaleSignal(spec.LeafDecay, scales[4])
	return spec
}

func scaleSignal(s growth.Signal, factor float64) growth.Signal {
	day := make(growth.Curve, len(s.Day))
	for i, p := range s.Day {
		day[i] = growth.CurvePoint{T: p.T, Value: p.Value * factor}
	}
	s.Day = day
	return s
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return got * got
	}
	d := (got - want) / want
	return d * d
}
