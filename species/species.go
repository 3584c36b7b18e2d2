// Package species defines the part templates and the production-rule table
// that describe what a plant's buds can grow into.
package species

import (
	"errors"
	"fmt"

	"github.com/nifets/ArborGen/sample"
)

// Configuration errors surfaced by Table validation and lookups.
var (
	ErrInvalidBudType        = errors.New("invalid bud type")
	ErrInvalidProductionRule = errors.New("invalid production rule")
)

// BudTemplate describes the geometric relationship a child bud has to its
// parent and which rule-table entry it resolves against. Angles are degrees.
type BudTemplate struct {
	TypeIndex       int     // rule-table entry this bud evaluates against
	Dominance       float64 // apical dominance strength, must be > 0
	BranchAngle     sample.RandomVariable
	DivergenceAngle sample.RandomVariable
	RollAngle       sample.RandomVariable
}

// StemTemplate governs how a new stem derives from its parent stem.
type StemTemplate struct {
	LengthRatio sample.RandomVariable // new length = parent length * sample
	Material    string                // appearance tag passed through to the scene
}

// LeafTemplate describes a leaf grown at an axillary node.
type LeafTemplate struct {
	Size     sample.RandomVariable
	Material string
}

// FlowerTemplate covers both the flower and the fruit it becomes.
type FlowerTemplate struct {
	Size           sample.RandomVariable
	FlowerMaterial string
	FruitMaterial  string
}

// AxillaryPair is one lateral bud and the leaf grown beside it.
type AxillaryPair struct {
	Bud  BudTemplate
	Leaf LeafTemplate
}

// Outcome is the result of resolving a production rule: either a shoot or a
// flower. The growth engine switches exhaustively on the concrete type.
type Outcome interface {
	isOutcome()
}

// ShootOutcome grows a new stem segment carrying a renewed apical bud and a
// sequence of axillary bud/leaf pairs.
type ShootOutcome struct {
	Stem      StemTemplate
	ApicalBud BudTemplate
	Axillary  []AxillaryPair
}

func (ShootOutcome) isOutcome() {}

// FlowerOutcome retires the bud into a flower.
type FlowerOutcome struct {
	Flower FlowerTemplate
}

func (FlowerOutcome) isOutcome() {}

type budType struct {
	outcomes []Outcome
	weights  []float64
}

// Table maps bud-type indices to weighted outcome lists. Entry 0 is the
// species' starting bud type. A Table must pass Validate before use.
type Table struct {
	types map[int]*budType
}

// NewTable creates an empty production-rule table.
func NewTable() *Table {
	return &Table{types: make(map[int]*budType)}
}

// Add registers the outcome list for a bud-type index, replacing any previous
// entry. Weights are relative and parallel to outcomes.
func (t *Table) Add(index int, outcomes []Outcome, weights []float64) {
	t.types[index] = &budType{outcomes: outcomes, weights: weights}
}

// Has reports whether index is a known bud type.
func (t *Table) Has(index int) bool {
	_, ok := t.types[index]
	return ok
}

// Validate checks the table invariants: entry 0 exists, every entry has
// matching non-negative weights with at least one selectable shoot outcome,
// and every bud type referenced from an outcome exists in the table.
func (t *Table) Validate() error {
	if !t.Has(0) {
		return fmt.Errorf("%w: missing starting bud type 0", ErrInvalidBudType)
	}
	for index, bt := range t.types {
		if len(bt.outcomes) == 0 {
			return fmt.Errorf("%w: bud type %d has no outcomes", ErrInvalidProductionRule, index)
		}
		if len(bt.weights) != len(bt.outcomes) {
			return fmt.Errorf("%w: bud type %d has %d weights for %d outcomes",
				ErrInvalidProductionRule, index, len(bt.weights), len(bt.outcomes))
		}
		var shootWeight float64
		for i, w := range bt.weights {
			if w < 0 {
				return fmt.Errorf("%w: bud type %d has negative weight %v", ErrInvalidProductionRule, index, w)
			}
			if _, ok := bt.outcomes[i].(ShootOutcome); ok {
				shootWeight += w
			}
		}
		if shootWeight <= 0 {
			return fmt.Errorf("%w: bud type %d has no selectable shoot outcome", ErrInvalidProductionRule, index)
		}
		for _, out := range bt.outcomes {
			shoot, ok := out.(ShootOutcome)
			if !ok {
				continue
			}
			if err := t.checkRef(shoot.ApicalBud); err != nil {
				return fmt.Errorf("bud type %d apical: %w", index, err)
			}
			for _, axil := range shoot.Axillary {
				if err := t.checkRef(axil.Bud); err != nil {
					return fmt.Errorf("bud type %d axillary: %w", index, err)
				}
			}
		}
	}
	return nil
}

func (t *Table) checkRef(tmpl BudTemplate) error {
	if !t.Has(tmpl.TypeIndex) {
		return fmt.Errorf("%w: references unknown type %d", ErrInvalidBudType, tmpl.TypeIndex)
	}
	if tmpl.Dominance <= 0 {
		return fmt.Errorf("%w: type %d template has non-positive dominance", ErrInvalidBudType, tmpl.TypeIndex)
	}
	return nil
}

// ResolveShoot selects a shoot outcome for the bud type by weighted random
// choice among its shoot outcomes.
func (t *Table) ResolveShoot(s *sample.Sampler, index int) (ShootOutcome, error) {
	bt, ok := t.types[index]
	if !ok {
		return ShootOutcome{}, fmt.Errorf("%w: %d", ErrInvalidBudType, index)
	}
	var (
		shoots  []ShootOutcome
		weights []float64
		total   float64
	)
	for i, out := range bt.outcomes {
		if shoot, ok := out.(ShootOutcome); ok {
			shoots = append(shoots, shoot)
			weights = append(weights, bt.weights[i])
			total += bt.weights[i]
		}
	}
	if len(shoots) == 0 || total <= 0 {
		return ShootOutcome{}, fmt.Errorf("%w: bud type %d has no selectable shoot outcome", ErrInvalidProductionRule, index)
	}
	return shoots[s.WeightedIndex(weights)], nil
}

// ResolveFlower returns the flower outcome for the bud type, if it has one.
// Bud types without a flower outcome never bloom.
func (t *Table) ResolveFlower(index int) (FlowerOutcome, bool, error) {
	bt, ok := t.types[index]
	if !ok {
		return FlowerOutcome{}, false, fmt.Errorf("%w: %d", ErrInvalidBudType, index)
	}
	for _, out := range bt.outcomes {
		if flower, ok := out.(FlowerOutcome); ok {
			return flower, true, nil
		}
	}
	return FlowerOutcome{}, false, nil
}
