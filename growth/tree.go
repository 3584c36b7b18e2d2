package growth

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
	"github.com/nifets/ArborGen/sample"
	"github.com/nifets/ArborGen/scene"
	"github.com/nifets/ArborGen/species"
	"github.com/nifets/ArborGen/telemetry"
)

// defaultStepDays is the simulation update interval in days.
const defaultStepDays = 20

// Species bundles everything that defines how one plant species grows: its
// production-rule table, the templates for the first bud and the root stem,
// and the five seasonal growth signals.
type Species struct {
	Rules    *species.Table
	StartBud species.BudTemplate
	RootStem species.StemTemplate

	PrimaryGrowth   Signal
	SecondaryGrowth Signal
	Blooming        Signal
	FruitGrowth     Signal
	LeafDecay       Signal
}

// Options configures a Tree.
type Options struct {
	Seed      uint64
	StepDays  int // simulation update interval, default 20
	Adapter   scene.Adapter
	Collector *telemetry.Collector
	OnYearEnd func(telemetry.YearStats)
}

// Tree owns all entity collections of one growing plant and advances them in
// fixed day increments. All mutation happens inside Step; event emission is
// buffered and flushed once per step.
type Tree struct {
	spec    Species
	sampler *sample.Sampler
	adapter scene.Adapter
	queue   *scene.Queue

	collector *telemetry.Collector
	onYearEnd func(telemetry.YearStats)

	stepDays int
	year     int
	day      int

	// Active growth phase
	remainingDays int
	leafGrowth    float64
	flowerGrowth  float64

	nextID scene.PartID

	root      *Stem
	stems     []*Stem
	stemIndex map[scene.PartID]*Stem

	buds     []*Bud
	budIndex map[scene.PartID]*Bud // includes retired buds; inhibition references stay valid

	leaves        []*Leaf
	fallenLeaves  []*Leaf
	flowers       []*Flower
	fallenFlowers []*Flower
}

// NewTree validates the species and plants its root stem and starting bud.
// The creation events are flushed to the adapter before NewTree returns.
func NewTree(spec Species, opts Options) (*Tree, error) {
	if spec.Rules == nil {
		return nil, fmt.Errorf("%w: nil rule table", species.ErrInvalidProductionRule)
	}
	if err := spec.Rules.Validate(); err != nil {
		return nil, err
	}
	if !spec.Rules.Has(spec.StartBud.TypeIndex) {
		return nil, fmt.Errorf("%w: start bud references unknown type %d",
			species.ErrInvalidBudType, spec.StartBud.TypeIndex)
	}
	if spec.StartBud.Dominance <= 0 {
		return nil, fmt.Errorf("%w: start bud has non-positive dominance", species.ErrInvalidBudType)
	}
	stepDays := opts.StepDays
	if stepDays == 0 {
		stepDays = defaultStepDays
	}
	if stepDays < 1 || stepDays >= YearDays {
		return nil, fmt.Errorf("step days %d outside [1, %d)", stepDays, YearDays)
	}

	t := &Tree{
		spec:      spec,
		sampler:   sample.New(opts.Seed),
		adapter:   opts.Adapter,
		queue:     scene.NewQueue(),
		collector: opts.Collector,
		onYearEnd: opts.OnYearEnd,
		stepDays:  stepDays,
		day:       1,
		nextID:    1,
		stemIndex: make(map[scene.PartID]*Stem),
		budIndex:  make(map[scene.PartID]*Bud),
	}

	// Root stem reaches from below ground to the origin.
	t.root = newStem(t.takeID(), 0, t.sampler, spec.RootStem,
		geom.Translation(r3.Vec{Z: -1}), 1.0, 1.0)
	t.addStem(t.root)
	t.emitStemSprout(t.root, 0, 0)

	startBud := newBud(t.takeID(), t.sampler, spec.StartBud, geom.Identity(), t.root.ID, 0)
	t.buds = append(t.buds, startBud)
	t.budIndex[startBud.ID] = startBud

	t.flush()
	return t, nil
}

func (t *Tree) takeID() scene.PartID {
	id := t.nextID
	t.nextID++
	return id
}

func (t *Tree) addStem(st *Stem) {
	t.stems = append(t.stems, st)
	t.stemIndex[st.ID] = st
}

func (t *Tree) flush() {
	if t.adapter != nil {
		t.queue.Flush(t.adapter)
	}
}

// StartGrowth schedules totalDays of simulated growth with the given leaf
// and flower growth probabilities. Days add onto any unconsumed schedule.
func (t *Tree) StartGrowth(totalDays int, leafGrowth, flowerGrowth float64) error {
	if totalDays <= 0 {
		return fmt.Errorf("total days must be positive, got %d", totalDays)
	}
	if leafGrowth < 0 || leafGrowth > 1 {
		return fmt.Errorf("leaf growth probability %v outside [0, 1]", leafGrowth)
	}
	if flowerGrowth < 0 || flowerGrowth > 1 {
		return fmt.Errorf("flower growth probability %v outside [0, 1]", flowerGrowth)
	}
	t.remainingDays += totalDays
	t.leafGrowth = leafGrowth
	t.flowerGrowth = flowerGrowth
	return nil
}

// IsComplete reports whether the scheduled growth has been consumed.
func (t *Tree) IsComplete() bool {
	return t.remainingDays <= 0
}

// Grow runs the full schedule in one call.
func (t *Tree) Grow(totalDays int, leafGrowth, flowerGrowth float64) error {
	if err := t.StartGrowth(totalDays, leafGrowth, flowerGrowth); err != nil {
		return err
	}
	for !t.IsComplete() {
		if err := t.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the simulation by one day increment: buds grow or flower,
// stems thicken, leaves decay, flowers ripen, and the step's events flush to
// the adapter. Partial state never escapes: events are emitted only after
// the step fully resolves.
func (t *Tree) Step() error {
	if t.IsComplete() {
		return nil
	}

	startDay := t.day
	year := t.year

	startFrame := float64(t.year*YearDays + t.day)
	t.day += t.stepDays
	yearEnded := false
	if t.day > YearDays {
		t.day -= YearDays
		t.year++
		yearEnded = true
	}
	endDay := t.day
	endFrame := float64(t.year*YearDays + t.day)
	t.remainingDays -= t.stepDays

	if err := t.updateBuds(year, startDay, endDay, startFrame, endFrame); err != nil {
		return err
	}
	t.updateStems(year, startDay, endDay, endFrame)
	t.updateLeaves(year, startDay, endDay, endFrame)
	t.updateFlowers(year, startDay, endDay, endFrame)

	t.flush()

	if yearEnded && t.collector != nil {
		stats := t.collector.Flush(year, telemetry.Counts{
			Stems:   len(t.stems),
			Buds:    len(t.buds),
			Leaves:  len(t.leaves),
			Flowers: len(t.flowers),
		})
		if t.onYearEnd != nil {
			t.onYearEnd(stats)
		}
	}
	return nil
}

// updateBuds runs the production pass over a snapshot of the live bud set.
// Buds created this step are buffered and merged in afterwards, so they
// never participate in the step that created them.
func (t *Tree) updateBuds(year, startDay, endDay int, startFrame, endFrame float64) error {
	primary := t.spec.PrimaryGrowth.Evaluate(year, float64(startDay), float64(endDay))
	blooming := t.spec.Blooming.Evaluate(year, float64(startDay), float64(endDay))

	snapshot := append([]*Bud(nil), t.buds...)
	var added []*Bud
	var retired map[scene.PartID]bool

	for _, bud := range snapshot {
		var apical *Bud
		if bud.ApicalID != 0 {
			apical = t.budIndex[bud.ApicalID]
		}

		out, inhibited, err := bud.Update(
			t.sampler.Value(primary), t.sampler.Value(blooming),
			apical, t.spec.Rules, t.sampler)
		if err != nil {
			return err
		}
		if inhibited {
			t.recordShootInhibited()
		}

		switch out := out.(type) {
		case nil:
		case species.ShootOutcome:
			added = append(added, t.growShoot(bud, out, startFrame, endFrame)...)
		case species.FlowerOutcome:
			if t.sampler.Chance(t.flowerGrowth) {
				t.growFlower(bud, out, startFrame)
				bud.Retire()
				if retired == nil {
					retired = make(map[scene.PartID]bool)
				}
				retired[bud.ID] = true
			} else {
				// The missed attempt is spent.
				bud.FlowerPotential--
				t.recordFlowerMissed()
			}
		default:
			return fmt.Errorf("%w: unknown outcome %T", species.ErrInvalidProductionRule, out)
		}
	}

	if retired != nil {
		live := t.buds[:0]
		for _, bud := range t.buds {
			if !retired[bud.ID] {
				live = append(live, bud)
			}
		}
		t.buds = live
	}
	t.buds = append(t.buds, added...)
	return nil
}

// growShoot materializes a shoot outcome: a new stem at the bud's transform,
// the bud renewed onto the stem's tip, and one leaf/bud pair per axillary
// template. Leaf growth is gated per pair by the phase's leaf probability.
func (t *Tree) growShoot(bud *Bud, out species.ShootOutcome, startFrame, endFrame float64) []*Bud {
	parent := t.stemIndex[bud.StemID]

	stem := newStem(t.takeID(), parent.ID, t.sampler, out.Stem,
		bud.Tf, parent.Length, parent.Thickness)
	t.addStem(stem)
	t.emitStemSprout(stem, startFrame, endFrame)
	t.recordStemGrown()

	tip := stem.Tip()
	bud.Renew(t.sampler, out.ApicalBud, tip, stem.ID)

	var added []*Bud
	for _, axil := range out.Axillary {
		axilBud := newBud(t.takeID(), t.sampler, axil.Bud, tip, stem.ID, bud.ID)
		t.budIndex[axilBud.ID] = axilBud
		added = append(added, axilBud)

		if !t.sampler.Chance(t.leafGrowth) {
			continue
		}
		leaf := newLeaf(t.takeID(), t.sampler.Value(axil.Leaf.Size))
		droop := geom.RotY(radians(t.sampler.Value(sample.Uniform(90, 20))))
		tilt := geom.RotX(radians(t.sampler.Value(sample.Uniform(0, 10))))
		leafTf := axilBud.Tf.Mul(droop).Mul(tilt)
		t.leaves = append(t.leaves, leaf)
		t.emitLeafSprout(leaf, stem.ID, leafTf, axil.Leaf.Material, startFrame, endFrame)
		t.recordLeafGrown()
	}
	return added
}

// growFlower materializes a flower outcome at the retiring bud's position.
func (t *Tree) growFlower(bud *Bud, out species.FlowerOutcome, startFrame float64) {
	yaw := geom.RotZ(radians(t.sampler.Value(sample.Uniform(0, 90))))
	tf := geom.Translation(bud.Tf.Pos).Mul(yaw)

	flower := newFlower(t.takeID(), t.takeID(), t.sampler.Value(out.Flower.Size))
	t.flowers = append(t.flowers, flower)
	t.emitFlowerBloom(flower, bud.StemID, tf, out.Flower, startFrame)
	t.recordFlowerBloomed()
}

func (t *Tree) updateStems(year, startDay, endDay int, endFrame float64) {
	// Secondary growth is sampled once and applied to every live stem.
	secondary := t.sampler.Value(t.spec.SecondaryGrowth.Evaluate(year, float64(startDay), float64(endDay)))
	for _, stem := range t.stems {
		if gain := stem.Update(secondary); gain > 0 {
			t.emitStemThicken(stem, gain, endFrame)
		}
	}
}

func (t *Tree) updateLeaves(year, startDay, endDay int, endFrame float64) {
	decay := t.spec.LeafDecay.Evaluate(year, float64(startDay), float64(endDay))
	live := t.leaves[:0]
	for _, leaf := range t.leaves {
		if leaf.Update(t.sampler.Value(decay)) {
			t.fallenLeaves = append(t.fallenLeaves, leaf)
			t.emitLeafFall(leaf, endFrame)
			t.recordLeafFallen()
		} else {
			live = append(live, leaf)
		}
	}
	t.leaves = live
}

func (t *Tree) updateFlowers(year, startDay, endDay int, endFrame float64) {
	fruiting := t.spec.FruitGrowth.Evaluate(year, float64(startDay), float64(endDay))
	live := t.flowers[:0]
	for _, flower := range t.flowers {
		fruitSet, fell := flower.Update(t.sampler.Value(fruiting))
		if fruitSet {
			t.emitFruitSet(flower, endFrame)
			t.recordFruitSet()
		}
		if fell {
			t.fallenFlowers = append(t.fallenFlowers, flower)
			t.emitFruitFall(flower, endFrame)
			t.recordFruitFallen()
		} else {
			live = append(live, flower)
		}
	}
	t.flowers = live
}

// Year returns the tree's age in completed years.
func (t *Tree) Year() int { return t.year }

// Day returns the current day of the year.
func (t *Tree) Day() int { return t.day }

// Frame returns the current simulated frame (days since the start).
func (t *Tree) Frame() float64 { return float64(t.year*YearDays + t.day) }

// StemCount returns the number of live stems (including the root).
func (t *Tree) StemCount() int { return len(t.stems) }

// BudCount returns the number of live buds.
func (t *Tree) BudCount() int { return len(t.buds) }

// LeafCount returns the number of live leaves.
func (t *Tree) LeafCount() int { return len(t.leaves) }

// FallenLeafCount returns the number of fallen leaves.
func (t *Tree) FallenLeafCount() int { return len(t.fallenLeaves) }

// FlowerCount returns the number of live flowers and fruit.
func (t *Tree) FlowerCount() int { return len(t.flowers) }

// FallenFlowerCount returns the number of fallen fruit.
func (t *Tree) FallenFlowerCount() int { return len(t.fallenFlowers) }
