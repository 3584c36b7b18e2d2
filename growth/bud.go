package growth

import (
	"fmt"
	"math"

	"github.com/nifets/ArborGen/geom"
	"github.com/nifets/ArborGen/sample"
	"github.com/nifets/ArborGen/scene"
	"github.com/nifets/ArborGen/species"
)

// dominanceFloor is the dominance a retired bud keeps. Near-zero rather than
// zero so the inhibition formula never divides by zero.
const dominanceFloor = 1e-4

// Bud is a growth point of the tree. Its identity persists across sprouts:
// producing a shoot renews the same bud in place at the new stem's tip, so
// the id held by lateral buds for inhibition lookups stays valid for the
// bud's whole life.
type Bud struct {
	ID scene.PartID

	TypeIndex       int            // rule-table entry this bud resolves against
	Tf              geom.Transform // world transform
	ShootPotential  float64
	FlowerPotential float64
	Age             int     // number of shoots produced; -1 before first renew
	Dominance       float64 // apical dominance strength

	StemID   scene.PartID // stem the bud sits on (non-owning)
	ApicalID scene.PartID // apical bud that inhibits this one; 0 = none
}

// newBud creates a bud at a stem tip and immediately renews it onto the stem.
func newBud(id scene.PartID, s *sample.Sampler, tmpl species.BudTemplate,
	parentTf geom.Transform, stemID, apicalID scene.PartID) *Bud {

	b := &Bud{
		ID:             id,
		Age:            -1,
		ShootPotential: 1,
		ApicalID:       apicalID,
	}
	b.Renew(s, tmpl, parentTf, stemID)
	return b
}

// Renew transforms the bud after it has sprouted into a shoot: the age and
// type advance, one shoot attempt is consumed, flower potential resets, and
// the world transform recomposes from freshly sampled angles. Divergence
// rotates about the parent axis (phyllotactic step), branch inclines away
// from the parent direction, and roll twists about the new segment's own
// axis.
func (b *Bud) Renew(s *sample.Sampler, tmpl species.BudTemplate, parentTf geom.Transform, stemID scene.PartID) {
	b.Age++
	b.TypeIndex = tmpl.TypeIndex
	b.Dominance = tmpl.Dominance
	b.StemID = stemID
	b.ShootPotential--
	b.FlowerPotential = 0

	div := radians(s.Value(tmpl.DivergenceAngle))
	brc := radians(s.Value(tmpl.BranchAngle))
	roll := radians(s.Value(tmpl.RollAngle))
	b.Tf = parentTf.Mul(geom.RotZ(div)).Mul(geom.RotY(brc)).Mul(geom.RotZ(roll))
}

// Retire permanently stops the bud from suppressing its siblings. Dominance
// drops to a near-zero floor rather than zero, keeping the inhibition
// formula well-defined for buds that still reference this one.
func (b *Bud) Retire() {
	b.Dominance = dominanceFloor
}

// Update accumulates the step's growth signals and resolves a production
// outcome. A nil outcome means the bud keeps growing. The inhibited result
// reports whether a ready shoot attempt was suppressed by apical dominance
// this step.
//
// Shoot growth is checked before flower growth, biasing vegetative growth
// over reproduction, and a bud must have sprouted at least once before it
// may flower.
func (b *Bud) Update(shootAmount, flowerAmount float64, apical *Bud,
	table *species.Table, s *sample.Sampler) (out species.Outcome, inhibited bool, err error) {

	b.ShootPotential += shootAmount
	b.FlowerPotential += flowerAmount

	// Apical dominance only suppresses a lateral bud that has not yet
	// sprouted. The effect vanishes as the apex moves away or its
	// dominance decays.
	if b.Age == 0 && apical != nil {
		if apical.Dominance <= 0 {
			return nil, false, fmt.Errorf("bud %d: apical bud %d has zero dominance", b.ID, apical.ID)
		}
		if geom.Distance(apical.Tf, b.Tf)/apical.Dominance < 1 {
			inhibited = true
		}
	}

	if b.ShootPotential > 1 {
		if !inhibited {
			shoot, err := table.ResolveShoot(s, b.TypeIndex)
			if err != nil {
				return nil, false, err
			}
			return shoot, false, nil
		}
		// The suppressed attempt is spent without producing growth.
		b.ShootPotential--
	} else if b.FlowerPotential > 1 && b.Age > 0 {
		flower, ok, err := table.ResolveFlower(b.TypeIndex)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return flower, false, nil
		}
	}

	return nil, inhibited, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
