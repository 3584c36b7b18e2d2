package growth

import (
	"github.com/nifets/ArborGen/geom"
	"github.com/nifets/ArborGen/sample"
	"github.com/nifets/ArborGen/scene"
	"github.com/nifets/ArborGen/species"
)

const (
	// stemTaper fixes a child stem's thickness as a fraction of its
	// parent's, giving monotonic tapering from trunk to twig.
	stemTaper = 0.9
	// secondaryGrowthRate scales raw secondary growth into accumulator gain.
	secondaryGrowthRate = 0.05
	// thickenThreshold batches many small secondary-growth updates into
	// occasional visible thickening steps, like discrete growth rings.
	thickenThreshold = 0.2
)

// Stem is a woody segment between two consecutive nodes. Length is fixed at
// creation; only the secondary-growth accumulator mutates afterwards.
type Stem struct {
	ID       scene.PartID
	ParentID scene.PartID
	Tf       geom.Transform // world transform of the segment base
	Length   float64
	Thickness float64
	Material string

	gain float64 // secondary growth accumulated since the last thickening
}

// newStem derives a segment from its parent stem. A negative sampled length
// is clamped to zero: there is no negative growth.
func newStem(id, parentID scene.PartID, s *sample.Sampler, tmpl species.StemTemplate,
	tf geom.Transform, parentLength, parentThickness float64) *Stem {

	length := parentLength * s.Value(tmpl.LengthRatio)
	if length < 0 {
		length = 0
	}
	return &Stem{
		ID:        id,
		ParentID:  parentID,
		Tf:        tf,
		Length:    length,
		Thickness: parentThickness * stemTaper,
		Material:  tmpl.Material,
	}
}

// Tip returns the transform at the far end of the segment.
func (st *Stem) Tip() geom.Transform {
	return st.Tf.TranslateZ(st.Length)
}

// Update accumulates secondary growth. When the accumulator crosses the
// thickening threshold it resets and the crossed amount is returned for a
// one-shot thickening event; otherwise Update returns 0.
func (st *Stem) Update(secondaryGrowth float64) float64 {
	st.gain += secondaryGrowth * secondaryGrowthRate * st.Thickness
	if st.gain > thickenThreshold {
		gain := st.gain
		st.gain = 0
		return gain
	}
	return 0
}
