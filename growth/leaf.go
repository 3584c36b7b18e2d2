package growth

import "github.com/nifets/ArborGen/scene"

// Leaf tracks a leaf's chlorophyll, which decays monotonically with the
// seasonal leaf-decay signal.
type Leaf struct {
	ID          scene.PartID
	Chlorophyll float64 // starts at 1, leaf falls once below 0
	Size        float64
}

func newLeaf(id scene.PartID, size float64) *Leaf {
	return &Leaf{ID: id, Chlorophyll: 1, Size: size}
}

// Update applies chlorophyll decay and reports whether the leaf fell this
// step. A fallen leaf leaves the live set and is never updated again.
func (l *Leaf) Update(decay float64) bool {
	l.Chlorophyll -= decay
	return l.Chlorophyll < 0
}
