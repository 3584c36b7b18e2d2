package growth

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
	"github.com/nifets/ArborGen/scene"
	"github.com/nifets/ArborGen/species"
)

// Keyframe choreography for the structural events. Frame offsets scale with
// part size so large parts unfold more slowly, and fall sequences start at a
// small random offset so simultaneous falls don't move in lockstep.

func (t *Tree) emitStemSprout(st *Stem, startFrame, endFrame float64) {
	t.queue.CreatePart(st.ID, st.ParentID, scene.KindStem, st.Tf, st.Length, st.Material)
	t.queue.AttachAnimation(st.ID, scene.PropScale, r3.Vec{}, startFrame, false)
	t.queue.AttachAnimation(st.ID, scene.PropScale,
		r3.Vec{X: st.Thickness, Y: 0.7, Z: st.Thickness}, endFrame+20*st.Length, true)
	t.queue.AttachAnimation(st.ID, scene.PropScale,
		r3.Vec{Y: 0.3}, endFrame+40*st.Length, true)
}

func (t *Tree) emitStemThicken(st *Stem, gain, frame float64) {
	t.queue.AttachAnimation(st.ID, scene.PropScale, r3.Vec{X: gain, Z: gain}, frame, true)
}

func (t *Tree) emitLeafSprout(l *Leaf, parentID scene.PartID, tf geom.Transform, material string, startFrame, endFrame float64) {
	t.queue.CreatePart(l.ID, parentID, scene.KindLeaf, tf, l.Size, material)
	t.queue.AttachAnimation(l.ID, scene.PropScale, r3.Vec{}, startFrame, false)
	t.queue.AttachAnimation(l.ID, scene.PropScale,
		r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, endFrame+20*l.Size, false)
	t.queue.AttachAnimation(l.ID, scene.PropScale,
		r3.Vec{X: 1, Y: 1, Z: 1}, endFrame+60*l.Size, false)
}

func (t *Tree) emitLeafFall(l *Leaf, frame float64) {
	r := frame + t.sampler.Range(0, 10)
	t.queue.AttachAnimation(l.ID, scene.PropPosition, r3.Vec{}, r, true)
	t.queue.AttachAnimation(l.ID, scene.PropPosition, r3.Vec{Y: 0.1}, r+1, true)
	t.queue.AttachAnimation(l.ID, scene.PropPosition, r3.Vec{Y: 0.15, Z: -0.3}, r+10, true)
	t.queue.AttachAnimation(l.ID, scene.PropPosition, r3.Vec{Y: 0.1, Z: -0.1}, r+31, true)
	t.queue.AttachAnimation(l.ID, scene.PropScale, r3.Vec{X: 1, Y: 1, Z: 1}, r+30, false)
	t.queue.AttachAnimation(l.ID, scene.PropScale, r3.Vec{}, r+31, false)
	t.queue.MarkFallen(l.ID, r+31)
}

func (t *Tree) emitFlowerBloom(f *Flower, parentID scene.PartID, tf geom.Transform, tmpl species.FlowerTemplate, startFrame float64) {
	t.queue.CreatePart(f.FlowerID, parentID, scene.KindFlower, tf, f.Size, tmpl.FlowerMaterial)
	t.queue.CreatePart(f.FruitID, parentID, scene.KindFruit, tf, f.Size, tmpl.FruitMaterial)

	t.queue.AttachAnimation(f.FlowerID, scene.PropScale, r3.Vec{}, startFrame, false)
	t.queue.AttachAnimation(f.FlowerID, scene.PropScale, r3.Vec{X: 1, Y: 1, Z: 1}, startFrame+10, false)
	// The fruit mesh stays hidden until the fruit sets.
	t.queue.AttachAnimation(f.FruitID, scene.PropScale, r3.Vec{}, startFrame, false)
}

func (t *Tree) emitFruitSet(f *Flower, frame float64) {
	// Petal drop.
	r := frame + t.sampler.Range(0, 6)
	t.queue.AttachAnimation(f.FlowerID, scene.PropPosition, r3.Vec{}, r, true)
	t.queue.AttachAnimation(f.FlowerID, scene.PropPosition, r3.Vec{Y: -1}, r+10, true)
	t.queue.AttachAnimation(f.FlowerID, scene.PropScale, r3.Vec{X: 1, Y: 1, Z: 1}, frame+9, false)
	t.queue.AttachAnimation(f.FlowerID, scene.PropScale, r3.Vec{}, frame+10, false)
	t.queue.MarkFallen(f.FlowerID, r+10)

	t.queue.AttachAnimation(f.FruitID, scene.PropScale, r3.Vec{}, frame, false)
	t.queue.AttachAnimation(f.FruitID, scene.PropScale, r3.Vec{X: 1, Y: 1, Z: 1}, frame+15, false)
}

func (t *Tree) emitFruitFall(f *Flower, frame float64) {
	r := frame + t.sampler.Range(0, 10)
	t.queue.AttachAnimation(f.FruitID, scene.PropPosition, r3.Vec{}, r, true)
	t.queue.AttachAnimation(f.FruitID, scene.PropPosition, r3.Vec{Y: -2.5}, r+20, true)
	t.queue.AttachAnimation(f.FruitID, scene.PropPosition, r3.Vec{Y: -7}, r+40, true)
	t.queue.AttachAnimation(f.FruitID, scene.PropScale, r3.Vec{X: 1, Y: 1, Z: 1}, r+40, false)
	t.queue.AttachAnimation(f.FruitID, scene.PropScale, r3.Vec{}, r+41, false)
	t.queue.MarkFallen(f.FruitID, r+41)
}
