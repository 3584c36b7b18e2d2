package view

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
	"github.com/nifets/ArborGen/scene"
)

func stemCommands() []scene.Command {
	// Sprout choreography: hidden at 100, thickness and most of the length
	// by 120, full length by 140.
	return []scene.Command{
		{Op: scene.OpCreate, ID: 1, Kind: scene.KindStem, Tf: geom.Identity(), Size: 2, Material: "bark"},
		{Op: scene.OpAnimate, ID: 1, Prop: scene.PropScale, Value: r3.Vec{}, Frame: 100},
		{Op: scene.OpAnimate, ID: 1, Prop: scene.PropScale, Value: r3.Vec{X: 0.9, Y: 0.7, Z: 0.9}, Frame: 120, Relative: true},
		{Op: scene.OpAnimate, ID: 1, Prop: scene.PropScale, Value: r3.Vec{Y: 0.3}, Frame: 140, Relative: true},
	}
}

func TestRelativeKeysAccumulate(t *testing.T) {
	replay := NewReplay(stemCommands(), 200)
	if len(replay.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(replay.Parts))
	}
	p := replay.Parts[0]

	if got := p.Scale(100); got != (r3.Vec{}) {
		t.Errorf("scale at sprout start = %v, want zero", got)
	}
	if got := p.Scale(120); got != (r3.Vec{X: 0.9, Y: 0.7, Z: 0.9}) {
		t.Errorf("scale mid sprout = %v", got)
	}
	want := r3.Vec{X: 0.9, Y: 1.0, Z: 0.9}
	if got := p.Scale(140); math.Abs(got.Y-want.Y) > 1e-12 || got.X != want.X {
		t.Errorf("scale after sprout = %v, want %v", got, want)
	}
	// Clamped past the last key.
	if got := p.Scale(10000); math.Abs(got.Y-1.0) > 1e-12 {
		t.Errorf("scale clamp = %v, want Y 1", got)
	}
}

func TestKeyInterpolationIsLinear(t *testing.T) {
	replay := NewReplay(stemCommands(), 200)
	p := replay.Parts[0]

	got := p.Scale(110)
	if math.Abs(got.Y-0.35) > 1e-12 {
		t.Errorf("scale.Y at midpoint = %v, want 0.35", got.Y)
	}
}

func TestVisibilityStartsAtFirstKey(t *testing.T) {
	replay := NewReplay(stemCommands(), 200)
	p := replay.Parts[0]

	if p.Visible(99) {
		t.Error("part visible before its first keyframe")
	}
	if !p.Visible(100) {
		t.Error("part invisible at its first keyframe")
	}
}

func TestFallenAndRemove(t *testing.T) {
	cmds := []scene.Command{
		{Op: scene.OpCreate, ID: 1, Kind: scene.KindLeaf, Size: 0.3},
		{Op: scene.OpFallen, ID: 1, Frame: 150},
		{Op: scene.OpCreate, ID: 2, Kind: scene.KindLeaf, Size: 0.3},
		{Op: scene.OpRemove, ID: 2},
	}
	replay := NewReplay(cmds, 200)

	if len(replay.Parts) != 1 {
		t.Fatalf("parts = %d, want 1 after remove", len(replay.Parts))
	}
	p := replay.Parts[0]
	if p.Fallen(149) {
		t.Error("fallen before its mark")
	}
	if !p.Fallen(150) {
		t.Error("not fallen at its mark")
	}
}

func TestOffsetDefaultsToZero(t *testing.T) {
	replay := NewReplay(stemCommands(), 200)
	p := replay.Parts[0]
	if got := p.Offset(120); got != (r3.Vec{}) {
		t.Errorf("offset with no position keys = %v, want zero", got)
	}
}

func TestAnimationForUnknownPartIgnored(t *testing.T) {
	cmds := []scene.Command{
		{Op: scene.OpAnimate, ID: 9, Prop: scene.PropScale, Frame: 10},
	}
	replay := NewReplay(cmds, 100)
	if len(replay.Parts) != 0 {
		t.Fatalf("parts = %d, want 0", len(replay.Parts))
	}
}
