// Package scene defines the contract between the growth engine and whatever
// hosts the resulting geometry. The engine never talks to an adapter
// mid-computation: it buffers commands in a Queue and flushes them once per
// step in part-id order, so expensive host-side mutations stay batched.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
)

// PartID identifies one scene part. Ids are unique and strictly increasing
// across a simulation; id 0 is the scene root.
type PartID uint64

// PartKind classifies a scene part.
type PartKind uint8

const (
	KindStem PartKind = iota
	KindLeaf
	KindFlower
	KindFruit
)

func (k PartKind) String() string {
	switch k {
	case KindStem:
		return "stem"
	case KindLeaf:
		return "leaf"
	case KindFlower:
		return "flower"
	case KindFruit:
		return "fruit"
	}
	return "unknown"
}

// Property selects which animated channel a keyframe targets.
type Property uint8

const (
	PropScale Property = iota
	PropPosition
)

func (p Property) String() string {
	switch p {
	case PropScale:
		return "scale"
	case PropPosition:
		return "position"
	}
	return "unknown"
}

// Adapter receives the structural and animation changes of a growing plant.
// Frames are fractional simulated days since the start of the run; rounding
// is the host's concern.
type Adapter interface {
	// CreatePart introduces a new part under parentID at the given transform.
	// Size is the part's natural scale (stem length, leaf/flower size) and
	// material is the species' appearance tag for the part.
	CreatePart(id, parentID PartID, kind PartKind, tf geom.Transform, size float64, material string)

	// AttachAnimation adds a keyframe on one animated property of a part.
	// Relative values add onto the part's current channel value.
	AttachAnimation(id PartID, prop Property, value r3.Vec, frame float64, relative bool)

	// MarkFallen tells the host the part has detached from the live plant.
	MarkFallen(id PartID, frame float64)

	// RemovePart tells the host the part is gone entirely.
	RemovePart(id PartID)
}
