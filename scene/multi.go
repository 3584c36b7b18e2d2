package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
)

// Multi fans every command out to a list of adapters, in order.
type Multi []Adapter

func (m Multi) CreatePart(id, parentID PartID, kind PartKind, tf geom.Transform, size float64, material string) {
	for _, a := range m {
		a.CreatePart(id, parentID, kind, tf, size, material)
	}
}

func (m Multi) AttachAnimation(id PartID, prop Property, value r3.Vec, frame float64, relative bool) {
	for _, a := range m {
		a.AttachAnimation(id, prop, value, frame, relative)
	}
}

func (m Multi) MarkFallen(id PartID, frame float64) {
	for _, a := range m {
		a.MarkFallen(id, frame)
	}
}

func (m Multi) RemovePart(id PartID) {
	for _, a := range m {
		a.RemovePart(id)
	}
}
