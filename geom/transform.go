// Package geom provides the rigid transforms used to place tree parts in space.
package geom

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a rigid transform: a rotation followed by a translation.
// Tree parts grow along the local +Z axis of their transform.
type Transform struct {
	Pos r3.Vec
	Rot r3.Rotation
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rot: r3.Rotation(quat.Number{Real: 1})}
}

// Translation returns a pure translation.
func Translation(v r3.Vec) Transform {
	return Transform{Pos: v, Rot: r3.Rotation(quat.Number{Real: 1})}
}

// RotX returns a rotation of angle radians about the X axis.
func RotX(angle float64) Transform {
	return Transform{Rot: r3.NewRotation(angle, r3.Vec{X: 1})}
}

// RotY returns a rotation of angle radians about the Y axis.
func RotY(angle float64) Transform {
	return Transform{Rot: r3.NewRotation(angle, r3.Vec{Y: 1})}
}

// RotZ returns a rotation of angle radians about the Z axis.
func RotZ(angle float64) Transform {
	return Transform{Rot: r3.NewRotation(angle, r3.Vec{Z: 1})}
}

// Mul composes two transforms: the result applies u in t's local frame.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		Pos: r3.Add(t.Pos, t.Rot.Rotate(u.Pos)),
		Rot: r3.Rotation(quat.Mul(quat.Number(t.Rot), quat.Number(u.Rot))),
	}
}

// TranslateZ returns t advanced by dist along its local Z axis.
func (t Transform) TranslateZ(dist float64) Transform {
	return t.Mul(Translation(r3.Vec{Z: dist}))
}

// Apply maps a point from t's local frame to the world frame.
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Add(t.Pos, t.Rot.Rotate(p))
}

// Distance returns the Euclidean distance between two transform origins.
func Distance(a, b Transform) float64 {
	return r3.Norm(r3.Sub(a.Pos, b.Pos))
}
