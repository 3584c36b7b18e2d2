package scene

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
)

// Op identifies a buffered adapter command.
type Op uint8

const (
	OpCreate Op = iota
	OpAnimate
	OpFallen
	OpRemove
)

// Command is one deferred adapter call.
type Command struct {
	Op       Op
	ID       PartID
	ParentID PartID
	Kind     PartKind
	Tf       geom.Transform
	Size     float64
	Material string
	Prop     Property
	Value    r3.Vec
	Frame    float64
	Relative bool
}

// Queue buffers adapter commands for one simulation step. It implements
// Adapter so the engine can write to it directly.
type Queue struct {
	pending []Command
}

// NewQueue creates an empty command queue.
func NewQueue() *Queue {
	return &Queue{}
}

// CreatePart buffers a part creation.
func (q *Queue) CreatePart(id, parentID PartID, kind PartKind, tf geom.Transform, size float64, material string) {
	q.pending = append(q.pending, Command{
		Op: OpCreate, ID: id, ParentID: parentID, Kind: kind, Tf: tf, Size: size, Material: material,
	})
}

// AttachAnimation buffers a keyframe.
func (q *Queue) AttachAnimation(id PartID, prop Property, value r3.Vec, frame float64, relative bool) {
	q.pending = append(q.pending, Command{
		Op: OpAnimate, ID: id, Prop: prop, Value: value, Frame: frame, Relative: relative,
	})
}

// MarkFallen buffers a detach notification.
func (q *Queue) MarkFallen(id PartID, frame float64) {
	q.pending = append(q.pending, Command{Op: OpFallen, ID: id, Frame: frame})
}

// RemovePart buffers a removal.
func (q *Queue) RemovePart(id PartID) {
	q.pending = append(q.pending, Command{Op: OpRemove, ID: id})
}

// Len reports the number of buffered commands.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Flush emits all buffered commands to the adapter in part-id order,
// preserving per-part command order, then clears the queue.
func (q *Queue) Flush(a Adapter) {
	sort.SliceStable(q.pending, func(i, j int) bool {
		return q.pending[i].ID < q.pending[j].ID
	})
	for _, c := range q.pending {
		switch c.Op {
		case OpCreate:
			a.CreatePart(c.ID, c.ParentID, c.Kind, c.Tf, c.Size, c.Material)
		case OpAnimate:
			a.AttachAnimation(c.ID, c.Prop, c.Value, c.Frame, c.Relative)
		case OpFallen:
			a.MarkFallen(c.ID, c.Frame)
		case OpRemove:
			a.RemovePart(c.ID)
		}
	}
	q.pending = q.pending[:0]
}
