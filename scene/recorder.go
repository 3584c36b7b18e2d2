package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
)

// Recorder is an in-memory adapter retaining every command it receives, in
// arrival order. It backs tests and the replay viewer.
type Recorder struct {
	commands []Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CreatePart(id, parentID PartID, kind PartKind, tf geom.Transform, size float64, material string) {
	r.commands = append(r.commands, Command{
		Op: OpCreate, ID: id, ParentID: parentID, Kind: kind, Tf: tf, Size: size, Material: material,
	})
}

func (r *Recorder) AttachAnimation(id PartID, prop Property, value r3.Vec, frame float64, relative bool) {
	r.commands = append(r.commands, Command{
		Op: OpAnimate, ID: id, Prop: prop, Value: value, Frame: frame, Relative: relative,
	})
}

func (r *Recorder) MarkFallen(id PartID, frame float64) {
	r.commands = append(r.commands, Command{Op: OpFallen, ID: id, Frame: frame})
}

func (r *Recorder) RemovePart(id PartID) {
	r.commands = append(r.commands, Command{Op: OpRemove, ID: id})
}

// Commands returns all recorded commands in arrival order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Creations returns the recorded part creations, optionally filtered by kind.
func (r *Recorder) Creations(kinds ...PartKind) []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Op != OpCreate {
			continue
		}
		if len(kinds) == 0 {
			out = append(out, c)
			continue
		}
		for _, k := range kinds {
			if c.Kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Fallen returns the ids marked fallen, in arrival order.
func (r *Recorder) Fallen() []PartID {
	var out []PartID
	for _, c := range r.commands {
		if c.Op == OpFallen {
			out = append(out, c.ID)
		}
	}
	return out
}
