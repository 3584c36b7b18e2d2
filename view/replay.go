// Package view replays a recorded growth run in an interactive 3D window.
package view

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
	"github.com/nifets/ArborGen/scene"
)

// key is one resolved animation keyframe with an absolute value.
type key struct {
	frame float64
	value r3.Vec
}

// track is a piecewise-linear animation channel. Keys are sorted by frame;
// relative keyframes have already been folded into absolute values.
type track struct {
	keys []key
}

func (t *track) append(frame float64, value r3.Vec, relative bool, base r3.Vec) {
	if relative {
		prev := base
		if n := len(t.keys); n > 0 {
			prev = t.keys[n-1].value
		}
		value = r3.Add(prev, value)
	}
	t.keys = append(t.keys, key{frame: frame, value: value})
}

// at evaluates the channel at the given frame, clamping outside the key range.
func (t *track) at(frame float64, base r3.Vec) r3.Vec {
	if len(t.keys) == 0 {
		return base
	}
	if frame <= t.keys[0].frame {
		return t.keys[0].value
	}
	last := t.keys[len(t.keys)-1]
	if frame >= last.frame {
		return last.value
	}
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].frame > frame })
	p, q := t.keys[i-1], t.keys[i]
	if q.frame == p.frame {
		return q.value
	}
	f := (frame - p.frame) / (q.frame - p.frame)
	return r3.Add(p.value, r3.Scale(f, r3.Sub(q.value, p.value)))
}

func (t *track) firstFrame() float64 {
	if len(t.keys) == 0 {
		return 0
	}
	return t.keys[0].frame
}

// Part is one replayable scene part with its resolved animation channels.
type Part struct {
	ID       scene.PartID
	ParentID scene.PartID
	Kind     scene.PartKind
	Tf       geom.Transform
	Size     float64
	Material string

	scale    track
	offset   track
	fallenAt float64
}

var (
	scaleBase  = r3.Vec{X: 1, Y: 1, Z: 1}
	offsetBase = r3.Vec{}
)

// Scale evaluates the part's scale channel at the given frame.
func (p *Part) Scale(frame float64) r3.Vec {
	return p.scale.at(frame, scaleBase)
}

// Offset evaluates the part's position offset at the given frame.
func (p *Part) Offset(frame float64) r3.Vec {
	return p.offset.at(frame, offsetBase)
}

// Visible reports whether the part has appeared by the given frame.
func (p *Part) Visible(frame float64) bool {
	return frame >= p.scale.firstFrame()
}

// Fallen reports whether the part lies on the ground at the given frame.
func (p *Part) Fallen(frame float64) bool {
	return frame >= p.fallenAt
}

// Replay is the resolved scene of one recorded run.
type Replay struct {
	Parts      []*Part
	TotalFrame float64
}

// NewReplay folds a recorded command stream into replayable parts. Relative
// animation keys become absolute by accumulating in arrival order, which
// matches frame order within a channel.
func NewReplay(commands []scene.Command, totalFrame float64) *Replay {
	parts := make(map[scene.PartID]*Part)
	var order []*Part

	for _, c := range commands {
		switch c.Op {
		case scene.OpCreate:
			p := &Part{
				ID:       c.ID,
				ParentID: c.ParentID,
				Kind:     c.Kind,
				Tf:       c.Tf,
				Size:     c.Size,
				Material: c.Material,
				fallenAt: math.Inf(1),
			}
			parts[c.ID] = p
			order = append(order, p)
		case scene.OpAnimate:
			p, ok := parts[c.ID]
			if !ok {
				continue
			}
			switch c.Prop {
			case scene.PropScale:
				p.scale.append(c.Frame, c.Value, c.Relative, scaleBase)
			case scene.PropPosition:
				p.offset.append(c.Frame, c.Value, c.Relative, offsetBase)
			}
		case scene.OpFallen:
			if p, ok := parts[c.ID]; ok && c.Frame < p.fallenAt {
				p.fallenAt = c.Frame
			}
		case scene.OpRemove:
			if p, ok := parts[c.ID]; ok {
				delete(parts, c.ID)
				for i, q := range order {
					if q == p {
						order = append(order[:i], order[i+1:]...)
						break
					}
				}
			}
		}
	}

	return &Replay{Parts: order, TotalFrame: totalFrame}
}
