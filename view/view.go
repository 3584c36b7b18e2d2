package view

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/scene"
)

// Options configures the replay window.
type Options struct {
	Width  int32
	Height int32
	FPS    int32
	Title  string
}

const baseStemRadius = 0.06

// Run opens the replay viewer and blocks until the window closes. The camera
// orbits the tree; space pauses, the bottom sliders scrub time and set the
// playback speed in days per second.
func Run(opts Options, commands []scene.Command, totalFrame float64) {
	if opts.Width == 0 {
		opts.Width = 1280
	}
	if opts.Height == 0 {
		opts.Height = 720
	}
	if opts.FPS == 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "ArborGen"
	}

	replay := NewReplay(commands, totalFrame)

	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.FPS)

	camera := rl.Camera3D{
		Position:   rl.Vector3{X: 9, Y: 6, Z: 9},
		Target:     rl.Vector3{Y: 3},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	frame := 0.0
	speed := float32(120) // days per second
	paused := false

	for !rl.WindowShouldClose() {
		rl.UpdateCamera(&camera, rl.CameraOrbital)

		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if !paused {
			frame += float64(speed) * float64(rl.GetFrameTime())
			if frame > replay.TotalFrame {
				frame = replay.TotalFrame
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginMode3D(camera)
		rl.DrawGrid(16, 1)
		for _, p := range replay.Parts {
			drawPart(p, frame)
		}
		rl.EndMode3D()

		year := int(frame) / 365
		day := int(frame) % 365
		rl.DrawText(fmt.Sprintf("year %d  day %d", year, day), 10, 10, 20, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("%d parts", len(replay.Parts)), 10, 34, 16, rl.Gray)
		if paused {
			rl.DrawText("paused", 10, 54, 16, rl.Maroon)
		}

		sliderW := float32(opts.Width - 220)
		frame = float64(gui.SliderBar(
			rl.Rectangle{X: 100, Y: float32(opts.Height - 60), Width: sliderW, Height: 16},
			"time", "",
			float32(frame), 0, float32(replay.TotalFrame),
		))
		speed = gui.SliderBar(
			rl.Rectangle{X: 100, Y: float32(opts.Height - 34), Width: sliderW, Height: 16},
			"speed", fmt.Sprintf("%.0f d/s", speed),
			speed, 0, 600,
		)

		rl.EndDrawing()
	}
}

// toWorld maps a simulation vector (Z up) into raylib's Y-up space.
func toWorld(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Z), Z: float32(v.Y)}
}

func drawPart(p *Part, frame float64) {
	if !p.Visible(frame) {
		return
	}
	scale := p.Scale(frame)
	pos := r3.Add(p.Tf.Pos, p.Offset(frame))

	switch p.Kind {
	case scene.KindStem:
		// Scale Y tracks elongation, X the accumulated thickness.
		length := p.Size * scale.Y
		if length <= 0 {
			return
		}
		axis := p.Tf.Rot.Rotate(r3.Vec{Z: 1})
		tip := r3.Add(pos, r3.Scale(length, axis))
		radius := float32(baseStemRadius * (1 + scale.X))
		rl.DrawCylinderEx(toWorld(pos), toWorld(tip), radius, radius*0.8, 8, materialColor(p.Material))
	default:
		radius := float32(p.Size * scale.X)
		if radius <= 0 {
			return
		}
		rl.DrawSphere(toWorld(pos), radius, materialColor(p.Material))
	}
}

func materialColor(material string) rl.Color {
	switch material {
	case "root", "oak_trunk":
		return rl.NewColor(101, 67, 33, 255)
	case "stem", "bark":
		return rl.Brown
	case "oak_leaf", "foliage":
		return rl.NewColor(58, 122, 40, 255)
	case "oak_flower", "petal":
		return rl.NewColor(245, 240, 200, 255)
	case "acorn", "fruit":
		return rl.NewColor(146, 94, 42, 255)
	default:
		return rl.Gray
	}
}
