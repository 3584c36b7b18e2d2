package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nifets/ArborGen/geom"
)

func TestFlushOrdersByPartID(t *testing.T) {
	q := NewQueue()
	rec := NewRecorder()

	// Interleave commands across parts out of id order.
	q.AttachAnimation(5, PropScale, r3.Vec{}, 1, false)
	q.CreatePart(2, 0, KindStem, geom.Identity(), 1, "bark")
	q.AttachAnimation(2, PropScale, r3.Vec{X: 1}, 2, false)
	q.CreatePart(5, 2, KindLeaf, geom.Identity(), 0.3, "leaf")
	q.MarkFallen(2, 9)

	q.Flush(rec)

	got := rec.Commands()
	wantIDs := []PartID{2, 2, 2, 5, 5}
	if len(got) != len(wantIDs) {
		t.Fatalf("flushed %d commands, want %d", len(got), len(wantIDs))
	}
	for i, c := range got {
		if c.ID != wantIDs[i] {
			t.Errorf("command %d has id %d, want %d", i, c.ID, wantIDs[i])
		}
	}

	// Per-part order preserved: part 5's animation was queued before its
	// creation, so it must still come first among part 5's commands.
	if got[3].Op != OpAnimate || got[4].Op != OpCreate {
		t.Errorf("per-part command order not preserved: %v, %v", got[3].Op, got[4].Op)
	}

	if q.Len() != 0 {
		t.Errorf("queue not cleared after flush: %d pending", q.Len())
	}
}

func TestRecorderFilters(t *testing.T) {
	rec := NewRecorder()
	rec.CreatePart(1, 0, KindStem, geom.Identity(), 1, "")
	rec.CreatePart(2, 1, KindLeaf, geom.Identity(), 0.3, "")
	rec.CreatePart(3, 1, KindFlower, geom.Identity(), 0.3, "")
	rec.MarkFallen(2, 40)

	if n := len(rec.Creations()); n != 3 {
		t.Errorf("Creations() = %d, want 3", n)
	}
	if n := len(rec.Creations(KindLeaf)); n != 1 {
		t.Errorf("Creations(KindLeaf) = %d, want 1", n)
	}
	fallen := rec.Fallen()
	if len(fallen) != 1 || fallen[0] != 2 {
		t.Errorf("Fallen() = %v, want [2]", fallen)
	}
}

func TestCSVAdapterWritesFiles(t *testing.T) {
	dir := t.TempDir()
	a, err := NewCSVAdapter(dir)
	if err != nil {
		t.Fatal(err)
	}

	a.CreatePart(1, 0, KindStem, geom.Identity(), 1.5, "bark")
	a.AttachAnimation(1, PropScale, r3.Vec{X: 0.9, Y: 0.7, Z: 0.9}, 20, true)
	a.MarkFallen(1, 99)
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	parts, err := os.ReadFile(filepath.Join(dir, "parts.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(parts), "bark") {
		t.Errorf("parts.csv missing material tag:\n%s", parts)
	}
	keys, err := os.ReadFile(filepath.Join(dir, "keyframes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(keys), "scale") {
		t.Errorf("keyframes.csv missing property:\n%s", keys)
	}
	events, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(events), "fallen") {
		t.Errorf("events.csv missing fallen event:\n%s", events)
	}
}
