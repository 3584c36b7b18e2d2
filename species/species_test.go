package species

import (
	"errors"
	"testing"

	"github.com/nifets/ArborGen/sample"
)

func budT(index int, dominance float64) BudTemplate {
	return BudTemplate{TypeIndex: index, Dominance: dominance}
}

func shoot(apical BudTemplate) ShootOutcome {
	return ShootOutcome{Stem: StemTemplate{LengthRatio: sample.Uniform(0.9, 0)}, ApicalBud: apical}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Table
		wantErr error
	}{
		{
			name: "valid single type",
			build: func() *Table {
				tb := NewTable()
				tb.Add(0, []Outcome{shoot(budT(0, 1))}, []float64{1})
				return tb
			},
		},
		{
			name: "missing type zero",
			build: func() *Table {
				tb := NewTable()
				tb.Add(1, []Outcome{shoot(budT(1, 1))}, []float64{1})
				return tb
			},
			wantErr: ErrInvalidBudType,
		},
		{
			name: "weight length mismatch",
			build: func() *Table {
				tb := NewTable()
				tb.Add(0, []Outcome{shoot(budT(0, 1))}, []float64{1, 2})
				return tb
			},
			wantErr: ErrInvalidProductionRule,
		},
		{
			name: "negative weight",
			build: func() *Table {
				tb := NewTable()
				tb.Add(0, []Outcome{shoot(budT(0, 1))}, []float64{-1})
				return tb
			},
			wantErr: ErrInvalidProductionRule,
		},
		{
			name: "all-zero shoot weights",
			build: func() *Table {
				tb := NewTable()
				tb.Add(0, []Outcome{shoot(budT(0, 1)), FlowerOutcome{}}, []float64{0, 1})
				return tb
			},
			wantErr: ErrInvalidProductionRule,
		},
		{
			name: "unknown referenced type",
			build: func() *Table {
				tb := NewTable()
				tb.Add(0, []Outcome{shoot(budT(7, 1))}, []float64{1})
				return tb
			},
			wantErr: ErrInvalidBudType,
		},
		{
			name: "axillary references unknown type",
			build: func() *Table {
				tb := NewTable()
				out := shoot(budT(0, 1))
				out.Axillary = []AxillaryPair{{Bud: budT(3, 1)}}
				tb.Add(0, []Outcome{out}, []float64{1})
				return tb
			},
			wantErr: ErrInvalidBudType,
		},
		{
			name: "non-positive dominance",
			build: func() *Table {
				tb := NewTable()
				tb.Add(0, []Outcome{shoot(budT(0, 0))}, []float64{1})
				return tb
			},
			wantErr: ErrInvalidBudType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveShoot(t *testing.T) {
	s := sample.New(1)

	tb := NewTable()
	wide := shoot(budT(0, 1))
	wide.Stem.Material = "wide"
	narrow := shoot(budT(0, 1))
	narrow.Stem.Material = "narrow"
	// Only "wide" carries weight; "narrow" and the flower must never win.
	tb.Add(0, []Outcome{wide, narrow, FlowerOutcome{}}, []float64{1, 0, 5})
	if err := tb.Validate(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		got, err := tb.ResolveShoot(s, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got.Stem.Material != "wide" {
			t.Fatalf("ResolveShoot picked %q, want \"wide\"", got.Stem.Material)
		}
	}
}

func TestResolveShootUnknownType(t *testing.T) {
	tb := NewTable()
	tb.Add(0, []Outcome{shoot(budT(0, 1))}, []float64{1})
	if _, err := tb.ResolveShoot(sample.New(1), 9); !errors.Is(err, ErrInvalidBudType) {
		t.Fatalf("ResolveShoot(9) err = %v, want ErrInvalidBudType", err)
	}
}

func TestResolveFlower(t *testing.T) {
	tb := NewTable()
	tb.Add(0, []Outcome{shoot(budT(0, 1))}, []float64{1})
	tb.Add(1, []Outcome{shoot(budT(1, 1)), FlowerOutcome{Flower: FlowerTemplate{FlowerMaterial: "rose"}}}, []float64{1, 1})

	if _, ok, err := tb.ResolveFlower(0); err != nil || ok {
		t.Fatalf("type 0 should have no flower outcome (ok=%v err=%v)", ok, err)
	}
	flower, ok, err := tb.ResolveFlower(1)
	if err != nil || !ok {
		t.Fatalf("type 1 should have a flower outcome (ok=%v err=%v)", ok, err)
	}
	if flower.Flower.FlowerMaterial != "rose" {
		t.Errorf("flower material = %q, want \"rose\"", flower.Flower.FlowerMaterial)
	}
	if _, _, err := tb.ResolveFlower(4); !errors.Is(err, ErrInvalidBudType) {
		t.Errorf("ResolveFlower(4) err = %v, want ErrInvalidBudType", err)
	}
}
