package sample

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestZeroSpreadIsDeterministic(t *testing.T) {
	tests := []struct {
		name string
		rv   RandomVariable
	}{
		{"uniform", Uniform(3.5, 0)},
		{"normal", Normal(-2.0, 0)},
	}

	s := New(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 10; i++ {
				if got := s.Value(tt.rv); got != tt.rv.Center {
					t.Fatalf("Value = %v, want %v", got, tt.rv.Center)
				}
			}
		})
	}
}

func TestUniformStaysInBounds(t *testing.T) {
	s := New(42)
	rv := Uniform(10, 2)
	for i := 0; i < 1000; i++ {
		v := s.Value(rv)
		if v < 8 || v > 12 {
			t.Fatalf("uniform sample %v outside [8, 12]", v)
		}
	}
}

func TestNormalMean(t *testing.T) {
	s := New(7)
	rv := Normal(5, 0.5)
	vals := make([]float64, 20000)
	for i := range vals {
		vals[i] = s.Value(rv)
	}
	mean := stat.Mean(vals, nil)
	if math.Abs(mean-5) > 0.05 {
		t.Errorf("sample mean = %v, want ~5", mean)
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	a := New(99)
	b := New(99)
	rv := Uniform(0, 1)
	for i := 0; i < 100; i++ {
		if a.Value(rv) != b.Value(rv) {
			t.Fatal("same seed produced diverging sequences")
		}
	}
}

func TestChance(t *testing.T) {
	s := New(3)
	for i := 0; i < 100; i++ {
		if !s.Chance(1.0) {
			t.Fatal("Chance(1.0) must always succeed")
		}
		if s.Chance(0.0) {
			t.Fatal("Chance(0.0) must never succeed")
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	s := New(11)

	// A single positive weight always wins.
	weights := []float64{0, 1, 0}
	for i := 0; i < 50; i++ {
		if got := s.WeightedIndex(weights); got != 1 {
			t.Fatalf("WeightedIndex = %d, want 1", got)
		}
	}

	// Relative weights roughly respected.
	counts := [2]int{}
	for i := 0; i < 10000; i++ {
		counts[s.WeightedIndex([]float64{3, 1})]++
	}
	ratio := float64(counts[0]) / float64(counts[1])
	if ratio < 2.5 || ratio > 3.5 {
		t.Errorf("weight ratio = %v, want ~3", ratio)
	}
}

func TestRange(t *testing.T) {
	s := New(5)
	for i := 0; i < 1000; i++ {
		v := s.Range(0, 10)
		if v < 0 || v >= 10 {
			t.Fatalf("Range sample %v outside [0, 10)", v)
		}
	}
	if v := s.Range(4, 4); v != 4 {
		t.Errorf("degenerate Range = %v, want 4", v)
	}
}
