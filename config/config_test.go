package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nifets/ArborGen/sample"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Simulation.StepDays != 20 {
		t.Errorf("step_days = %d, want 20", cfg.Simulation.StepDays)
	}
	if len(cfg.Simulation.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(cfg.Simulation.Phases))
	}
	if got := cfg.Simulation.TotalDays(); got != 5790 {
		t.Errorf("total days = %d, want 5790", got)
	}
	if cfg.Species.Name != "oak" {
		t.Errorf("species name = %q, want \"oak\"", cfg.Species.Name)
	}
}

func TestDefaultsBuildValidSpecies(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	spec, err := cfg.BuildSpecies()
	if err != nil {
		t.Fatal(err)
	}

	if spec.StartBud.TypeIndex != 0 {
		t.Errorf("start bud type = %d, want 0", spec.StartBud.TypeIndex)
	}
	if spec.StartBud.Dominance != 8.0 {
		t.Errorf("start bud dominance = %v, want 8", spec.StartBud.Dominance)
	}
	for i := 0; i <= 4; i++ {
		if !spec.Rules.Has(i) {
			t.Errorf("rule table missing bud type %d", i)
		}
	}
	// Spring flush: the primary day curve must rise over the growing season.
	if got := spec.PrimaryGrowth.Day.Evaluate(220) - spec.PrimaryGrowth.Day.Evaluate(75); got <= 0 {
		t.Errorf("primary growth over the season = %v, want positive", got)
	}
	if spec.LeafDecay.Day.Evaluate(365) <= spec.LeafDecay.Day.Evaluate(200) {
		t.Error("leaf decay must accumulate toward the end of the year")
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	override := []byte("simulation:\n  seed: 7\n  step_days: 10\n")
	if err := os.WriteFile(path, override, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Seed != 7 || cfg.Simulation.StepDays != 10 {
		t.Errorf("override not applied: seed=%d step_days=%d", cfg.Simulation.Seed, cfg.Simulation.StepDays)
	}
	// Untouched sections keep their defaults.
	if cfg.Species.Name != "oak" {
		t.Errorf("species name = %q, want default \"oak\"", cfg.Species.Name)
	}
}

func TestLoadRejectsInvalidSimulation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"step too long", "simulation:\n  step_days: 400\n"},
		{"zero step", "simulation:\n  step_days: 0\n"},
		{"leaf growth above one", "simulation:\n  phases:\n    - {days: 100, leaf_growth: 1.5, flower_growth: 0}\n"},
		{"negative phase days", "simulation:\n  phases:\n    - {days: -5, leaf_growth: 1, flower_growth: 1}\n"},
	}
	dir := t.TempDir()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestBuildSpeciesRejectsDanglingNames(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name   string
		mangle func(*Config)
	}{
		{"unknown start bud", func(c *Config) { c.Species.StartBud = "nope" }},
		{"unknown stem", func(c *Config) {
			r := c.Species.Rules[0]
			r.Shoots[0].Stem = "nope"
			c.Species.Rules[0] = r
		}},
		{"unknown apical bud", func(c *Config) {
			r := c.Species.Rules[0]
			r.Shoots[0].Apical = "nope"
			c.Species.Rules[0] = r
		}},
		{"unknown leaf", func(c *Config) {
			r := c.Species.Rules[0]
			r.Shoots[0].Axillary[0].Leaf = "nope"
			c.Species.Rules[0] = r
		}},
		{"unknown flower", func(c *Config) {
			r := c.Species.Rules[0]
			r.Flower = "nope"
			c.Species.Rules[0] = r
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mangle(cfg)
			if _, err := cfg.BuildSpecies(); err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}

func TestVarConfigDistributions(t *testing.T) {
	rv, err := VarConfig{Mean: 1, Spread: 0.5}.toVariable()
	if err != nil {
		t.Fatal(err)
	}
	if rv.Dist != sample.DistUniform {
		t.Error("empty dist must default to uniform")
	}

	rv, err = VarConfig{Mean: 1, Spread: 0.5, Dist: "normal"}.toVariable()
	if err != nil {
		t.Fatal(err)
	}
	if rv.Dist != sample.DistNormal {
		t.Error("normal dist not applied")
	}

	if _, err := (VarConfig{Dist: "cauchy"}).toVariable(); err == nil {
		t.Error("unknown dist accepted")
	}
	if _, err := (VarConfig{Spread: -1}).toVariable(); err == nil {
		t.Error("negative spread accepted")
	}
}

func TestCurveParsing(t *testing.T) {
	if _, err := toCurve([][]float64{{0, 1, 2}}); err == nil {
		t.Error("triple accepted as curve point")
	}
	if _, err := toCurve([][]float64{{10, 0}, {5, 1}}); err == nil {
		t.Error("non-increasing t accepted")
	}
	curve, err := toCurve([][]float64{{0, 0}, {100, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if got := curve.Evaluate(50); got != 1 {
		t.Errorf("Evaluate(50) = %v, want 1", got)
	}
}
