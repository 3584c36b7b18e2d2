// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nifets/ArborGen/growth"
	"github.com/nifets/ArborGen/sample"
	"github.com/nifets/ArborGen/species"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Species    SpeciesConfig    `yaml:"species"`
}

// SimulationConfig holds run parameters: the seed, the step size, and the
// growth phases executed in order.
type SimulationConfig struct {
	Seed      uint64        `yaml:"seed"`
	StepDays  int           `yaml:"step_days"`
	OutputDir string        `yaml:"output_dir"` // empty disables CSV output
	Phases    []PhaseConfig `yaml:"phases"`
}

// PhaseConfig is one growth phase: a duration and the per-step probabilities
// gating leaf and flower production during it.
type PhaseConfig struct {
	Days         int     `yaml:"days"`
	LeafGrowth   float64 `yaml:"leaf_growth"`
	FlowerGrowth float64 `yaml:"flower_growth"`
}

// TotalDays returns the summed duration of all phases.
func (s SimulationConfig) TotalDays() int {
	total := 0
	for _, p := range s.Phases {
		total += p.Days
	}
	return total
}

// SpeciesConfig describes one plant species: named part templates, the
// production rules referencing them by name, and the seasonal growth signals.
type SpeciesConfig struct {
	Name     string                  `yaml:"name"`
	StartBud string                  `yaml:"start_bud"`
	RootStem StemConfig              `yaml:"root_stem"`
	Stems    map[string]StemConfig   `yaml:"stems"`
	Leaves   map[string]LeafConfig   `yaml:"leaves"`
	Flowers  map[string]FlowerConfig `yaml:"flowers"`
	Buds     map[string]BudConfig    `yaml:"buds"`
	Rules    map[int]RuleConfig      `yaml:"rules"`
	Signals  SignalsConfig           `yaml:"signals"`
}

// StemConfig is a named stem template.
type StemConfig struct {
	Material    string    `yaml:"material"`
	LengthRatio VarConfig `yaml:"length_ratio"`
}

// LeafConfig is a named leaf template.
type LeafConfig struct {
	Material string    `yaml:"material"`
	Size     VarConfig `yaml:"size"`
}

// FlowerConfig is a named flower/fruit template.
type FlowerConfig struct {
	FlowerMaterial string    `yaml:"flower_material"`
	FruitMaterial  string    `yaml:"fruit_material"`
	Size           VarConfig `yaml:"size"`
}

// BudConfig is a named bud template. Angles are degrees.
type BudConfig struct {
	Type            int       `yaml:"type"`
	Dominance       float64   `yaml:"dominance"`
	BranchAngle     VarConfig `yaml:"branch_angle"`
	DivergenceAngle VarConfig `yaml:"divergence_angle"`
	RollAngle       VarConfig `yaml:"roll_angle"`
}

// RuleConfig is the outcome list of one bud type: weighted shoots plus an
// optional flower template the type may retire into.
type RuleConfig struct {
	Flower string        `yaml:"flower"`
	Shoots []ShootConfig `yaml:"shoots"`
}

// ShootConfig is one weighted shoot production, referencing templates by name.
type ShootConfig struct {
	Weight   float64          `yaml:"weight"`
	Stem     string           `yaml:"stem"`
	Apical   string           `yaml:"apical"`
	Axillary []AxillaryConfig `yaml:"axillary"`
}

// AxillaryConfig pairs a lateral bud template with the leaf grown beside it.
type AxillaryConfig struct {
	Bud  string `yaml:"bud"`
	Leaf string `yaml:"leaf"`
}

// VarConfig is a random variable: a center, a spread, and the distribution
// ("uniform", the default, or "normal").
type VarConfig struct {
	Mean   float64 `yaml:"mean"`
	Spread float64 `yaml:"spread"`
	Dist   string  `yaml:"dist"`
}

func (v VarConfig) toVariable() (sample.RandomVariable, error) {
	if v.Spread < 0 {
		return sample.RandomVariable{}, fmt.Errorf("negative spread %v", v.Spread)
	}
	switch v.Dist {
	case "", "uniform":
		return sample.Uniform(v.Mean, v.Spread), nil
	case "normal":
		return sample.Normal(v.Mean, v.Spread), nil
	default:
		return sample.RandomVariable{}, fmt.Errorf("unknown distribution %q", v.Dist)
	}
}

// SignalsConfig holds the five seasonal growth signals.
type SignalsConfig struct {
	PrimaryGrowth   SignalConfig `yaml:"primary_growth"`
	SecondaryGrowth SignalConfig `yaml:"secondary_growth"`
	Blooming        SignalConfig `yaml:"blooming"`
	FruitGrowth     SignalConfig `yaml:"fruit_growth"`
	LeafDecay       SignalConfig `yaml:"leaf_decay"`
}

// SignalConfig is a growth signal: a cumulative within-year day curve, a
// year-scale curve, and sampling noise. Curve points are [t, value] pairs.
type SignalConfig struct {
	Day   [][]float64 `yaml:"day"`
	Year  [][]float64 `yaml:"year"`
	Noise float64     `yaml:"noise"`
	Dist  string      `yaml:"dist"`
}

func (s SignalConfig) toSignal() (growth.Signal, error) {
	day, err := toCurve(s.Day)
	if err != nil {
		return growth.Signal{}, fmt.Errorf("day curve: %w", err)
	}
	year, err := toCurve(s.Year)
	if err != nil {
		return growth.Signal{}, fmt.Errorf("year curve: %w", err)
	}
	noise, err := VarConfig{Spread: s.Noise, Dist: s.Dist}.toVariable()
	if err != nil {
		return growth.Signal{}, err
	}
	return growth.Signal{Day: day, Year: year, Noise: s.Noise, Dist: noise.Dist}, nil
}

func toCurve(points [][]float64) (growth.Curve, error) {
	curve := make(growth.Curve, 0, len(points))
	prev := 0.0
	for i, p := range points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d components, want [t, value]", i, len(p))
		}
		if i > 0 && p[0] <= prev {
			return nil, fmt.Errorf("point %d: t %v not increasing", i, p[0])
		}
		prev = p[0]
		curve = append(curve, growth.CurvePoint{T: p[0], Value: p[1]})
	}
	return curve, nil
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	sim := c.Simulation
	if sim.StepDays < 1 || sim.StepDays >= growth.YearDays {
		return fmt.Errorf("simulation: step_days %d outside [1, %d)", sim.StepDays, growth.YearDays)
	}
	if len(sim.Phases) == 0 {
		return fmt.Errorf("simulation: no growth phases")
	}
	for i, p := range sim.Phases {
		if p.Days <= 0 {
			return fmt.Errorf("simulation: phase %d has non-positive days %d", i, p.Days)
		}
		if p.LeafGrowth < 0 || p.LeafGrowth > 1 {
			return fmt.Errorf("simulation: phase %d leaf_growth %v outside [0, 1]", i, p.LeafGrowth)
		}
		if p.FlowerGrowth < 0 || p.FlowerGrowth > 1 {
			return fmt.Errorf("simulation: phase %d flower_growth %v outside [0, 1]", i, p.FlowerGrowth)
		}
	}
	return nil
}

// BuildSpecies resolves the species configuration into a validated growth
// species: named template references become concrete templates and the rule
// table passes its structural checks.
func (c *Config) BuildSpecies() (growth.Species, error) {
	sc := c.Species

	rootStem, err := sc.RootStem.toTemplate()
	if err != nil {
		return growth.Species{}, fmt.Errorf("species %s: root_stem: %w", sc.Name, err)
	}
	startCfg, ok := sc.Buds[sc.StartBud]
	if !ok {
		return growth.Species{}, fmt.Errorf("species %s: unknown start bud %q", sc.Name, sc.StartBud)
	}
	startBud, err := startCfg.toTemplate()
	if err != nil {
		return growth.Species{}, fmt.Errorf("species %s: bud %q: %w", sc.Name, sc.StartBud, err)
	}

	rules := species.NewTable()
	for index, rule := range sc.Rules {
		outcomes, weights, err := sc.buildRule(rule)
		if err != nil {
			return growth.Species{}, fmt.Errorf("species %s: rule %d: %w", sc.Name, index, err)
		}
		rules.Add(index, outcomes, weights)
	}
	if err := rules.Validate(); err != nil {
		return growth.Species{}, fmt.Errorf("species %s: %w", sc.Name, err)
	}

	spec := growth.Species{
		Rules:    rules,
		StartBud: startBud,
		RootStem: rootStem,
	}

	signals := []struct {
		name string
		cfg  SignalConfig
		dst  *growth.Signal
	}{
		{"primary_growth", sc.Signals.PrimaryGrowth, &spec.PrimaryGrowth},
		{"secondary_growth", sc.Signals.SecondaryGrowth, &spec.SecondaryGrowth},
		{"blooming", sc.Signals.Blooming, &spec.Blooming},
		{"fruit_growth", sc.Signals.FruitGrowth, &spec.FruitGrowth},
		{"leaf_decay", sc.Signals.LeafDecay, &spec.LeafDecay},
	}
	for _, s := range signals {
		sig, err := s.cfg.toSignal()
		if err != nil {
			return growth.Species{}, fmt.Errorf("species %s: signal %s: %w", sc.Name, s.name, err)
		}
		*s.dst = sig
	}
	return spec, nil
}

func (sc SpeciesConfig) buildRule(rule RuleConfig) ([]species.Outcome, []float64, error) {
	var outcomes []species.Outcome
	var weights []float64

	for i, shoot := range rule.Shoots {
		out, err := sc.buildShoot(shoot)
		if err != nil {
			return nil, nil, fmt.Errorf("shoot %d: %w", i, err)
		}
		outcomes = append(outcomes, out)
		weights = append(weights, shoot.Weight)
	}

	if rule.Flower != "" {
		fc, ok := sc.Flowers[rule.Flower]
		if !ok {
			return nil, nil, fmt.Errorf("unknown flower %q", rule.Flower)
		}
		size, err := fc.Size.toVariable()
		if err != nil {
			return nil, nil, fmt.Errorf("flower %q size: %w", rule.Flower, err)
		}
		outcomes = append(outcomes, species.FlowerOutcome{Flower: species.FlowerTemplate{
			Size:           size,
			FlowerMaterial: fc.FlowerMaterial,
			FruitMaterial:  fc.FruitMaterial,
		}})
		// Flowering is potential-driven, not weighted against shoots.
		weights = append(weights, 0)
	}
	return outcomes, weights, nil
}

func (sc SpeciesConfig) buildShoot(shoot ShootConfig) (species.ShootOutcome, error) {
	stemCfg, ok := sc.Stems[shoot.Stem]
	if !ok {
		return species.ShootOutcome{}, fmt.Errorf("unknown stem %q", shoot.Stem)
	}
	stem, err := stemCfg.toTemplate()
	if err != nil {
		return species.ShootOutcome{}, fmt.Errorf("stem %q: %w", shoot.Stem, err)
	}

	apicalCfg, ok := sc.Buds[shoot.Apical]
	if !ok {
		return species.ShootOutcome{}, fmt.Errorf("unknown bud %q", shoot.Apical)
	}
	apical, err := apicalCfg.toTemplate()
	if err != nil {
		return species.ShootOutcome{}, fmt.Errorf("bud %q: %w", shoot.Apical, err)
	}

	out := species.ShootOutcome{Stem: stem, ApicalBud: apical}
	for _, axil := range shoot.Axillary {
		budCfg, ok := sc.Buds[axil.Bud]
		if !ok {
			return species.ShootOutcome{}, fmt.Errorf("unknown bud %q", axil.Bud)
		}
		bud, err := budCfg.toTemplate()
		if err != nil {
			return species.ShootOutcome{}, fmt.Errorf("bud %q: %w", axil.Bud, err)
		}
		pair := species.AxillaryPair{Bud: bud}
		if axil.Leaf != "" {
			leafCfg, ok := sc.Leaves[axil.Leaf]
			if !ok {
				return species.ShootOutcome{}, fmt.Errorf("unknown leaf %q", axil.Leaf)
			}
			size, err := leafCfg.Size.toVariable()
			if err != nil {
				return species.ShootOutcome{}, fmt.Errorf("leaf %q size: %w", axil.Leaf, err)
			}
			pair.Leaf = species.LeafTemplate{Size: size, Material: leafCfg.Material}
		}
		out.Axillary = append(out.Axillary, pair)
	}
	return out, nil
}

func (s StemConfig) toTemplate() (species.StemTemplate, error) {
	ratio, err := s.LengthRatio.toVariable()
	if err != nil {
		return species.StemTemplate{}, fmt.Errorf("length_ratio: %w", err)
	}
	return species.StemTemplate{LengthRatio: ratio, Material: s.Material}, nil
}

func (b BudConfig) toTemplate() (species.BudTemplate, error) {
	branch, err := b.BranchAngle.toVariable()
	if err != nil {
		return species.BudTemplate{}, fmt.Errorf("branch_angle: %w", err)
	}
	div, err := b.DivergenceAngle.toVariable()
	if err != nil {
		return species.BudTemplate{}, fmt.Errorf("divergence_angle: %w", err)
	}
	roll, err := b.RollAngle.toVariable()
	if err != nil {
		return species.BudTemplate{}, fmt.Errorf("roll_angle: %w", err)
	}
	return species.BudTemplate{
		TypeIndex:       b.Type,
		Dominance:       b.Dominance,
		BranchAngle:     branch,
		DivergenceAngle: div,
		RollAngle:       roll,
	}, nil
}
