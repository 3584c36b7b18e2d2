package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/nifets/ArborGen/config"
	"github.com/nifets/ArborGen/growth"
	"github.com/nifets/ArborGen/scene"
	"github.com/nifets/ArborGen/telemetry"
	"github.com/nifets/ArborGen/view"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Grow without opening the replay viewer")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, time-based if that is 0 too)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV exports (overrides config)")
	days := flag.Int("days", 0, "Grow a single phase of N days instead of the config phases")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	spec, err := cfg.BuildSpecies()
	if err != nil {
		slog.Error("invalid species config", "error", err)
		os.Exit(1)
	}

	rngSeed := cfg.Simulation.Seed
	if *seed != 0 {
		rngSeed = *seed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	outDir := cfg.Simulation.OutputDir
	if *outputDir != "" {
		outDir = *outputDir
	}

	phases := cfg.Simulation.Phases
	if *days > 0 {
		phases = []config.PhaseConfig{{Days: *days, LeafGrowth: 1, FlowerGrowth: 1}}
	}

	// Scene adapters: the recorder backs the viewer, the CSV adapter the
	// on-disk export. Either may be absent.
	var adapters scene.Multi
	var rec *scene.Recorder
	if !*headless {
		rec = scene.NewRecorder()
		adapters = append(adapters, rec)
	}
	if outDir != "" {
		csvOut, err := scene.NewCSVAdapter(outDir)
		if err != nil {
			slog.Error("failed to open scene output", "dir", outDir, "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := csvOut.Close(); err != nil {
				slog.Error("failed to close scene output", "error", err)
			}
		}()
		adapters = append(adapters, csvOut)
	}
	var adapter scene.Adapter
	if len(adapters) > 0 {
		adapter = adapters
	}

	statsOut, err := telemetry.NewOutputManager(outDir)
	if err != nil {
		slog.Error("failed to open stats output", "dir", outDir, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := statsOut.Close(); err != nil {
			slog.Error("failed to close stats output", "error", err)
		}
	}()

	tree, err := growth.NewTree(spec, growth.Options{
		Seed:      rngSeed,
		StepDays:  cfg.Simulation.StepDays,
		Adapter:   adapter,
		Collector: telemetry.NewCollector(),
		OnYearEnd: func(stats telemetry.YearStats) {
			stats.Log()
			if err := statsOut.WriteStats(stats); err != nil {
				slog.Error("failed to write year stats", "error", err)
			}
		},
	})
	if err != nil {
		slog.Error("failed to plant tree", "error", err)
		os.Exit(1)
	}

	slog.Info("growing",
		"species", cfg.Species.Name,
		"seed", rngSeed,
		"step_days", cfg.Simulation.StepDays,
		"phases", len(phases),
	)

	start := time.Now()
	for i, phase := range phases {
		if err := tree.Grow(phase.Days, phase.LeafGrowth, phase.FlowerGrowth); err != nil {
			slog.Error("growth failed", "phase", i, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("growing done",
		"elapsed", time.Since(start),
		"years", tree.Year(),
		"stems", tree.StemCount(),
		"leaves", tree.LeafCount(),
		"flowers", tree.FlowerCount(),
	)

	if *headless {
		return
	}

	view.Run(view.Options{Title: "ArborGen - " + cfg.Species.Name}, rec.Commands(), tree.Frame())
}
