// Package main provides CMA-ES fitting of growth-signal scales so that a
// species matures to target stem, leaf, and fruit counts.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/nifets/ArborGen/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	years := flag.Int("years", 10, "Years to grow each candidate")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	targetStems := flag.Float64("target-stems", 800, "Target live stem count")
	targetLeaves := flag.Float64("target-leaves", 1500, "Target live leaf count")
	targetFruit := flag.Float64("target-fruit", 120, "Target fruit dropped over the run")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config and species
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	base, err := cfg.BuildSpecies()
	if err != nil {
		log.Fatalf("invalid species config: %v", err)
	}

	params := NewParamVector()

	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}

	targets := Targets{Stems: *targetStems, Leaves: *targetLeaves, Fruit: *targetFruit}
	evaluator := NewFitnessEvaluator(params, base, targets,
		*years*365, cfg.Simulation.StepDays, evalSeeds)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	// Evaluation log
	logPath := filepath.Join(*outputDir, "speciesfit_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fitness := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fitness < bestFitness {
			bestFitness = fitness
			bestParams = make([]float64, len(clamped))
			copy(bestParams, clamped)
		}

		row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness)}
		for _, v := range clamped {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		logWriter.Write(row)
		logWriter.Flush()

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
		fmt.Printf("Eval %d/%d: fitness=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, fitness, bestFitness,
			elapsed.Round(time.Second), remaining.Round(time.Second))

		return fitness
	}

	fmt.Printf("Starting CMA-ES fit with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, years per run: %d\n", *seeds, *years)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nFit complete after %d evaluations in %s\n",
		evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest signal scales:")
	best := make(map[string]float64, len(params.Specs))
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
		best[spec.Name] = bestParams[i]
	}

	// Save best scales for manual transfer into the species config
	data, err := yaml.Marshal(best)
	if err != nil {
		log.Fatalf("failed to marshal best scales: %v", err)
	}
	outPath := filepath.Join(*outputDir, "best_scales.yaml")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Printf("failed to write best scales: %v", err)
	} else {
		fmt.Printf("\nBest scales saved to: %s\n", outPath)
	}
}
