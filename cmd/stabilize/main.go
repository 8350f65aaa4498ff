// Package main searches for the fertility rate that keeps a projected
// population level and writes the search log and the resulting config.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/lue/config"
	"github.com/pthm-cable/lue/game"
	"github.com/pthm-cable/lue/stabilize"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for results")
	maxIterations := flag.Int("max-iterations", 0, "Nelder-Mead iteration cap (0 = use config)")
	sweepStep := flag.Float64("sweep-step", 0, "Also evaluate the cost on a TFR grid with this spacing (0 = off)")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params, err := game.ParametersFromConfig(baseCfg.Parameters)
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	settings := stabilize.SettingsFromConfig(baseCfg.Stabilize)
	if *maxIterations > 0 {
		settings.MaxIterations = *maxIterations
	}
	solver := stabilize.NewSolver(settings)

	// Track evaluations and timing
	var evals []stabilize.Evaluation
	best := stabilize.Evaluation{Cost: -1}
	startTime := time.Now()
	solver.OnEvaluation = func(e stabilize.Evaluation) {
		evals = append(evals, e)
		if best.Cost < 0 || e.Cost < best.Cost {
			best = e
		}
		fmt.Printf("Eval %d: tfr=%.6f slope=%.1f/yr (best tfr=%.6f) | elapsed: %s\n",
			e.Index, e.TFR, e.Slope, best.TFR, formatDuration(time.Since(startTime)))
	}

	fmt.Printf("Stabilizing %d years from TFR %.5f, initial step %.3f, max iterations %d\n",
		params.Years, params.TargetTFR, settings.InitialStep, settings.MaxIterations)

	solved, err := solver.Solve(params)
	if err != nil {
		log.Printf("stabilize ended: %v", err)
		if best.Cost < 0 {
			os.Exit(1)
		}
		solved.TargetTFR = best.TFR
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nStabilize complete after %d evaluations in %s\n", len(evals), formatDuration(totalTime))
	fmt.Printf("Stabilizing TFR: %.6f\n", solved.TargetTFR)

	logPath := filepath.Join(*outputDir, "stabilize_log.csv")
	if err := writeCSV(logPath, evals); err != nil {
		log.Printf("failed to write evaluation log: %v", err)
	}

	if *sweepStep > 0 {
		points, err := Sweep(solver, params, settings.MinTFR, settings.MaxTFR, *sweepStep)
		if err != nil {
			log.Printf("sweep failed: %v", err)
		} else if err := writeCSV(filepath.Join(*outputDir, "sweep.csv"), points); err != nil {
			log.Printf("failed to write sweep: %v", err)
		} else {
			fmt.Printf("Sweep of %d points saved\n", len(points))
		}
	}

	// Save best config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	bestCfg.Parameters.TargetTFR = solved.TargetTFR
	bestCfg.Parameters.StabilizeOnStart = false

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

// writeCSV writes records with a header row.
func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(records, f)
}
