package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lue/config"
	"github.com/pthm-cable/lue/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Log summary and milestones after every projection")
	stabilize := flag.Bool("stabilize", false, "Stabilize the fertility rate before the first projection")
	outputDir := flag.String("output-dir", "", "Output directory for CSV/JSON results and parameter snapshot (empty = use config)")
	perf := flag.Bool("perf", false, "Time projection phases and log the breakdown on exit")
	extrapolate := flag.Float64("extrapolate", 0, "Headless: years to extrapolate past the horizon")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI output dir wins over the config
	dir := *outputDir
	if dir == "" {
		dir = cfg.Output.Dir
	}

	opts := game.Options{
		OutputDir:        dir,
		LogStats:         *logStats,
		Perf:             *perf,
		Stabilize:        *stabilize,
		ExtrapolateYears: *extrapolate,
	}

	if *headless {
		// Headless mode - projection and output only, no raylib needed
		app, err := game.NewApp(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer app.Unload()

		if err := app.RunHeadless(); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	app, err := game.NewApp(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer app.Unload()

	if err := app.WriteOutput(); err != nil {
		slog.Warn("failed to write output", "error", err)
	}

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}
}
