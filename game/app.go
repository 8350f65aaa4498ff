// Package game wires the projection, the stabilizer and the live
// extrapolation into a frame-driven app for the raylib front end and the
// headless runner.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/lue/config"
	"github.com/pthm-cable/lue/population"
	"github.com/pthm-cable/lue/stabilize"
	"github.com/pthm-cable/lue/systems"
	"github.com/pthm-cable/lue/telemetry"
	"github.com/pthm-cable/lue/ui"
)

// Options configures an App.
type Options struct {
	OutputDir        string  // directory for CSV/JSON/YAML output (empty = disabled)
	LogStats         bool    // log summary and milestones after every projection
	Perf             bool    // time projection phases
	Stabilize        bool    // stabilize before the first projection even if the config does not
	ExtrapolateYears float64 // headless: years to extrapolate past the horizon
}

// App holds the complete simulator state.
type App struct {
	cfg    *config.Config
	opts   Options
	solver *stabilize.Solver

	original population.Parameters // restored by Reset
	params   population.Parameters

	result     *population.Result
	summary    telemetry.Summary
	milestones []telemetry.Milestone

	extrapolator *population.Extrapolator
	speed        float64 // extrapolated years per second
	paused       bool

	perf     *telemetry.PerfCollector
	registry *systems.SystemRegistry
	output   *telemetry.OutputManager

	// Presentation
	renderer *ui.Renderer
	controls *ui.Controls
	outFile  ui.TextInput
	pending  pending
	status   string
}

// ParametersFromConfig converts the parameters section of the config.
func ParametersFromConfig(c config.ParametersConfig) (population.Parameters, error) {
	if c.MaxAge < 0 || c.MaxAge > population.MaxSupportedAge {
		return population.Parameters{}, fmt.Errorf("max age %d: %w", c.MaxAge, population.ErrInvalidParameter)
	}
	p := population.Parameters{
		InitialPopulation:  c.InitialPopulation,
		Years:              c.Years,
		MaxAge:             population.Age(c.MaxAge),
		MalesPer100Females: c.MalesPer100Females,
		TargetTFR:          c.TargetTFR,
		InfantMortality:    c.InfantMortality,
	}
	if err := p.Validate(); err != nil {
		return population.Parameters{}, err
	}
	return p, nil
}

// NewApp builds the app from cfg and runs the first projection.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	params, err := ParametersFromConfig(cfg.Parameters)
	if err != nil {
		return nil, fmt.Errorf("startup parameters: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		opts:     opts,
		solver:   stabilize.NewSolver(stabilize.SettingsFromConfig(cfg.Stabilize)),
		params:   params,
		speed:    cfg.Extrapolation.Speed,
		output:   output,
		renderer: ui.NewRenderer(),
		outFile:  ui.TextInput{Text: cfg.Output.File, MaxLen: 128},
	}
	if opts.Perf {
		a.perf = telemetry.NewPerfCollector(max(params.Years, 1))
		a.registry = systems.NewSystemRegistry()
	}

	if cfg.Parameters.StabilizeOnStart || opts.Stabilize {
		stable, err := a.solver.Solve(params)
		if err != nil {
			return nil, fmt.Errorf("stabilizing startup parameters: %w", err)
		}
		slog.Info("stabilized", "target_tfr", stable.TargetTFR)
		params = stable
	}
	a.original = params

	if err := a.SetParameters(params); err != nil {
		return nil, err
	}
	return a, nil
}

// Parameters returns the parameters of the current projection.
func (a *App) Parameters() population.Parameters {
	return a.params
}

// Original returns the parameters Reset restores.
func (a *App) Original() population.Parameters {
	return a.original
}

// Result returns the current projection.
func (a *App) Result() *population.Result {
	return a.result
}

// Summary returns the headline figures of the current projection.
func (a *App) Summary() telemetry.Summary {
	return a.summary
}

// Milestones returns the milestones of the current projection.
func (a *App) Milestones() []telemetry.Milestone {
	return a.milestones
}

// SetParameters validates p and reruns the projection with it.
// Invalid parameters are rejected and the current projection is kept.
func (a *App) SetParameters(p population.Parameters) error {
	var timer population.PhaseTimer
	if a.perf != nil {
		timer = a.perf
	}
	result, err := p.RunTimed(timer)
	if err != nil {
		return err
	}

	a.params = p
	a.result = result
	a.summary = telemetry.Summarize(result, a.cfg.Extrapolation.RateYears)
	a.milestones = telemetry.DetectMilestones(result.Timeline, a.cfg.Stabilize.CollapseRatio)
	a.restartExtrapolation()

	if a.opts.LogStats {
		a.summary.LogStats()
		for _, m := range a.milestones {
			m.LogMilestone()
		}
	}
	return nil
}

// Stabilize replaces the target TFR with the one that keeps the population level.
func (a *App) Stabilize() error {
	p, err := a.solver.Solve(a.params)
	if err != nil {
		return fmt.Errorf("stabilize: %w", err)
	}
	slog.Info("stabilized", "target_tfr", p.TargetTFR, "evaluations_total", a.solver.Evaluations())
	return a.SetParameters(p)
}

// Reset restores the startup parameters.
func (a *App) Reset() error {
	return a.SetParameters(a.original)
}

// Save writes the current projection as JSON to path.
func (a *App) Save(path string) error {
	if path == "" {
		return fmt.Errorf("save: empty file name")
	}
	n, err := telemetry.WriteResultJSON(a.result, path)
	if err != nil {
		return err
	}
	slog.Info("saved result", "path", path, "bytes", n)
	return nil
}

// WriteOutput writes the current projection to the output directory, if any.
func (a *App) WriteOutput() error {
	if err := a.output.WriteResult(a.result); err != nil {
		return err
	}
	return a.output.WriteMilestones(a.milestones)
}

// restartExtrapolation starts the live extrapolation from the final year
// of the projection at its trailing crude rates.
func (a *App) restartExtrapolation() {
	start := population.State{
		Population:  float64(a.result.Final.Count()),
		ElapsedTime: float64(a.params.Years),
	}
	if a.extrapolator != nil {
		if err := a.extrapolator.SetRates(a.summary.Rates); err != nil {
			slog.Warn("extrapolation rates rejected", "error", err)
		}
		if err := a.extrapolator.Reset(start); err != nil {
			slog.Warn("extrapolation start rejected", "error", err)
		}
		return
	}
	e, err := population.NewExtrapolator(start, a.summary.Rates)
	if err != nil {
		slog.Warn("extrapolation rates rejected", "error", err)
		e, _ = population.NewExtrapolator(start, population.Rates{})
	}
	a.extrapolator = e
}

// RestartExtrapolation rewinds the live extrapolation to the end of the projection.
func (a *App) RestartExtrapolation() {
	a.restartExtrapolation()
}

// Extrapolated returns the displayable state of the live extrapolation.
func (a *App) Extrapolated() population.State {
	return a.extrapolator.Snapshot()
}

// Speed returns the playback speed in years per second.
func (a *App) Speed() float64 {
	return a.speed
}

// SetSpeed sets the playback speed; negative speeds are treated as 0.
func (a *App) SetSpeed(s float64) {
	a.speed = max(s, 0)
}

// Paused reports whether the extrapolation is paused.
func (a *App) Paused() bool {
	return a.paused
}

// TogglePause pauses or resumes the extrapolation.
func (a *App) TogglePause() {
	a.paused = !a.paused
}

// Advance moves the extrapolation forward by frameTime seconds of wall
// clock at the current playback speed. A failed step pauses playback.
func (a *App) Advance(frameTime float64) {
	if a.paused || frameTime <= 0 || a.speed == 0 {
		return
	}
	if _, err := a.extrapolator.Step(frameTime * a.speed); err != nil {
		slog.Warn("extrapolation step failed", "error", err)
		a.paused = true
	}
}

// Unload logs final statistics.
func (a *App) Unload() {
	if a.perf != nil {
		a.perf.Stats().LogStats()
	}
}
