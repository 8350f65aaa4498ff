package game

import (
	"fmt"
	"log/slog"
)

// RunHeadless logs the projection, writes the configured output and then
// extrapolates Options.ExtrapolateYears past the horizon in frame-sized steps.
func (a *App) RunHeadless() error {
	slog.Info("projection complete",
		"parameters", a.params,
		"summary", a.summary,
	)
	if !a.opts.LogStats {
		for _, m := range a.Milestones() {
			m.LogMilestone()
		}
	}

	if err := a.WriteOutput(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if dir := a.output.Dir(); dir != "" {
		slog.Info("output written", "dir", dir)
	}

	if err := a.extrapolate(a.opts.ExtrapolateYears); err != nil {
		return err
	}
	return nil
}

// extrapolate advances the live extrapolation by years, one frame of
// playback at a time.
func (a *App) extrapolate(years float64) error {
	if years <= 0 {
		return nil
	}
	step := a.cfg.Derived.FrameTime * a.speed
	if step <= 0 {
		step = years
	}

	for remaining := years; remaining > 0; remaining -= step {
		if _, err := a.extrapolator.Step(min(step, remaining)); err != nil {
			return fmt.Errorf("extrapolating: %w", err)
		}
	}

	s := a.extrapolator.Snapshot()
	slog.Info("extrapolated",
		"year", s.ElapsedTime,
		"population", s.Population,
		"growth_rate", s.GrowthRate,
	)
	return nil
}
