// Package stabilize searches for the fertility rate that keeps a projected
// population level over the run.
package stabilize

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/lue/config"
	"github.com/pthm-cable/lue/population"
)

// ErrNothingToStabilize is returned when a run has no population trend to flatten.
var ErrNothingToStabilize = errors.New("nothing to stabilize")

// Settings controls the solver.
type Settings struct {
	InitialStep   float64 // initial simplex edge in TFR units
	MaxIterations int
	CollapseRatio float64 // the run is cut at the first year at or below initial * ratio
	MinTFR        float64
	MaxTFR        float64
}

// DefaultSettings returns the settings used by the interactive app.
func DefaultSettings() Settings {
	return Settings{
		InitialStep:   0.05,
		MaxIterations: 10_000,
		CollapseRatio: 1.0 / 3.0,
		MinTFR:        0,
		MaxTFR:        3,
	}
}

// SettingsFromConfig converts the stabilize section of the config.
func SettingsFromConfig(c config.StabilizeConfig) Settings {
	return Settings{
		InitialStep:   c.InitialStep,
		MaxIterations: c.MaxIterations,
		CollapseRatio: c.CollapseRatio,
		MinTFR:        c.MinTFR,
		MaxTFR:        c.MaxTFR,
	}
}

// Evaluation is one cost evaluation during a solve.
type Evaluation struct {
	Index int     `csv:"eval"`
	TFR   float64 `csv:"tfr"`
	Cost  float64 `csv:"cost"`
	Slope float64 `csv:"slope"`
}

// Solver finds the target TFR with the flattest population trend.
type Solver struct {
	Settings Settings

	// OnEvaluation, if set, is called after every cost evaluation.
	OnEvaluation func(Evaluation)

	evals int
}

// NewSolver creates a solver with s.
func NewSolver(s Settings) *Solver {
	return &Solver{Settings: s}
}

// Solve returns p with TargetTFR replaced by the stabilizing rate, using default settings.
func Solve(p population.Parameters) (population.Parameters, error) {
	return NewSolver(DefaultSettings()).Solve(p)
}

// clamp limits tfr to the solver's range.
func (s *Solver) clamp(tfr float64) float64 {
	return math.Max(s.Settings.MinTFR, math.Min(s.Settings.MaxTFR, tfr))
}

// Slope runs p at tfr and measures the population trend over the second half
// of the run, in people per year. ok is false when the measured span is empty.
func (s *Solver) Slope(p population.Parameters, tfr float64) (slope float64, ok bool, err error) {
	p.TargetTFR = s.clamp(tfr)
	r, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	tl := r.Timeline
	first, last := tl.YearRange()
	threshold := float64(p.InitialPopulation) * s.Settings.CollapseRatio

	end := last
	for y := first; y <= last; y++ {
		if float64(tl.Sum(y)) <= threshold {
			end = y
			break
		}
	}

	half := (end - first) / 2
	years := end - half
	if years <= 0 {
		return 0, false, nil
	}
	diff := float64(tl.Sum(end)) - float64(tl.Sum(half))
	return diff / float64(years), true, nil
}

// Cost is the squared slope at tfr; +Inf when the trend cannot be measured.
func (s *Solver) Cost(p population.Parameters, tfr float64) (float64, error) {
	slope, ok, err := s.Slope(p, tfr)
	if err != nil {
		return math.NaN(), err
	}
	cost := math.Inf(1)
	if ok {
		cost = slope * slope
	}

	s.evals++
	if s.OnEvaluation != nil {
		s.OnEvaluation(Evaluation{Index: s.evals, TFR: s.clamp(tfr), Cost: cost, Slope: slope})
	}
	return cost, nil
}

// Solve minimizes Cost over the target TFR with Nelder-Mead, starting from
// p.TargetTFR. The returned rate is clamped to the solver's range.
func (s *Solver) Solve(p population.Parameters) (population.Parameters, error) {
	if err := p.Validate(); err != nil {
		return p, err
	}
	switch {
	case p.Years < 1:
		return p, fmt.Errorf("%w over %d years", ErrNothingToStabilize, p.Years)
	case p.InitialPopulation == 0:
		return p, fmt.Errorf("%w in an empty population", ErrNothingToStabilize)
	}

	var runErr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			cost, err := s.Cost(p, x[0])
			if err != nil && runErr == nil {
				runErr = err
			}
			return cost
		},
	}

	settings := &optimize.Settings{
		MajorIterations: s.Settings.MaxIterations,
	}
	method := &optimize.NelderMead{
		SimplexSize: s.Settings.InitialStep,
	}

	result, err := optimize.Minimize(problem, []float64{p.TargetTFR}, settings, method)
	if runErr != nil {
		return p, fmt.Errorf("evaluating fertility %v: %w", p.TargetTFR, runErr)
	}
	if err != nil {
		return p, fmt.Errorf("minimizing population slope: %w", err)
	}

	p.TargetTFR = s.clamp(result.X[0])
	slog.Debug("stabilized fertility",
		"tfr", p.TargetTFR,
		"cost", result.F,
		"status", result.Status.String(),
		"evaluations", s.evals,
	)
	return p, nil
}

// Evaluations returns the number of cost evaluations so far.
func (s *Solver) Evaluations() int {
	return s.evals
}
