package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/lue/config"
	"github.com/pthm-cable/lue/population"
	"github.com/pthm-cable/lue/telemetry"
	"github.com/pthm-cable/lue/ui"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Parameters = config.ParametersConfig{
		InitialPopulation:  1_000_000,
		Years:              200,
		MaxAge:             100,
		MalesPer100Females: 105,
		TargetTFR:          2.0,
		InfantMortality:    0.005,
	}
	cfg.Extrapolation.Speed = 20
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, opts Options) *App {
	t.Helper()
	a, err := NewApp(cfg, opts)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return a
}

func TestParametersFromConfig(t *testing.T) {
	cfg := testConfig(t)

	p, err := ParametersFromConfig(cfg.Parameters)
	if err != nil {
		t.Fatalf("ParametersFromConfig failed: %v", err)
	}
	if p.InitialPopulation != 1_000_000 || p.Years != 200 || p.MaxAge != 100 {
		t.Errorf("parameters = %+v", p)
	}

	bad := []func(*config.ParametersConfig){
		func(c *config.ParametersConfig) { c.MaxAge = 300 },
		func(c *config.ParametersConfig) { c.MaxAge = -1 },
		func(c *config.ParametersConfig) { c.Years = -5 },
		func(c *config.ParametersConfig) { c.TargetTFR = math.NaN() },
	}
	for i, mutate := range bad {
		c := cfg.Parameters
		mutate(&c)
		if _, err := ParametersFromConfig(c); !errors.Is(err, population.ErrInvalidParameter) {
			t.Errorf("case %d: err = %v, want ErrInvalidParameter", i, err)
		}
	}
}

func TestNewAppRunsProjection(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})

	r := a.Result()
	if r.Timeline.Len() != 201 {
		t.Errorf("timeline length = %d, want 201", r.Timeline.Len())
	}
	if a.Summary().FinalPopulation != r.Final.Count() {
		t.Errorf("summary final = %d, result final = %d", a.Summary().FinalPopulation, r.Final.Count())
	}
	if a.Original() != a.Parameters() {
		t.Error("startup parameters should be the original ones")
	}

	s := a.Extrapolated()
	if s.Population != float64(r.Final.Count()) {
		t.Errorf("extrapolation starts at %v, want %d", s.Population, r.Final.Count())
	}
	if s.ElapsedTime != 200 {
		t.Errorf("extrapolation starts at year %v, want 200", s.ElapsedTime)
	}
}

func TestSetParametersRejectsInvalid(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})
	before := a.Result()
	params := a.Parameters()

	p := params
	p.TargetTFR = math.NaN()
	err := a.SetParameters(p)
	if !errors.Is(err, population.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if a.Parameters() != params || a.Result() != before {
		t.Error("rejected parameters should keep the current projection")
	}
}

func TestSetParametersAndReset(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})
	original := a.Parameters()

	p := original
	p.TargetTFR = 1.0
	p.Years = 50
	if err := a.SetParameters(p); err != nil {
		t.Fatalf("SetParameters failed: %v", err)
	}
	if a.Result().Timeline.Len() != 51 {
		t.Errorf("timeline length = %d, want 51", a.Result().Timeline.Len())
	}
	if a.Extrapolated().ElapsedTime != 50 {
		t.Errorf("extrapolation should restart at year 50, got %v", a.Extrapolated().ElapsedTime)
	}

	if err := a.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if a.Parameters() != original {
		t.Errorf("after reset parameters = %+v, want %+v", a.Parameters(), original)
	}
}

func TestStabilizeOnStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Parameters.InitialPopulation = 10_000_000
	cfg.Parameters.Years = 300
	cfg.Parameters.MaxAge = 120
	cfg.Parameters.TargetTFR = 1.6

	a := newTestApp(t, cfg, Options{Stabilize: true})
	tfr := a.Parameters().TargetTFR
	if tfr < 1.9 || tfr > 2.3 {
		t.Errorf("stabilized TFR = %v, want near replacement", tfr)
	}
	if a.Original() != a.Parameters() {
		t.Error("reset should restore the stabilized startup parameters")
	}
}

func TestAdvance(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})
	start := a.Extrapolated()

	a.Advance(0.5)
	s := a.Extrapolated()
	if got := s.ElapsedTime - start.ElapsedTime; math.Abs(got-10) > 1e-9 {
		t.Errorf("half a second at 20 years/s advanced %v years, want 10", got)
	}

	a.TogglePause()
	a.Advance(1)
	if a.Extrapolated() != s {
		t.Error("paused extrapolation should not move")
	}
	a.TogglePause()

	a.SetSpeed(-3)
	if a.Speed() != 0 {
		t.Errorf("speed = %v, want 0", a.Speed())
	}
	a.Advance(1)
	if a.Extrapolated() != s {
		t.Error("zero speed should not move")
	}

	a.RestartExtrapolation()
	if a.Extrapolated().ElapsedTime != start.ElapsedTime {
		t.Error("restart should rewind to the end of the projection")
	}
}

func TestAdvanceFollowsCrudeRates(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})
	start := a.Extrapolated()
	rates := a.Summary().Rates

	a.Advance(1)
	want := start.Population * math.Pow(1+rates.Growth(), 20)
	got := a.Extrapolated().Population
	if math.Abs(got-want) > 1e-6*want {
		t.Errorf("population after 20 years = %v, want %v", got, want)
	}
}

func TestApplyPending(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})
	original := a.Parameters()

	p := original
	p.MalesPer100Females = 110
	a.pending = pending{params: &p}
	a.applyPending()
	if a.Parameters().MalesPer100Females != 110 {
		t.Errorf("pending edit not applied: %+v", a.Parameters())
	}

	a.pending = pending{action: actionReset}
	a.applyPending()
	if a.Parameters() != original {
		t.Error("pending reset not applied")
	}

	bad := original
	bad.InfantMortality = 2
	a.pending = pending{params: &bad}
	a.applyPending()
	if a.status == "" {
		t.Error("rejected edit should set a status message")
	}
	if a.Parameters() != original {
		t.Error("rejected edit should keep parameters")
	}

	a.pending = pending{params: &p}
	a.applyPending()
	if a.status != "" {
		t.Errorf("status after a successful edit = %q, want cleared", a.status)
	}

	a.status = "stale"
	a.pending = pending{action: actionReset}
	a.applyPending()
	if a.status != "" {
		t.Errorf("status after a successful reset = %q, want cleared", a.status)
	}
}

func TestSave(t *testing.T) {
	a := newTestApp(t, testConfig(t), Options{})
	path := filepath.Join(t.TempDir(), "data.json")

	if err := a.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
	if err := a.Save(""); err == nil {
		t.Error("empty file name should fail")
	}
}

func TestRunHeadless(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	a := newTestApp(t, testConfig(t), Options{OutputDir: dir, Perf: true, ExtrapolateYears: 100})
	start := a.Extrapolated()

	if err := a.RunHeadless(); err != nil {
		t.Fatalf("RunHeadless failed: %v", err)
	}
	for _, name := range []string{"timeline.csv", "age_distribution.csv", "milestones.csv", "result.json", "parameters.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if got := a.Extrapolated().ElapsedTime - start.ElapsedTime; math.Abs(got-100) > 1e-6 {
		t.Errorf("headless extrapolation covered %v years, want 100", got)
	}
	if a.perf.Stats().Ticks != 200 {
		t.Errorf("perf recorded %d years, want 200", a.perf.Stats().Ticks)
	}
	if line := a.perfLine(); !strings.Contains(line, "Births") {
		t.Errorf("perf line %q should name the births phase", line)
	}
	tip := a.perfTooltip()
	if len(tip) != 3 || !strings.HasPrefix(tip[0], "Aging: ") {
		t.Errorf("perf tooltip = %q, want one described line per phase starting with aging", tip)
	}
	a.Unload()
}

func TestPanels(t *testing.T) {
	s := summaryView{
		Summary: telemetry.Summary{FinalPopulation: 1234567, ActualFertility: 2.0812, MedianAge: 38.25, PeakPopulation: 2e9, PeakYear: 40},
		Milestones: []telemetry.Milestone{
			{Type: telemetry.MilestonePeak, Year: 40, Population: 2e9},
			{Type: telemetry.MilestoneHalved, Year: 120, Population: 4e8},
		},
	}
	want := map[string]string{
		"final_population": "1,234,567",
		"actual_fertility": "2.081",
		"median_age":       "38.25",
		"peak":             "2 billion (year 40)",
		"halved":           "400 million (year 120)",
	}
	fields := make(map[string]ui.FieldDescriptor)
	for _, sd := range summaryPanel.Sections {
		for _, fd := range sd.Fields {
			if fd.ID != "" {
				fields[fd.ID] = fd
			}
		}
	}
	for id, w := range want {
		fd, ok := fields[id]
		if !ok {
			t.Errorf("summary panel has no %s field", id)
			continue
		}
		if fd.Visible != nil && !fd.Visible(s) {
			t.Errorf("%s should be visible", id)
		}
		if got := fd.TextGetter(s); got != w {
			t.Errorf("%s = %q, want %q", id, got, w)
		}
	}
	if fields["extinct"].Visible(s) {
		t.Error("extinct should be hidden when the population survives")
	}

	bar := fields["fertility_bar"]
	if got := bar.Getter(s); got != 2.0812 {
		t.Errorf("fertility bar = %v, want 2.0812", got)
	}
	s.Summary.ActualFertility = math.NaN()
	if bar.Visible(s) {
		t.Error("fertility bar should be hidden without complete cohorts")
	}
	if got := fields["actual_fertility"].TextGetter(s); got != "n/a" {
		t.Errorf("actual_fertility = %q, want n/a", got)
	}

	view := extrapolationView{
		State: population.State{Population: 5e6, GrowthRate: 0.01, ElapsedTime: 12},
		Rates: population.Rates{BirthRate: 0.02, DeathRate: 0.01},
	}
	paused := extrapolationPanel.Sections[2]
	if paused.Visible(view) {
		t.Error("paused section should be hidden while playing")
	}
	view.Paused = true
	if !paused.Visible(view) {
		t.Error("paused section should show while paused")
	}
	birth := extrapolationPanel.Sections[1].Fields[0]
	if got := birth.Getter(view); math.Abs(got-20) > 1e-9 {
		t.Errorf("birth rate per 1000 = %v, want 20", got)
	}
}
