package population

import (
	"errors"
	"math"
	"testing"
)

func testParameters() Parameters {
	return Parameters{
		InitialPopulation:  1_000_000,
		Years:              50,
		MaxAge:             120,
		MalesPer100Females: 105,
		TargetTFR:          2.1,
		InfantMortality:    0.005,
	}
}

func TestInitialAgeStructure(t *testing.T) {
	p := testParameters()
	p.Years = 0
	r, err := p.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// floor(0.25/15 * 1e6 * 0.5)
	if got := r.Initial.CountAgeGender(0, Male); got != 8333 {
		t.Errorf("age 0 males = %d, want 8333", got)
	}
	if got := r.Initial.CountAgeGender(0, Female); got != 8333 {
		t.Errorf("age 0 females = %d, want 8333", got)
	}
	if got := r.Initial.CountAge(121); got != 0 {
		t.Errorf("age 121 = %d, want 0", got)
	}
	if got := r.Initial.MaxAge(); got != 121 {
		t.Errorf("MaxAge = %d, want 121", got)
	}
	if r.Timeline.Len() != 1 {
		t.Errorf("timeline length = %d, want 1", r.Timeline.Len())
	}
	if r.Final.Count() != r.Initial.Count() {
		t.Errorf("final %d != initial %d with zero years", r.Final.Count(), r.Initial.Count())
	}
	if r.Initial.CountGender(Male) != r.Initial.CountGender(Female) {
		t.Error("initial population should be split evenly by gender")
	}
}

func TestRunConservesPeople(t *testing.T) {
	r, err := testParameters().Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	first, last := r.Timeline.YearRange()
	if first != 0 || last != 50 {
		t.Fatalf("year range = [%d, %d], want [0, 50]", first, last)
	}
	for y := first + 1; y <= last; y++ {
		prev, _ := r.Timeline.At(y - 1)
		cur, _ := r.Timeline.At(y)
		if prev.Sum()+cur.Births-cur.Deaths != cur.Sum() {
			t.Fatalf("year %d: %d + %d - %d != %d", y, prev.Sum(), cur.Births, cur.Deaths, cur.Sum())
		}
	}
	if r.Timeline.Sum(last) != r.Final.Count() {
		t.Errorf("timeline end %d != final count %d", r.Timeline.Sum(last), r.Final.Count())
	}
}

func TestRunWithoutFertilityDiesOut(t *testing.T) {
	p := testParameters()
	p.MaxAge = 30
	p.TargetTFR = 0
	p.Years = 31

	r, err := p.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	r.Timeline.Each(func(y Year, d TimelineData) {
		if d.Births != 0 {
			t.Errorf("year %d: %d births with zero TFR", y, d.Births)
		}
	})
	if got := r.Timeline.Last().Sum(); got != 0 {
		t.Errorf("final population = %d, want 0", got)
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := testParameters().Run()
	if err != nil {
		t.Fatal(err)
	}
	b, err := testParameters().Run()
	if err != nil {
		t.Fatal(err)
	}

	a.Timeline.Each(func(y Year, d TimelineData) {
		if other, _ := b.Timeline.At(y); other != d {
			t.Errorf("year %d: %+v != %+v", y, d, other)
		}
	})
}

func TestCohortFertilityWindow(t *testing.T) {
	p := testParameters()
	p.Years = 250
	r, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	years := r.CohortFertility.Years()
	if len(years) != 51 {
		t.Fatalf("cohort count = %d, want 51", len(years))
	}
	if years[0] != 100 || years[len(years)-1] != 150 {
		t.Errorf("cohort years = [%d, %d], want [100, 150]", years[0], years[len(years)-1])
	}

	avg := r.CohortFertility.Avg()
	if math.IsNaN(avg) || avg < 1 || avg > 3 {
		t.Errorf("average cohort fertility = %v, want near the target", avg)
	}
}

func TestSimulatorCountsYears(t *testing.T) {
	sim, err := NewSimulator(testParameters())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		sim.Step()
	}
	if sim.Year() != 3 {
		t.Errorf("Year = %d, want 3", sim.Year())
	}
}

func TestCohortFertilityEmptyForShortRuns(t *testing.T) {
	r, err := testParameters().Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(r.CohortFertility) != 0 {
		t.Errorf("cohorts = %d, want none for a 50 year run", len(r.CohortFertility))
	}
	if !math.IsNaN(r.CohortFertility.Avg()) {
		t.Errorf("Avg = %v, want NaN", r.CohortFertility.Avg())
	}
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Parameters)
	}{
		{"NaN TFR", func(p *Parameters) { p.TargetTFR = math.NaN() }},
		{"negative TFR", func(p *Parameters) { p.TargetTFR = -1 }},
		{"infant mortality above one", func(p *Parameters) { p.InfantMortality = 2 }},
		{"negative years", func(p *Parameters) { p.Years = -5 }},
		{"years above limit", func(p *Parameters) { p.Years = MaxYears + 1 }},
		{"years overflowing the timeline", func(p *Parameters) { p.Years = math.MaxInt }},
		{"max age too high", func(p *Parameters) { p.MaxAge = 254 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParameters()
			tt.modify(&p)
			if _, err := p.Run(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

type countingTimer struct {
	ticks  int
	phases map[string]int
}

func (c *countingTimer) StartTick()          { c.ticks++ }
func (c *countingTimer) StartPhase(p string) { c.phases[p]++ }
func (c *countingTimer) EndTick()            {}

func TestRunTimedReportsPhases(t *testing.T) {
	timer := &countingTimer{phases: map[string]int{}}
	p := testParameters()
	p.Years = 7
	if _, err := p.RunTimed(timer); err != nil {
		t.Fatal(err)
	}
	if timer.ticks != 7 {
		t.Errorf("ticks = %d, want 7", timer.ticks)
	}
	for _, phase := range []string{PhaseAging, PhaseBirths, PhaseDeaths} {
		if timer.phases[phase] != 7 {
			t.Errorf("phase %s = %d, want 7", phase, timer.phases[phase])
		}
	}
}
