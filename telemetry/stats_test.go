package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/lue/population"
)

func TestMedianAge(t *testing.T) {
	m := population.AgeGenderMap{
		{Age: 10, Gender: population.Male}:   30,
		{Age: 10, Gender: population.Female}: 10,
		{Age: 40, Gender: population.Female}: 20,
		{Age: 70, Gender: population.Male}:   35,
		{Age: 90, Gender: population.Female}: 0,
	}
	// 40 of 95 are 10, 60 of 95 are at most 40
	if got := MedianAge(m); got != 40 {
		t.Errorf("MedianAge = %v, want 40", got)
	}
}

func TestMedianAgeEmpty(t *testing.T) {
	m := population.AgeGenderMap{{Age: 3, Gender: population.Male}: 0}
	if got := MedianAge(m); !math.IsNaN(got) {
		t.Errorf("MedianAge of empty population = %v, want NaN", got)
	}
}

func TestSexRatio(t *testing.T) {
	m := population.AgeGenderMap{
		{Age: 1, Gender: population.Male}:   105,
		{Age: 1, Gender: population.Female}: 100,
	}
	if got := SexRatio(m); math.Abs(got-105) > 1e-9 {
		t.Errorf("SexRatio = %v, want 105", got)
	}
	if got := SexRatio(population.AgeGenderMap{}); !math.IsNaN(got) {
		t.Errorf("SexRatio without females = %v, want NaN", got)
	}
}

func TestSummarize(t *testing.T) {
	p := population.Parameters{
		InitialPopulation:  1_000_000,
		Years:              30,
		MaxAge:             120,
		MalesPer100Females: 105,
		TargetTFR:          2.5,
		InfantMortality:    0.005,
	}
	r, err := p.Run()
	if err != nil {
		t.Fatal(err)
	}

	s := Summarize(r, 10)
	if s.FinalPopulation != r.Timeline.Last().Sum() {
		t.Errorf("final population %d != timeline end %d", s.FinalPopulation, r.Timeline.Last().Sum())
	}
	if s.PeakPopulation < s.FinalPopulation || s.PeakPopulation < s.InitialPopulation {
		t.Errorf("peak %d below initial or final", s.PeakPopulation)
	}
	if s.Rates.BirthRate <= 0 || s.Rates.DeathRate <= 0 {
		t.Errorf("crude rates = %+v, want positive", s.Rates)
	}
	if s.MedianAge < 10 || s.MedianAge > 60 {
		t.Errorf("median age = %v", s.MedianAge)
	}
	if !math.IsNaN(s.ActualFertility) {
		t.Errorf("actual fertility = %v, want NaN for a short run", s.ActualFertility)
	}
}
