package telemetry

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/lue/population"
)

// Summary holds the headline figures of a projection.
type Summary struct {
	InitialPopulation  population.Count
	FinalPopulation    population.Count
	ActualFertility    float64 // mean completed cohort fertility, NaN if no complete cohorts
	MedianAge          float64
	MalesPer100Females float64
	PeakPopulation     population.Count
	PeakYear           population.Year
	Rates              population.Rates // crude rates over the trailing years
}

// Summarize computes the summary of r, averaging crude rates over rateYears.
func Summarize(r *population.Result, rateYears int) Summary {
	s := Summary{
		InitialPopulation:  r.Initial.Count(),
		FinalPopulation:    r.Final.Count(),
		ActualFertility:    r.CohortFertility.Avg(),
		MedianAge:          MedianAge(r.Final),
		MalesPer100Females: SexRatio(r.Final),
		Rates:              population.CrudeRates(r.Timeline, rateYears),
	}
	r.Timeline.Each(func(y population.Year, d population.TimelineData) {
		if d.Sum() > s.PeakPopulation {
			s.PeakPopulation = d.Sum()
			s.PeakYear = y
		}
	})
	return s
}

// MedianAge returns the headcount-weighted median age, NaN for an empty population.
func MedianAge(m population.AgeGenderMap) float64 {
	oldest := int(m.MaxAge())
	ages := make([]float64, 0, oldest+1)
	weights := make([]float64, 0, oldest+1)
	var total float64
	for a := 0; a <= oldest; a++ {
		n := float64(m.CountAge(population.Age(a)))
		if n == 0 {
			continue
		}
		ages = append(ages, float64(a))
		weights = append(weights, n)
		total += n
	}
	if total == 0 {
		return math.NaN()
	}
	return stat.Quantile(0.5, stat.Empirical, ages, weights)
}

// SexRatio returns males per 100 females, NaN without females.
func SexRatio(m population.AgeGenderMap) float64 {
	females := m.CountGender(population.Female)
	if females == 0 {
		return math.NaN()
	}
	return 100 * float64(m.CountGender(population.Male)) / float64(females)
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("initial_population", s.InitialPopulation),
		slog.Uint64("final_population", s.FinalPopulation),
		slog.Float64("actual_fertility", s.ActualFertility),
		slog.Float64("median_age", s.MedianAge),
		slog.Float64("males_per_100_females", s.MalesPer100Females),
		slog.Uint64("peak_population", s.PeakPopulation),
		slog.Int("peak_year", int(s.PeakYear)),
		slog.Float64("birth_rate", s.Rates.BirthRate),
		slog.Float64("death_rate", s.Rates.DeathRate),
	)
}

// LogStats logs the summary using slog.
func (s Summary) LogStats() {
	slog.Info("summary", "result", s)
}
