// Package population implements the cohort-component population projection
// and the frame-driven growth extrapolation built on its results.
package population

import (
	"fmt"
	"math"
	"sort"

	"github.com/pthm-cable/lue/components"
)

// Year is a simulated calendar year, counted from the start of a run.
type Year int32

// Re-exported cohort types.
type (
	Age    = components.Age
	Gender = components.Gender
	Count  = components.Count
)

const (
	Male   = components.Male
	Female = components.Female
)

// MaxSupportedAge is the largest MaxAge a run accepts; ages up to MaxAge+1 are stored.
const MaxSupportedAge = 253

// MaxYears is the longest projection a run accepts.
const MaxYears = math.MaxUint16

// Parameters controls a projection run.
type Parameters struct {
	InitialPopulation  Count   `yaml:"initial_population" json:"initial_population"`
	Years              int     `yaml:"years" json:"years"`
	MaxAge             Age     `yaml:"max_age" json:"max_age"`
	MalesPer100Females int     `yaml:"males_per_100_females" json:"males_per_100_females"`
	TargetTFR          float64 `yaml:"target_tfr" json:"target_tfr"`
	InfantMortality    float64 `yaml:"infant_mortality_rate" json:"infant_mortality_rate"`
}

// Validate reports whether the parameters can drive a run.
func (p Parameters) Validate() error {
	switch {
	case p.Years < 0:
		return fmt.Errorf("years %d: %w", p.Years, ErrInvalidParameter)
	case p.Years > MaxYears:
		return fmt.Errorf("years %d above %d: %w", p.Years, MaxYears, ErrInvalidParameter)
	case p.MaxAge > MaxSupportedAge:
		return fmt.Errorf("max age %d above %d: %w", p.MaxAge, MaxSupportedAge, ErrInvalidParameter)
	case p.MalesPer100Females < 0:
		return fmt.Errorf("males per 100 females %d: %w", p.MalesPer100Females, ErrInvalidParameter)
	case math.IsNaN(p.TargetTFR) || math.IsInf(p.TargetTFR, 0) || p.TargetTFR < 0:
		return fmt.Errorf("target TFR %v: %w", p.TargetTFR, ErrInvalidParameter)
	case math.IsNaN(p.InfantMortality) || p.InfantMortality < 0 || p.InfantMortality > 1:
		return fmt.Errorf("infant mortality rate %v: %w", p.InfantMortality, ErrInvalidParameter)
	}
	return nil
}

// CohortKey identifies a cohort in an AgeGenderMap.
type CohortKey struct {
	Age    Age
	Gender Gender
}

// AgeGenderMap holds headcounts per age and gender.
type AgeGenderMap map[CohortKey]Count

// Count returns the total headcount.
func (m AgeGenderMap) Count() Count {
	var n Count
	for _, c := range m {
		n += c
	}
	return n
}

// CountGender returns the headcount of one gender.
func (m AgeGenderMap) CountGender(g Gender) Count {
	var n Count
	for k, c := range m {
		if k.Gender == g {
			n += c
		}
	}
	return n
}

// CountAge returns the headcount of one age.
func (m AgeGenderMap) CountAge(a Age) Count {
	return m[CohortKey{a, Male}] + m[CohortKey{a, Female}]
}

// CountAgeGender returns the headcount of a single cohort.
func (m AgeGenderMap) CountAgeGender(a Age, g Gender) Count {
	return m[CohortKey{a, g}]
}

// MaxAge returns the highest age present as a key, populated or not.
func (m AgeGenderMap) MaxAge() Age {
	var oldest Age
	for k := range m {
		if k.Age > oldest {
			oldest = k.Age
		}
	}
	return oldest
}

// TimelineData holds one year of the population timeline.
// Births and Deaths are the events of the year that ended at this entry.
type TimelineData struct {
	Males   Count
	Females Count
	Births  Count
	Deaths  Count
}

// Sum returns the total population.
func (d TimelineData) Sum() Count {
	return d.Males + d.Females
}

// Timeline records population totals by year, ordered from year 0.
type Timeline struct {
	first Year
	data  []TimelineData
}

// NewTimeline creates an empty timeline starting at first.
func NewTimeline(first Year, capacity int) *Timeline {
	return &Timeline{first: first, data: make([]TimelineData, 0, capacity)}
}

// Append records the next year.
func (t *Timeline) Append(d TimelineData) {
	t.data = append(t.data, d)
}

// Len returns the number of recorded years.
func (t *Timeline) Len() int {
	return len(t.data)
}

// YearRange returns the first and last recorded years.
func (t *Timeline) YearRange() (Year, Year) {
	return t.first, t.first + Year(len(t.data)-1)
}

// At returns the entry for year; ok is false outside the recorded range.
func (t *Timeline) At(year Year) (TimelineData, bool) {
	i := int(year - t.first)
	if i < 0 || i >= len(t.data) {
		return TimelineData{}, false
	}
	return t.data[i], true
}

// Sum returns the total population in year, or 0 outside the recorded range.
func (t *Timeline) Sum(year Year) Count {
	d, _ := t.At(year)
	return d.Sum()
}

// Each calls fn for every recorded year in order.
func (t *Timeline) Each(fn func(Year, TimelineData)) {
	for i, d := range t.data {
		fn(t.first+Year(i), d)
	}
}

// Last returns the final entry.
func (t *Timeline) Last() TimelineData {
	if len(t.data) == 0 {
		return TimelineData{}
	}
	return t.data[len(t.data)-1]
}

// CohortData tracks the women born in one year and the children they bore.
type CohortData struct {
	Females Count `json:"females"`
	Births  Count `json:"births"`
}

// Ratio returns children per woman of the cohort.
func (c CohortData) Ratio() float64 {
	return float64(c.Births) / float64(c.Females)
}

// CohortFertility maps a birth year to the completed fertility of that year's women.
type CohortFertility map[Year]*CohortData

// entry returns the data for year, creating it if needed.
func (cf CohortFertility) entry(year Year) *CohortData {
	d, ok := cf[year]
	if !ok {
		d = &CohortData{}
		cf[year] = d
	}
	return d
}

// Years returns the recorded birth years in ascending order.
func (cf CohortFertility) Years() []Year {
	years := make([]Year, 0, len(cf))
	for y := range cf {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}

// Ratios returns the per-cohort ratios in birth-year order.
func (cf CohortFertility) Ratios() []float64 {
	years := cf.Years()
	ratios := make([]float64, len(years))
	for i, y := range years {
		ratios[i] = cf[y].Ratio()
	}
	return ratios
}

// Result is the outcome of a projection run.
type Result struct {
	Parameters      Parameters
	Initial         AgeGenderMap
	Final           AgeGenderMap
	CohortFertility CohortFertility
	Timeline        *Timeline
}
