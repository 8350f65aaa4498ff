package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lue/components"
)

// Births summarizes one year of births.
type Births struct {
	// ByMotherAge holds births indexed by the mother's age.
	ByMotherAge []components.Count
	Males       components.Count
	Females     components.Count
}

// Total returns all newborns.
func (b Births) Total() components.Count {
	return b.Males + b.Females
}

// BirthSystem computes births from female cohorts and adds the newborns to age 0.
type BirthSystem struct {
	filter     ecs.Filter2[components.Cohort, components.Headcount]
	headcounts *ecs.Map[components.Headcount]
	newborns   [2]ecs.Entity
	byAge      []components.Count
}

// NewBirthSystem creates a birth system. newborns holds the age-0 cohort
// entities indexed by gender.
func NewBirthSystem(w *ecs.World, newborns [2]ecs.Entity, ages int) *BirthSystem {
	return &BirthSystem{
		filter:     *ecs.NewFilter2[components.Cohort, components.Headcount](w),
		headcounts: ecs.NewMap[components.Headcount](w),
		newborns:   newborns,
		byAge:      make([]components.Count, ages),
	}
}

// Update applies one year of births at the given target TFR.
// The returned ByMotherAge slice is reused by the next call.
func (s *BirthSystem) Update(targetTFR, maleBias float64) Births {
	clear(s.byAge)

	var total components.Count
	query := s.filter.Query()
	for query.Next() {
		cohort, head := query.Get()
		if cohort.Gender != components.Female {
			continue
		}
		births := components.Count(Fertility(cohort.Age, targetTFR) * float64(head.N))
		s.byAge[cohort.Age] += births
		total += births
	}

	males := components.Count(math.Round(float64(total) * maleBias))
	if males > total {
		males = total
	}
	females := total - males

	s.headcounts.Get(s.newborns[components.Male]).N += males
	s.headcounts.Get(s.newborns[components.Female]).N += females

	return Births{ByMotherAge: s.byAge, Males: males, Females: females}
}
