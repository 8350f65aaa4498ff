package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lue/components"
)

// DeathSystem removes one year of deaths from every cohort.
type DeathSystem struct {
	filter ecs.Filter2[components.Cohort, components.Headcount]
}

// NewDeathSystem creates a death system.
func NewDeathSystem(w *ecs.World) *DeathSystem {
	return &DeathSystem{
		filter: *ecs.NewFilter2[components.Cohort, components.Headcount](w),
	}
}

// Update applies mortality to every cohort and returns the number of deaths.
func (s *DeathSystem) Update(maxAge components.Age, infantMortality float64) components.Count {
	var total components.Count
	query := s.filter.Query()
	for query.Next() {
		cohort, head := query.Get()
		q := Mortality(cohort.Age, cohort.Gender, maxAge, infantMortality)
		deaths := components.Count(math.Round(float64(head.N) * q))
		if deaths > head.N {
			deaths = head.N
		}
		head.N -= deaths
		total += deaths
	}
	return total
}
