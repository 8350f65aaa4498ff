package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lue/components"
)

// AgingSystem moves every cohort's headcount up by one year of age.
type AgingSystem struct {
	headcounts *ecs.Map[components.Headcount]
	ladder     [][2]ecs.Entity // [age][gender]
}

// NewAgingSystem creates an aging system over the cohort ladder,
// indexed by age and then gender.
func NewAgingSystem(w *ecs.World, ladder [][2]ecs.Entity) *AgingSystem {
	return &AgingSystem{
		headcounts: ecs.NewMap[components.Headcount](w),
		ladder:     ladder,
	}
}

// Update shifts each cohort into the next age, oldest first, leaving age 0 empty.
// Whoever occupied the oldest rung is overwritten.
func (s *AgingSystem) Update() {
	for age := len(s.ladder) - 2; age >= 0; age-- {
		for _, g := range components.Genders {
			older := s.headcounts.Get(s.ladder[age+1][g])
			younger := s.headcounts.Get(s.ladder[age][g])
			older.N = younger.N
			younger.N = 0
		}
	}
}
