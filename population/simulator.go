package population

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lue/components"
	"github.com/pthm-cable/lue/systems"
)

// Phase names reported to a PhaseTimer.
const (
	PhaseAging  = systems.AgingID
	PhaseBirths = systems.BirthsID
	PhaseDeaths = systems.DeathsID
)

// PhaseTimer receives per-year timing callbacks.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// Simulator advances an age x gender population one year at a time.
// Each cohort is an entity in an ECS world.
type Simulator struct {
	world  *ecs.World
	params Parameters

	cohorts    *ecs.Map2[components.Cohort, components.Headcount]
	filter     *ecs.Filter2[components.Cohort, components.Headcount]
	ladder     [][2]ecs.Entity
	maleBias   float64
	year       Year
	fertility  CohortFertility
	lastBirths Count
	lastDeaths Count

	aging  *systems.AgingSystem
	births *systems.BirthSystem
	deaths *systems.DeathSystem

	timer PhaseTimer
}

// NewSimulator creates a simulator seeded with the initial age structure.
func NewSimulator(p Parameters) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	s := &Simulator{
		world:     world,
		params:    p,
		cohorts:   ecs.NewMap2[components.Cohort, components.Headcount](world),
		filter:    ecs.NewFilter2[components.Cohort, components.Headcount](world),
		maleBias:  systems.MaleBirthBias(p.MalesPer100Females),
		fertility: CohortFertility{},
	}

	// One rung past MaxAge holds those who just aged out; they all die the same year.
	ages := int(p.MaxAge) + 2
	s.ladder = make([][2]ecs.Entity, ages)
	for a := 0; a < ages; a++ {
		age := Age(a)
		each := Count(systems.AgeFrequency(age, p.MaxAge) * float64(p.InitialPopulation) * 0.5)
		for _, g := range components.Genders {
			s.ladder[a][g] = s.cohorts.NewEntity(
				&components.Cohort{Age: age, Gender: g},
				&components.Headcount{N: each},
			)
		}
	}

	s.aging = systems.NewAgingSystem(world, s.ladder)
	s.births = systems.NewBirthSystem(world, s.ladder[0], ages)
	s.deaths = systems.NewDeathSystem(world)

	return s, nil
}

// SetPhaseTimer installs t to time each Step; nil disables timing.
func (s *Simulator) SetPhaseTimer(t PhaseTimer) {
	s.timer = t
}

// Year returns the number of completed steps.
func (s *Simulator) Year() Year {
	return s.year
}

// Step advances one year: aging, then births, then deaths.
func (s *Simulator) Step() {
	if s.timer != nil {
		s.timer.StartTick()
		s.timer.StartPhase(PhaseAging)
	}
	s.aging.Update()

	if s.timer != nil {
		s.timer.StartPhase(PhaseBirths)
	}
	births := s.births.Update(s.params.TargetTFR, s.maleBias)
	for age, n := range births.ByMotherAge {
		if n > 0 {
			s.fertility.entry(s.year - Year(age)).Births += n
		}
	}
	s.fertility.entry(s.year).Females += births.Females
	s.lastBirths = births.Total()

	if s.timer != nil {
		s.timer.StartPhase(PhaseDeaths)
	}
	s.lastDeaths = s.deaths.Update(s.params.MaxAge, s.params.InfantMortality)

	s.year++
	if s.timer != nil {
		s.timer.EndTick()
	}
}

// Totals returns the current headcount per gender together with the
// births and deaths of the last step.
func (s *Simulator) Totals() TimelineData {
	var d TimelineData
	query := s.filter.Query()
	for query.Next() {
		cohort, head := query.Get()
		if cohort.Gender == Male {
			d.Males += head.N
		} else {
			d.Females += head.N
		}
	}
	d.Births = s.lastBirths
	d.Deaths = s.lastDeaths
	return d
}

// Snapshot copies the current headcounts.
func (s *Simulator) Snapshot() AgeGenderMap {
	m := make(AgeGenderMap, len(s.ladder)*2)
	query := s.filter.Query()
	for query.Next() {
		cohort, head := query.Get()
		m[CohortKey{cohort.Age, cohort.Gender}] = head.N
	}
	return m
}
