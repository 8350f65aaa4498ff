package population

// Run projects the population for p.Years years.
func (p Parameters) Run() (*Result, error) {
	return p.RunTimed(nil)
}

// RunTimed is Run with per-year phase timing reported to timer.
func (p Parameters) RunTimed(timer PhaseTimer) (*Result, error) {
	sim, err := NewSimulator(p)
	if err != nil {
		return nil, err
	}
	sim.SetPhaseTimer(timer)

	const first Year = 0
	initial := sim.Snapshot()
	timeline := NewTimeline(first, p.Years+1)
	timeline.Append(sim.Totals())

	for i := 0; i < p.Years; i++ {
		sim.Step()
		timeline.Append(sim.Totals())
	}

	// Only cohorts whose whole reproductive life lies inside the run.
	fertility := sim.fertility
	fertility.retain(first+100, first+sim.Year()-100)

	return &Result{
		Parameters:      p,
		Initial:         initial,
		Final:           sim.Snapshot(),
		CohortFertility: fertility,
		Timeline:        timeline,
	}, nil
}
