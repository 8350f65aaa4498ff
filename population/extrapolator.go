package population

// Extrapolator continues a population past the projection horizon at
// constant crude rates, one frame at a time.
type Extrapolator struct {
	state State
	rates Rates
}

// NewExtrapolator starts from initial with rates r.
func NewExtrapolator(initial State, r Rates) (*Extrapolator, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	initial.GrowthRate = r.Growth()
	return &Extrapolator{state: initial, rates: r}, nil
}

// Snapshot returns a copy of the current state.
func (e *Extrapolator) Snapshot() State {
	return e.state
}

// Rates returns the rates in effect.
func (e *Extrapolator) Rates() Rates {
	return e.rates
}

// SetRates replaces the rates used by later steps. Invalid rates are
// rejected and the previous ones stay in effect.
func (e *Extrapolator) SetRates(r Rates) error {
	if err := r.Validate(); err != nil {
		return err
	}
	e.rates = r
	return nil
}

// Step advances dt years and returns the new state.
func (e *Extrapolator) Step(dt float64) (State, error) {
	if err := e.state.Advance(dt, e.rates); err != nil {
		return e.state, err
	}
	return e.state, nil
}

// Reset replaces the current state. An invalid state is rejected and the
// current one kept.
func (e *Extrapolator) Reset(s State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	s.GrowthRate = e.rates.Growth()
	e.state = s
	return nil
}

// CrudeRates averages the birth and death rates over the last n years of the
// timeline, each year's events divided by the population at its start.
// Returns zero rates when the timeline is too short or the population is gone.
func CrudeRates(t *Timeline, n int) Rates {
	if t == nil || t.Len() < 2 || n < 1 {
		return Rates{}
	}
	first, last := t.YearRange()
	from := last - Year(n)
	if from < first {
		from = first
	}

	var exposure, births, deaths float64
	for y := from; y < last; y++ {
		start, _ := t.At(y)
		end, _ := t.At(y + 1)
		exposure += float64(start.Sum())
		births += float64(end.Births)
		deaths += float64(end.Deaths)
	}
	if exposure == 0 {
		return Rates{}
	}

	r := Rates{BirthRate: births / exposure, DeathRate: deaths / exposure}
	if r.DeathRate > 1 {
		r.DeathRate = 1
	}
	return r
}
