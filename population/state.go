package population

import (
	"fmt"
	"math"
)

// Rates are crude annual per-capita rates applied by State.Advance.
type Rates struct {
	BirthRate float64 `json:"birth_rate"`
	DeathRate float64 `json:"death_rate"`
}

// Growth returns the net annual growth rate.
func (r Rates) Growth() float64 {
	return r.BirthRate - r.DeathRate
}

// Validate reports whether the rates can drive Advance.
// A death rate above 1 would remove more people than exist.
func (r Rates) Validate() error {
	switch {
	case !finite(r.BirthRate) || r.BirthRate < 0:
		return fmt.Errorf("birth rate %v: %w", r.BirthRate, ErrInvalidParameter)
	case !finite(r.DeathRate) || r.DeathRate < 0 || r.DeathRate > 1:
		return fmt.Errorf("death rate %v: %w", r.DeathRate, ErrInvalidParameter)
	}
	return nil
}

// State is the aggregate population at a point in simulated time.
// Population is never negative.
type State struct {
	Population  float64 `json:"population"`
	GrowthRate  float64 `json:"growth_rate"`
	ElapsedTime float64 `json:"elapsed_time"`
}

// Validate reports whether s can seed an extrapolation.
func (s State) Validate() error {
	switch {
	case !finite(s.Population) || s.Population < 0:
		return fmt.Errorf("population %v: %w", s.Population, ErrInvalidParameter)
	case !finite(s.ElapsedTime):
		return fmt.Errorf("elapsed time %v: %w", s.ElapsedTime, ErrInvalidParameter)
	}
	return nil
}

// Advance moves the state dt years forward with annual compounding:
// Population *= (1 + BirthRate - DeathRate)^dt.
// Invalid input returns an error wrapping ErrInvalidParameter and leaves s unchanged.
func (s *State) Advance(dt float64, r Rates) error {
	if !finite(dt) || dt < 0 {
		return fmt.Errorf("time step %v: %w", dt, ErrInvalidParameter)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	growth := r.Growth()
	next := s.Population * math.Pow(1+growth, dt)
	if !finite(next) || next < 0 {
		return fmt.Errorf("population %v after %v years: %w", next, dt, ErrInvalidParameter)
	}

	s.Population = next
	s.GrowthRate = growth
	s.ElapsedTime += dt
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
