package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/lue/population"
	"github.com/pthm-cable/lue/stabilize"
)

// SweepPoint is the population trend at one fertility rate.
type SweepPoint struct {
	TFR   float64 `csv:"tfr"`
	Slope float64 `csv:"slope"`
	Cost  float64 `csv:"cost"`
	Valid bool    `csv:"valid"`
}

// Sweep evaluates the trend at every step from lo to hi inclusive.
func Sweep(s *stabilize.Solver, p population.Parameters, lo, hi, step float64) ([]SweepPoint, error) {
	if step <= 0 || hi < lo || math.IsNaN(step) {
		return nil, fmt.Errorf("sweep %v..%v by %v: %w", lo, hi, step, population.ErrInvalidParameter)
	}

	n := int(math.Floor((hi-lo)/step+1e-9)) + 1
	points := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		tfr := lo + float64(i)*step
		slope, ok, err := s.Slope(p, tfr)
		if err != nil {
			return nil, err
		}
		pt := SweepPoint{TFR: tfr, Slope: slope, Cost: math.Inf(1), Valid: ok}
		if ok {
			pt.Cost = slope * slope
		}
		points = append(points, pt)
	}
	return points, nil
}
