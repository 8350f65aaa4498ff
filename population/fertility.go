package population

import "gonum.org/v1/gonum/stat"

// Avg returns the mean children per woman across cohorts, NaN when empty.
func (cf CohortFertility) Avg() float64 {
	return stat.Mean(cf.Ratios(), nil)
}

// retain drops cohorts born outside [from, to].
func (cf CohortFertility) retain(from, to Year) {
	for y := range cf {
		if y < from || y > to {
			delete(cf, y)
		}
	}
}
