// Package components defines ECS components for the population simulation.
package components

// Age is a completed age in years.
type Age uint8

// Count is a number of people.
type Count = uint64

// Gender identifies the sex of a cohort.
type Gender uint8

const (
	Male Gender = iota
	Female
)

// Genders lists both genders in display order.
var Genders = [2]Gender{Male, Female}

// String returns the display name of the gender.
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// Cohort identifies the people of one age and gender.
// Immutable for the lifetime of the entity: aging moves headcounts, not entities.
type Cohort struct {
	Age    Age
	Gender Gender
}

// Headcount holds the number of living people in a cohort.
type Headcount struct {
	N Count
}
