package systems

import "github.com/pthm-cable/lue/components"

// NominalTFR is the total fertility rate implied by the nominal fertility table:
// the sum of NominalFertility over all ages.
const NominalTFR = 5 * (0.04 + 0.10 + 0.13 + 0.12 + 0.08 + 0.03 + 0.005)

// NominalFertility returns the one-year birth probability for a woman of the
// given age before scaling to a target TFR.
func NominalFertility(age components.Age) float64 {
	switch {
	case age < 15:
		return 0
	case age <= 19:
		return 0.04
	case age <= 24:
		return 0.10
	case age <= 29:
		return 0.13
	case age <= 34:
		return 0.12
	case age <= 39:
		return 0.08
	case age <= 44:
		return 0.03
	case age <= 49:
		return 0.005
	default:
		return 0
	}
}

// Fertility returns the one-year birth probability for a woman of the given
// age with the nominal schedule scaled to targetTFR.
func Fertility(age components.Age, targetTFR float64) float64 {
	return NominalFertility(age) * targetTFR / NominalTFR
}

// mortalityBand is one row of the life table: the probability of dying within
// a year for everyone aged at least From.
type mortalityBand struct {
	From   components.Age
	Male   float64
	Female float64
}

// mortalityTable is ordered by From; age 0 is covered by the infant mortality parameter.
var mortalityTable = []mortalityBand{
	{1, 0.00039, 0.00030},
	{2, 0.00020, 0.00015},
	{5, 0.00013, 0.00010},
	{10, 0.00010, 0.00008},
	{15, 0.00022, 0.00018},
	{20, 0.00074, 0.00060},
	{25, 0.00097, 0.00080},
	{30, 0.00107, 0.00090},
	{35, 0.00127, 0.00110},
	{40, 0.00174, 0.00150},
	{45, 0.00261, 0.00220},
	{50, 0.00422, 0.00350},
	{55, 0.00689, 0.00570},
	{60, 0.01135, 0.00940},
	{65, 0.01871, 0.01550},
	{70, 0.03066, 0.02540},
	{75, 0.05027, 0.04160},
	{80, 0.08096, 0.06700},
	{85, 0.13257, 0.10970},
	{90, 0.20755, 0.17100},
	{95, 0.31234, 0.25500},
	{100, 0.43622, 0.36000},
}

// Mortality returns the probability that a person of the given age and gender
// dies within a year. Everyone at or above maxAge dies.
func Mortality(age components.Age, gender components.Gender, maxAge components.Age, infantMortality float64) float64 {
	if age >= maxAge {
		return 1
	}
	if age == 0 {
		return infantMortality
	}
	band := mortalityTable[0]
	for _, b := range mortalityTable[1:] {
		if age < b.From {
			break
		}
		band = b
	}
	if gender == components.Male {
		return band.Male
	}
	return band.Female
}

// AgeFrequency returns the share of the initial population aged exactly age.
// Ages above maxAge get nothing.
func AgeFrequency(age, maxAge components.Age) float64 {
	if age > maxAge {
		return 0
	}
	switch {
	case age <= 14:
		return 0.25 / 15.0
	case age <= 24:
		return 0.16 / 10.0
	case age <= 54:
		return 0.41 / 30.0
	case age <= 64:
		return 0.09 / 10.0
	default:
		return 0.09 / 56.0
	}
}

// MaleBirthBias returns the fraction of newborns that are male.
func MaleBirthBias(malesPer100Females int) float64 {
	return float64(malesPer100Females) / float64(malesPer100Females+100)
}
