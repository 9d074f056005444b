package calculation

const (
	mileageUnit      = 100000.0
	violationShare   = 0.4
	crashShare       = 0.6
	minimumRating    = 1.0
	maximumRating    = 500.0
	neutralRateRatio = 1.0
)

// InsuranceRates is the result of normalizing a population's exposure
type InsuranceRates struct {
	GlobalViolationRate float64         // violations per 100k miles across the population
	GlobalCrashRate     float64         // crashes per 100k miles across the population
	Ratings             map[int]float64 // outcome index -> rating
}

// NormalizeInsurance rates every member against the population's aggregate rates.
// The totals are reduced completely before any member is rated.
func NormalizeInsurance(pop Population) InsuranceRates {
	rates := InsuranceRates{Ratings: make(map[int]float64, pop.Len())}
	if pop.Len() == 0 {
		return rates
	}

	var totalViolations, totalCrashes int
	var totalMileage int64
	for _, m := range pop.members {
		totalViolations += m.Violations
		totalCrashes += m.Crashes
		totalMileage += m.Mileage
	}

	if totalMileage > 0 {
		rates.GlobalViolationRate = float64(totalViolations) / float64(totalMileage) * mileageUnit
		rates.GlobalCrashRate = float64(totalCrashes) / float64(totalMileage) * mileageUnit
	}

	for _, m := range pop.members {
		if m.Mileage <= 0 {
			continue
		}
		units := float64(m.Mileage) / mileageUnit
		violationMultiplier := ratio(float64(m.Violations)/units, rates.GlobalViolationRate)
		crashMultiplier := ratio(float64(m.Crashes)/units, rates.GlobalCrashRate)

		rating := 100 * (violationShare*violationMultiplier + crashShare*crashMultiplier)
		rates.Ratings[m.Index] = roundTo(clamp(rating, minimumRating, maximumRating), 2)
	}

	return rates
}

func ratio(rate, global float64) float64 {
	if global <= 0 {
		return neutralRateRatio
	}
	return rate / global
}
