package calculation

import (
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// MinEligibleMileage is the annual mileage a carrier needs to be ranked and rated
const MinEligibleMileage = 100000

// Component weights for the combined score
const (
	experienceWeight = 0.15
	safetyWeight     = 0.35
	crashWeight      = 0.30
	inspectionWeight = 0.20
)

// CombinedScore is the weighted sum of the four component scores rounded to one
// decimal. The sum is accumulated in float64 left to right and exact .x5 ties
// round to even. Each product is converted to float64 so it cannot be fused.
func CombinedScore(experience, safety, crash, inspection float64) float64 {
	sum := float64(experience*experienceWeight) +
		float64(safety*safetyWeight) +
		float64(crash*crashWeight) +
		float64(inspection*inspectionWeight)
	return roundTo(sum, 1)
}

// ScoreCarrier computes the per-carrier part of a ScoreResult.
// Rank, grade and insurance rating are left nil for the population pass.
func ScoreCarrier(data *domain.CarrierData, asOf time.Time) domain.ScoreResult {
	experience := CalculateExperienceScore(&data.Carrier, asOf)
	safety, safetyFlags := CalculateSafetyScore(data.Basic)
	crash, crashFlags := CalculateCrashScore(data.Crashes)
	inspection, inspectionFlags := CalculateInspectionScore(data.Inspections, data.Violations)

	flags := make([]string, 0, len(safetyFlags)+len(crashFlags)+len(inspectionFlags))
	flags = append(flags, safetyFlags...)
	flags = append(flags, crashFlags...)
	flags = append(flags, inspectionFlags...)

	mileage := data.Carrier.AnnualMileage()

	return domain.ScoreResult{
		ExperienceScore: roundTo(experience, 1),
		SafetyScore:     roundTo(safety, 1),
		CrashScore:      roundTo(crash, 1),
		InspectionScore: roundTo(inspection, 1),
		CombinedScore:   CombinedScore(experience, safety, crash, inspection),
		RiskFlags:       flags,
		AnnualMileage:   mileage,
		Eligible:        mileage >= MinEligibleMileage,
		CrashCount:      len(data.Crashes),
		InspectionCount: len(data.Inspections),
		ViolationCount:  len(data.Violations),
		Trends:          BuildTrends(data.Violations, data.Inspections, asOf),
	}
}
