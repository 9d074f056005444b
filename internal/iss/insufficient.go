package iss

import "github.com/fredduggan/fleetidy/internal/domain"

// fleetTiers score zero-inspection carriers by fleet size, largest first
var fleetTiers = []struct {
	minUnits int
	score    int
}{
	{100, 69},
	{50, 68},
	{20, 67},
	{10, 66},
	{5, 65},
	{2, 64},
}

const smallFleetScore = 63

// InsufficientData scores a carrier from inspection counts alone. A nil
// BASIC record counts as zero inspections. Every case lands in Optional.
func InsufficientData(c *domain.CarrierRecord, basic *domain.BasicRecord, r Rand) domain.ISSResult {
	var vehicle, driver int
	if basic != nil {
		vehicle = basic.VehicleInspections
		driver = basic.DriverInspections
	}

	var score int
	var caseID string
	switch {
	case vehicle >= 5 || driver >= 3:
		score, caseID = 50, "D2"
	case vehicle == 4 || driver == 2:
		score, caseID = randInt(r, 55, 62), "D3"
	case vehicle == 0 && driver == 0:
		score, caseID = fleetScore(c.FleetSize()), "D4"
	default:
		score, caseID = 50+min(19, (vehicle+driver)*3), "D5"
	}

	return domain.ISSResult{
		Score:      score,
		Bucket:     domain.BucketFor(score),
		Source:     domain.SourceInsufficient,
		Case:       caseID,
		Confidence: Confidence,
	}
}

func fleetScore(units int) int {
	for _, tier := range fleetTiers {
		if units >= tier.minUnits {
			return tier.score
		}
	}
	return smallFleetScore
}
