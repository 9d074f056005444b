package calculation

import (
	"math"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
)

const daysPerYear = 365.25

// experienceTiers are checked in order; the first ceiling above the carrier's tenure applies
var experienceTiers = []struct {
	underYears float64
	penalty    float64
}{
	{1, 30},
	{2, 20},
	{3, 10},
	{5, 5},
}

// CalculateExperienceScore penalizes carriers registered recently relative to asOf.
// A missing or unparseable registration date carries no penalty.
func CalculateExperienceScore(c *domain.CarrierRecord, asOf time.Time) float64 {
	score := 100.0

	added, ok := parseAddDate(c.AddDate)
	if !ok {
		return score
	}

	days := math.Floor(asOf.Sub(added).Hours() / 24)
	years := days / daysPerYear
	for _, tier := range experienceTiers {
		if years < tier.underYears {
			score -= tier.penalty
			break
		}
	}

	return floorAtZero(score)
}

// parseAddDate reads the leading YYYYMMDD of a census add date
func parseAddDate(s string) (time.Time, bool) {
	if len(s) < 8 {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", s[:8])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
