package calculation

import (
	"fmt"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// CalculateSafetyScore deducts for BASIC alerts and elevated percentiles.
// Categories are visited in fixed order so flags come out in that order.
func CalculateSafetyScore(basic *domain.BasicRecord) (float64, []string) {
	score := 100.0
	var flags []string

	if basic == nil {
		return score, flags
	}

	for _, b := range domain.AllBasics {
		measure := basic.Measure(b)
		switch {
		case basic.Alert(b):
			score -= 15
			flags = append(flags, fmt.Sprintf("BASIC Alert: %s", b))
		case measure >= 75:
			score -= 10
		case measure >= 65:
			score -= 5
		}
	}

	return floorAtZero(score), flags
}
