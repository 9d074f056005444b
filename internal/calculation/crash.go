package calculation

import (
	"fmt"
	"math"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// CalculateCrashScore deducts for fatalities, injuries, hazmat releases and crash frequency
func CalculateCrashScore(crashes []domain.CrashRecord) (float64, []string) {
	score := 100.0
	var flags []string

	if len(crashes) == 0 {
		return score, flags
	}

	var fatalities, injuries, hazmatReleases int
	for _, crash := range crashes {
		fatalities += crash.Fatalities
		injuries += crash.Injuries
		if crash.HazmatReleased {
			hazmatReleases++
		}
	}

	if fatalities > 0 {
		score -= math.Min(50, float64(fatalities*25))
		flags = append(flags, fmt.Sprintf("FATAL crashes (%d fatalities)", fatalities))
	}
	if injuries > 0 {
		score -= math.Min(30, float64(injuries*5))
		flags = append(flags, fmt.Sprintf("Multiple injury crashes (%d injuries)", injuries))
	}
	if hazmatReleases > 0 {
		score -= math.Min(20, float64(hazmatReleases*10))
		flags = append(flags, fmt.Sprintf("Hazmat releases (%d)", hazmatReleases))
	}

	total := len(crashes)
	switch {
	case total >= 5:
		score -= 15
	case total >= 3:
		score -= 10
	}
	// any crash at all is reported; only 3+ costs points
	flags = append(flags, fmt.Sprintf("High crash frequency (%d crashes)", total))

	return floorAtZero(score), flags
}
