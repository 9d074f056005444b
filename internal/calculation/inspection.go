package calculation

import (
	"fmt"
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// violationPatternThreshold is the per-category violation count that earns a pattern flag
const violationPatternThreshold = 10

// CalculateInspectionScore deducts for out-of-service rates and reports violation patterns.
// The 20% tier deducts without a flag; 30% and 50% deduct and flag.
// Pattern flags never change the score and are only produced when inspections exist.
func CalculateInspectionScore(inspections []domain.InspectionRecord, violations []domain.ViolationRecord) (float64, []string) {
	score := 100.0
	var flags []string

	if len(inspections) == 0 {
		return score, flags
	}

	oos := 0
	for _, insp := range inspections {
		if insp.OutOfService {
			oos++
		}
	}

	rate := float64(oos) / float64(len(inspections)) * 100
	switch {
	case rate >= 50:
		score -= 30
		flags = append(flags, fmt.Sprintf("High OOS rate (%.1f%%)", rate))
	case rate >= 30:
		score -= 20
		flags = append(flags, fmt.Sprintf("Elevated OOS rate (%.1f%%)", rate))
	case rate >= 20:
		score -= 10
	}

	flags = append(flags, violationPatterns(violations)...)

	return floorAtZero(score), flags
}

// violationPatterns counts violations per BASIC description, keeping first-seen order
func violationPatterns(violations []domain.ViolationRecord) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range violations {
		category := strings.TrimSpace(v.BasicDesc)
		if category == "" {
			category = "Unknown"
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	var flags []string
	for _, category := range order {
		if n := counts[category]; n >= violationPatternThreshold {
			flags = append(flags, fmt.Sprintf("Pattern: %s (%d violations)", category, n))
		}
	}
	return flags
}
