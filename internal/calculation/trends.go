package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// TrendWindow is how far back quarterly trends reach from the as-of date
const TrendWindow = 730 * 24 * time.Hour

// QuarterLabel formats a date as "Q<n> <yyyy>"
func QuarterLabel(t time.Time) string {
	return fmt.Sprintf("Q%d %d", (int(t.Month())-1)/3+1, t.Year())
}

// BuildTrends aggregates a carrier's recent violations and inspections by quarter.
// Records without a date or older than the window are skipped.
func BuildTrends(violations []domain.ViolationRecord, inspections []domain.InspectionRecord, asOf time.Time) domain.Trends {
	trends := domain.Trends{
		Violations:  make(map[string]map[string]int),
		Critical:    make(map[string]map[string]int),
		Inspections: make(map[string]domain.InspectionPeriod),
	}
	cutoff := asOf.Add(-TrendWindow)

	for _, v := range violations {
		if !inWindow(v.InspectionDate, cutoff) {
			continue
		}
		category := strings.TrimSpace(v.BasicDesc)
		quarter := QuarterLabel(v.InspectionDate)
		increment(trends.Violations, category, quarter)
		if v.SeverityWeight >= domain.CriticalSeverity {
			increment(trends.Critical, category, quarter)
		}
	}

	for _, insp := range inspections {
		if !inWindow(insp.InspectionDate, cutoff) {
			continue
		}
		quarter := QuarterLabel(insp.InspectionDate)
		period := trends.Inspections[quarter]
		period.Count++
		if insp.OutOfService {
			period.OOS++
		}
		trends.Inspections[quarter] = period
	}

	return trends
}

func inWindow(t, cutoff time.Time) bool {
	return !t.IsZero() && !t.Before(cutoff)
}

func increment(m map[string]map[string]int, category, quarter string) {
	byQuarter, ok := m[category]
	if !ok {
		byQuarter = make(map[string]int)
		m[category] = byQuarter
	}
	byQuarter[quarter]++
}
