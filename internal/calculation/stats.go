package calculation

import (
	"sort"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeRatingStats summarizes insurance ratings. P10 and P90 are nearest-rank
// picks at n/10 and 9n/10 of the sorted ratings.
func ComputeRatingStats(ratings []float64) domain.RatingStats {
	n := len(ratings)
	if n == 0 {
		return domain.RatingStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, ratings)
	sort.Float64s(sorted)

	sum := decimal.Zero
	for _, r := range sorted {
		sum = sum.Add(decimal.NewFromFloat(r))
	}
	mean := sum.Div(decimal.NewFromInt(int64(n)))

	var median decimal.Decimal
	if n%2 == 1 {
		median = decimal.NewFromFloat(sorted[n/2])
	} else {
		median = decimal.NewFromFloat(sorted[n/2-1]).Add(decimal.NewFromFloat(sorted[n/2])).Div(decimal.NewFromInt(2))
	}

	return domain.RatingStats{
		Count:  n,
		Mean:   mean.Round(2).InexactFloat64(),
		Median: median.Round(2).InexactFloat64(),
		P10:    sorted[n/10],
		P90:    sorted[9*n/10],
		Min:    sorted[0],
		Max:    sorted[n-1],
	}
}

// GradeDistribution counts placements per grade, listing every grade even when empty
func GradeDistribution(placements []Placement) map[domain.Grade]int {
	counts := make(map[domain.Grade]int, len(domain.Grades))
	for _, g := range domain.Grades {
		counts[g] = 0
	}
	for _, p := range placements {
		counts[p.Grade]++
	}
	return counts
}
