package calculation

import "strconv"

// roundTo rounds the exact binary value of v to the given number of decimal
// places, ties to even. 57.25 becomes 57.2 and 99.25 becomes 99.2.
func roundTo(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorAtZero(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}
