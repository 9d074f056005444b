// Package ingest loads the FMCSA bulk CSV extracts and joins them by DOT number.
//
// Every parser here is tolerant: a missing or malformed value becomes the
// documented default rather than an error, so one bad cell never aborts a run.
package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	"02-Jan-06",
	"20060102",
	"2006-01-02",
	"01/02/2006",
}

// NormalizeFieldName lowercases a header and collapses every run of
// non-alphanumerics to a single underscore, so DOT_Number, "dot number"
// and DOT_NUMBER all resolve to dot_number.
func NormalizeFieldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// cleanValue trims whitespace and surrounding double quotes
func cleanValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// ParseFloat parses s, returning def when s is empty or malformed
func ParseFloat(s string, def float64) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return def
	}
	return v
}

// ParseOptionalFloat parses s, returning nil when s is empty or malformed
func ParseOptionalFloat(s string) *float64 {
	v, ok := parseFloat(s)
	if !ok {
		return nil
	}
	return &v
}

func parseFloat(s string) (float64, bool) {
	s = cleanValue(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseInt64 parses s as a number and truncates toward zero, so "12.9" is 12.
// Empty or malformed input returns def.
func ParseInt64(s string, def int64) int64 {
	s = cleanValue(s)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, ok := parseFloat(s)
	if !ok || f > math.MaxInt64 || f < math.MinInt64 {
		return def
	}
	return int64(f)
}

// ParseInt is ParseInt64 for int-sized counts
func ParseInt(s string, def int) int {
	return int(ParseInt64(s, int64(def)))
}

// ParseFlag reports whether s is one of Y, YES, TRUE, 1 or X (any case)
func ParseFlag(s string) bool {
	switch strings.ToUpper(cleanValue(s)) {
	case "Y", "YES", "TRUE", "1", "X":
		return true
	default:
		return false
	}
}

// ParseDate parses the date formats found across the extracts. The second
// return value is false when s is empty or matches none of them.
func ParseDate(s string) (time.Time, bool) {
	s = cleanValue(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDOT trims a DOT number cell; "123.0" from numeric exports becomes "123"
func NormalizeDOT(s string) string {
	s = cleanValue(s)
	if whole, frac, ok := strings.Cut(s, "."); ok && strings.Trim(frac, "0") == "" {
		return whole
	}
	return s
}
