// Package iss estimates Inspection Selection System scores from BASIC alert
// patterns. The estimate is a heuristic approximation, not the federal score.
package iss

import (
	"github.com/fredduggan/fleetidy/internal/domain"
)

// Confidence is reported on every estimate
const Confidence = "estimated"

// UnknownGroupScore is returned for a group outside the scored ranges
const UnknownGroupScore = 62

// highRiskPercentile is the percentile at which an alerted Unsafe, HOS or Crash BASIC counts toward group 1
const highRiskPercentile = 85.0

// Profile is the alert picture group assignment works from
type Profile struct {
	Alerts      [domain.NumBasics]bool
	Percentiles [domain.NumBasics]*float64
	Total       int // alerts across all BASICs
	Roadside    int // alerts across roadside BASICs
}

// NewProfile reads alerts and valid percentiles from a BASIC record
func NewProfile(basic *domain.BasicRecord) Profile {
	var p Profile
	for _, b := range domain.AllBasics {
		p.Alerts[b] = basic.Alert(b)
		p.Percentiles[b] = basic.Percentile(b)
		if p.Alerts[b] {
			p.Total++
			if b.Roadside() {
				p.Roadside++
			}
		}
	}
	return p
}

// HasData reports whether any BASIC carries a usable percentile
func (p Profile) HasData() bool {
	for _, pct := range p.Percentiles {
		if pct != nil {
			return true
		}
	}
	return false
}

// highRiskAlerts counts Unsafe, HOS and Crash alerts at or above the high-risk percentile
func (p Profile) highRiskAlerts() int {
	n := 0
	for _, b := range []domain.Basic{domain.UnsafeDriving, domain.HoursOfService, domain.CrashIndicator} {
		if p.Alerts[b] && p.Percentiles[b] != nil && *p.Percentiles[b] >= highRiskPercentile {
			n++
		}
	}
	return n
}

func (p Profile) singleAlert(b domain.Basic) bool {
	return p.Total == 1 && p.Alerts[b]
}

// GroupRule assigns a group when it matches
type GroupRule struct {
	Name    string
	Group   int
	Matches func(p Profile) bool
}

// FallbackGroup is assigned when no rule matches
const FallbackGroup = 13

// GroupRules are evaluated in order and the first match wins. There is no group 6.
var GroupRules = []GroupRule{
	{Name: "four-or-more-alerts", Group: 1, Matches: func(p Profile) bool { return p.Total >= 4 }},
	{Name: "high-risk-pair", Group: 1, Matches: func(p Profile) bool { return p.Total >= 2 && p.highRiskAlerts() >= 2 }},
	{Name: "three-roadside", Group: 2, Matches: func(p Profile) bool { return p.Roadside >= 3 }},
	{Name: "two-roadside", Group: 3, Matches: func(p Profile) bool { return p.Roadside == 2 }},
	{Name: "mixed-one-roadside", Group: 4, Matches: func(p Profile) bool { return p.Total >= 2 && p.Roadside == 1 }},
	{Name: "hos-only", Group: 5, Matches: func(p Profile) bool { return p.singleAlert(domain.HoursOfService) }},
	{Name: "unsafe-only", Group: 7, Matches: func(p Profile) bool { return p.singleAlert(domain.UnsafeDriving) }},
	{Name: "crash-only", Group: 8, Matches: func(p Profile) bool { return p.singleAlert(domain.CrashIndicator) }},
	{Name: "vehicle-maintenance-only", Group: 9, Matches: func(p Profile) bool { return p.singleAlert(domain.VehicleMaintenance) }},
	{Name: "driver-fitness-only", Group: 10, Matches: func(p Profile) bool { return p.singleAlert(domain.DriverFitness) }},
	{Name: "controlled-substances-only", Group: 11, Matches: func(p Profile) bool { return p.singleAlert(domain.ControlledSubstances) }},
	{Name: "hazmat-only", Group: 12, Matches: func(p Profile) bool { return p.singleAlert(domain.HazardousMaterials) }},
	{Name: "no-alerts", Group: 13, Matches: func(p Profile) bool { return p.HasData() && p.Total == 0 }},
}

// AssignGroup walks GroupRules and falls back to group 13
func AssignGroup(p Profile) int {
	return AssignGroupWith(GroupRules, p)
}

// AssignGroupWith walks an arbitrary rule list
func AssignGroupWith(rules []GroupRule, p Profile) int {
	for _, rule := range rules {
		if rule.Matches(p) {
			return rule.Group
		}
	}
	return FallbackGroup
}

// SafetyScore draws a score for a group. Groups 1-5 land in [75,99], 7-12 in
// [50,74] and 13 in [25,49]; anything else scores UnknownGroupScore.
func SafetyScore(group int, r Rand) int {
	switch {
	case group >= 1 && group <= 5:
		base := 99 - (group-1)*4
		return clampInt(base+randInt(r, -3, 3), 75, 99)
	case group >= 7 && group <= 12:
		base := 74 - (group-7)*4
		return clampInt(base+randInt(r, -3, 3), 50, 74)
	case group == 13:
		return randInt(r, 25, 49)
	default:
		return UnknownGroupScore
	}
}

// Estimator produces ISS estimates. A nil Seed derives one per carrier.
type Estimator struct {
	Seed *int64
}

// Estimate runs the estimator with per-carrier seeding
func Estimate(c *domain.CarrierRecord, basic *domain.BasicRecord) domain.ISSResult {
	return (&Estimator{}).Estimate(c, basic)
}

// Estimate scores one carrier. Without a BASIC record, or with no usable
// percentile, the insufficient-data algorithm applies.
func (e *Estimator) Estimate(c *domain.CarrierRecord, basic *domain.BasicRecord) domain.ISSResult {
	r := NewRand(e.seedFor(c.DOTNumber))

	if basic == nil {
		return InsufficientData(c, nil, r)
	}

	profile := NewProfile(basic)
	if !profile.HasData() {
		return InsufficientData(c, basic, r)
	}

	group := AssignGroup(profile)
	score := SafetyScore(group, r)

	alerts := make(map[string]bool, domain.NumBasics)
	for _, b := range domain.AllBasics {
		alerts[b.Key()] = profile.Alerts[b]
	}

	return domain.ISSResult{
		Score:      score,
		Bucket:     domain.BucketFor(score),
		Source:     domain.SourceSafety,
		Group:      &group,
		Alerts:     alerts,
		Confidence: Confidence,
	}
}

// seedFor treats an explicit seed of 0 as unset
func (e *Estimator) seedFor(dot string) int64 {
	if e != nil && e.Seed != nil && *e.Seed != 0 {
		return *e.Seed
	}
	return SeedForDOT(dot)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
