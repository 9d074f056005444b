package domain

import "time"

// ExclusionReason explains why the eligibility classifier removed a carrier
type ExclusionReason string

const (
	ReasonNone               ExclusionReason = "none"
	ReasonInactiveStatus     ExclusionReason = "inactive_status"
	ReasonPassengerOperation ExclusionReason = "passenger_operation"
	ReasonNoTruckPower       ExclusionReason = "no_truck_power"
	ReasonPrivateNotForHire  ExclusionReason = "private_not_for_hire"
	ReasonNoForHireAuthority ExclusionReason = "no_for_hire_authority"
)

// ExclusionReasons lists every exclusion reason in cascade order
var ExclusionReasons = []ExclusionReason{
	ReasonInactiveStatus,
	ReasonPassengerOperation,
	ReasonNoTruckPower,
	ReasonPrivateNotForHire,
	ReasonNoForHireAuthority,
}

// Decision is the outcome of eligibility classification
type Decision struct {
	Excluded bool            `json:"excluded"`
	Reason   ExclusionReason `json:"reason"`
}

// Grade is a letter grade from A+ to F
type Grade string

// Grades lists the thirteen letter grades best first
var Grades = []Grade{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "F"}

// ISSBucket is the inspection recommendation derived from an ISS score
type ISSBucket string

const (
	BucketInspect  ISSBucket = "Inspect"
	BucketOptional ISSBucket = "Optional"
	BucketPass     ISSBucket = "Pass"
)

// ISSSource names the algorithm that produced an ISS score
type ISSSource string

const (
	SourceSafety       ISSSource = "SAFETY"
	SourceInsufficient ISSSource = "INSUFFICIENT"
)

// BucketFor maps an ISS score to its bucket
func BucketFor(score int) ISSBucket {
	switch {
	case score >= 75:
		return BucketInspect
	case score >= 50:
		return BucketOptional
	default:
		return BucketPass
	}
}

// ISSResult is an estimated Inspection Selection System score
type ISSResult struct {
	Score      int             `json:"iss_score"`
	Bucket     ISSBucket       `json:"iss_bucket"`
	Source     ISSSource       `json:"iss_source"`
	Group      *int            `json:"iss_group,omitempty"` // Safety algorithm only
	Case       string          `json:"iss_case,omitempty"`  // D2-D5, insufficient data only
	Alerts     map[string]bool `json:"iss_alerts,omitempty"`
	Confidence string          `json:"iss_confidence"`
}

// InspectionPeriod counts inspections and out-of-service results in one quarter
type InspectionPeriod struct {
	Count int `json:"count"`
	OOS   int `json:"oos"`
}

// Trends holds the quarterly aggregations for a carrier's recent history
type Trends struct {
	Violations  map[string]map[string]int   `json:"violation_trends"`  // category -> quarter -> count
	Critical    map[string]map[string]int   `json:"critical_trends"`   // category -> quarter -> count
	Inspections map[string]InspectionPeriod `json:"inspection_trends"` // quarter -> counts
}

// ScoreResult is the derived per-carrier scoring record.
// Rank, Grade and InsuranceRating stay nil for carriers below the mileage threshold.
type ScoreResult struct {
	ExperienceScore float64  `json:"experience_score"`
	SafetyScore     float64  `json:"safety_score"`
	CrashScore      float64  `json:"crash_score"`
	InspectionScore float64  `json:"inspection_score"`
	CombinedScore   float64  `json:"combined_score"`
	RiskFlags       []string `json:"risk_flags"`

	AnnualMileage   int64 `json:"annual_mileage"`
	Eligible        bool  `json:"has_sufficient_mileage"`
	CrashCount      int   `json:"crash_count"`
	InspectionCount int   `json:"inspection_count"`
	ViolationCount  int   `json:"violation_count"`

	Rank            *int     `json:"rank"`
	Grade           *Grade   `json:"fred_score_grade"`
	InsuranceRating *float64 `json:"insurance_rating"`

	Trends Trends `json:"trends"`
}

// CarrierOutcome pairs a kept carrier with its scores
type CarrierOutcome struct {
	Carrier *CarrierRecord `json:"carrier"`
	Score   ScoreResult    `json:"score"`
	ISS     ISSResult      `json:"iss"`
}

// Exclusion records a carrier removed by the eligibility classifier
type Exclusion struct {
	DOTNumber string          `json:"dot_number"`
	Reason    ExclusionReason `json:"reason"`
}

// RatingStats summarizes the insurance ratings of the eligible population
type RatingStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// RunSummary aggregates population-level statistics for a run
type RunSummary struct {
	Processed           int                     `json:"processed"`
	Kept                int                     `json:"kept"`
	Exclusions          map[ExclusionReason]int `json:"exclusions"`
	Eligible            int                     `json:"eligible"`
	InsufficientMileage int                     `json:"insufficient_mileage"`
	GlobalViolationRate float64                 `json:"global_violation_rate"`
	GlobalCrashRate     float64                 `json:"global_crash_rate"`
	Ratings             RatingStats             `json:"ratings"`
	GradeCounts         map[Grade]int           `json:"grade_counts"`
	BucketCounts        map[ISSBucket]int       `json:"iss_bucket_counts"`
}

// RunTimings records how long each phase of a run took
type RunTimings struct {
	PerCarrier time.Duration `json:"per_carrier_ns"`
	Population time.Duration `json:"population_ns"`
}

// RunResult is everything a scoring run produces, in input order
type RunResult struct {
	RunID      string           `json:"run_id"`
	AsOf       time.Time        `json:"as_of"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Timings    RunTimings       `json:"timings"`
	Outcomes   []CarrierOutcome `json:"carriers"`
	Excluded   []Exclusion      `json:"excluded"`
	Summary    RunSummary       `json:"summary"`
}

// Ranked returns the graded outcomes ordered by rank
func (r *RunResult) Ranked() []CarrierOutcome {
	ranked := make([]CarrierOutcome, 0, r.Summary.Eligible)
	for _, o := range r.Outcomes {
		if o.Score.Rank != nil {
			ranked = append(ranked, o)
		}
	}
	// ranks are a dense 1..n permutation, so place by index
	ordered := make([]CarrierOutcome, len(ranked))
	for _, o := range ranked {
		idx := *o.Score.Rank - 1
		if idx >= 0 && idx < len(ordered) {
			ordered[idx] = o
		}
	}
	return ordered
}
