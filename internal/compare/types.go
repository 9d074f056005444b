package compare

import (
	"fmt"
	"slices"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
)

// Movement classifies how a carrier changed between two runs
type Movement string

const (
	MovementNew        Movement = "new"
	MovementDropped    Movement = "dropped"
	MovementGraded     Movement = "graded"
	MovementUngraded   Movement = "ungraded"
	MovementUpgraded   Movement = "upgraded"
	MovementDowngraded Movement = "downgraded"
	MovementUnchanged  Movement = "unchanged"
)

// Movements lists every movement in report order
var Movements = []Movement{
	MovementUpgraded,
	MovementDowngraded,
	MovementGraded,
	MovementUngraded,
	MovementNew,
	MovementDropped,
	MovementUnchanged,
}

// CarrierChange is one carrier's difference between the base and current run
type CarrierChange struct {
	DOTNumber string   `json:"dotNumber"`
	LegalName string   `json:"legalName"`
	Movement  Movement `json:"movement"`

	BaseGrade    *domain.Grade `json:"baseGrade"`
	CurrentGrade *domain.Grade `json:"currentGrade"`
	GradeSteps   int           `json:"gradeSteps"` // positive is an improvement

	BaseRank    *int `json:"baseRank"`
	CurrentRank *int `json:"currentRank"`
	RankDelta   int  `json:"rankDelta"` // positive moved up the list

	BaseCombined  decimal.Decimal `json:"baseCombined"`
	CombinedDelta decimal.Decimal `json:"combinedDelta"`

	BaseBucket    domain.ISSBucket `json:"baseIssBucket,omitempty"`
	CurrentBucket domain.ISSBucket `json:"currentIssBucket,omitempty"`
}

// Changed reports whether anything visible moved
func (c CarrierChange) Changed() bool {
	return c.Movement != MovementUnchanged || c.RankDelta != 0 || c.BaseBucket != c.CurrentBucket
}

// ComparisonSet is the full difference between two runs
type ComparisonSet struct {
	BaseRunID    string `json:"baseRunId"`
	CurrentRunID string `json:"currentRunId"`
	BaseAsOf     string `json:"baseAsOf"`
	CurrentAsOf  string `json:"currentAsOf"`

	Changes    []CarrierChange      `json:"changes"`
	Counts     map[Movement]int     `json:"counts"`
	GradeShift map[domain.Grade]int `json:"gradeShift"` // current count minus base count
	Highlights []string             `json:"highlights"`
}

// Filter returns a copy holding only changes that pass keep
func (cs *ComparisonSet) Filter(keep func(CarrierChange) bool) *ComparisonSet {
	out := *cs
	out.Changes = make([]CarrierChange, 0, len(cs.Changes))
	for _, c := range cs.Changes {
		if keep(c) {
			out.Changes = append(out.Changes, c)
		}
	}
	return &out
}

// gradeIndex is the position in domain.Grades, 0 being best; -1 when absent
func gradeIndex(g *domain.Grade) int {
	if g == nil {
		return -1
	}
	return slices.Index(domain.Grades, *g)
}

// classify fills movement, grade steps and rank delta for a carrier seen in both runs
func classify(c *CarrierChange) {
	switch {
	case c.BaseGrade == nil && c.CurrentGrade == nil:
		c.Movement = MovementUnchanged
	case c.BaseGrade == nil:
		c.Movement = MovementGraded
	case c.CurrentGrade == nil:
		c.Movement = MovementUngraded
	default:
		c.GradeSteps = gradeIndex(c.BaseGrade) - gradeIndex(c.CurrentGrade)
		switch {
		case c.GradeSteps > 0:
			c.Movement = MovementUpgraded
		case c.GradeSteps < 0:
			c.Movement = MovementDowngraded
		default:
			c.Movement = MovementUnchanged
		}
	}
	if c.BaseRank != nil && c.CurrentRank != nil {
		c.RankDelta = *c.BaseRank - *c.CurrentRank
	}
}

// GenerateHighlights summarizes the most notable movements
func GenerateHighlights(cs *ComparisonSet) []string {
	highlights := []string{}
	if len(cs.Changes) == 0 {
		return highlights
	}

	up, down := cs.Counts[MovementUpgraded], cs.Counts[MovementDowngraded]
	if up+down > 0 {
		highlights = append(highlights, fmt.Sprintf("%d carriers upgraded, %d downgraded", up, down))
	}
	if n, d := cs.Counts[MovementNew], cs.Counts[MovementDropped]; n+d > 0 {
		highlights = append(highlights, fmt.Sprintf("%d new carriers, %d no longer scored", n, d))
	}

	var best, worst *CarrierChange
	for i := range cs.Changes {
		c := &cs.Changes[i]
		if c.GradeSteps > 0 && (best == nil || c.GradeSteps > best.GradeSteps) {
			best = c
		}
		if c.GradeSteps < 0 && (worst == nil || c.GradeSteps < worst.GradeSteps) {
			worst = c
		}
	}
	if best != nil {
		highlights = append(highlights, fmt.Sprintf("Largest gain: DOT %s rose from %s to %s",
			best.DOTNumber, *best.BaseGrade, *best.CurrentGrade))
	}
	if worst != nil {
		highlights = append(highlights, fmt.Sprintf("Largest drop: DOT %s fell from %s to %s",
			worst.DOTNumber, *worst.BaseGrade, *worst.CurrentGrade))
	}

	return highlights
}
