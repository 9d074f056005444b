package compare

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
)

// LoadRun reads a run written by the json export format
func LoadRun(path string) (*domain.RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", path, err)
	}

	var run domain.RunResult
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run %s: %w", path, err)
	}
	return &run, nil
}

// Compare diffs two runs by DOT number. Changes follow the current run's
// order, then carriers only the base run scored, in base order.
func Compare(base, current *domain.RunResult) (*ComparisonSet, error) {
	if base == nil || current == nil {
		return nil, fmt.Errorf("both runs are required")
	}

	baseByDOT := make(map[string]domain.CarrierOutcome, len(base.Outcomes))
	for _, o := range base.Outcomes {
		if o.Carrier == nil {
			continue
		}
		if _, dup := baseByDOT[o.Carrier.DOTNumber]; !dup {
			baseByDOT[o.Carrier.DOTNumber] = o
		}
	}

	cs := &ComparisonSet{
		BaseRunID:    base.RunID,
		CurrentRunID: current.RunID,
		BaseAsOf:     formatDate(base),
		CurrentAsOf:  formatDate(current),
		Changes:      make([]CarrierChange, 0, len(current.Outcomes)),
		Counts:       make(map[Movement]int, len(Movements)),
		GradeShift:   make(map[domain.Grade]int, len(domain.Grades)),
	}

	seen := make(map[string]bool, len(current.Outcomes))
	for _, o := range current.Outcomes {
		if o.Carrier == nil || seen[o.Carrier.DOTNumber] {
			continue
		}
		dot := o.Carrier.DOTNumber
		seen[dot] = true

		change := CarrierChange{
			DOTNumber:     dot,
			LegalName:     o.Carrier.LegalName,
			CurrentGrade:  o.Score.Grade,
			CurrentRank:   o.Score.Rank,
			CurrentBucket: o.ISS.Bucket,
		}

		b, ok := baseByDOT[dot]
		if !ok {
			change.Movement = MovementNew
			change.CombinedDelta = decimal.NewFromFloat(o.Score.CombinedScore)
		} else {
			change.BaseGrade = b.Score.Grade
			change.BaseRank = b.Score.Rank
			change.BaseBucket = b.ISS.Bucket
			change.BaseCombined = decimal.NewFromFloat(b.Score.CombinedScore)
			change.CombinedDelta = decimal.NewFromFloat(o.Score.CombinedScore).Sub(change.BaseCombined)
			classify(&change)
		}
		cs.Changes = append(cs.Changes, change)
	}

	for _, o := range base.Outcomes {
		if o.Carrier == nil || seen[o.Carrier.DOTNumber] {
			continue
		}
		seen[o.Carrier.DOTNumber] = true
		combined := decimal.NewFromFloat(o.Score.CombinedScore)
		cs.Changes = append(cs.Changes, CarrierChange{
			DOTNumber:     o.Carrier.DOTNumber,
			LegalName:     o.Carrier.LegalName,
			Movement:      MovementDropped,
			BaseGrade:     o.Score.Grade,
			BaseRank:      o.Score.Rank,
			BaseBucket:    o.ISS.Bucket,
			BaseCombined:  combined,
			CombinedDelta: combined.Neg(),
		})
	}

	for _, c := range cs.Changes {
		cs.Counts[c.Movement]++
	}
	for _, g := range domain.Grades {
		cs.GradeShift[g] = current.Summary.GradeCounts[g] - base.Summary.GradeCounts[g]
	}
	cs.Highlights = GenerateHighlights(cs)

	return cs, nil
}

func formatDate(run *domain.RunResult) string {
	if run.AsOf.IsZero() {
		return ""
	}
	return run.AsOf.Format(domain.DateLayout)
}
