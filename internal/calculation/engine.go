package calculation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/fredduggan/fleetidy/internal/eligibility"
	"github.com/fredduggan/fleetidy/internal/iss"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates a scoring run over a joined carrier population
type Engine struct {
	AsOf    time.Time          // reference date for tenure and trend windows
	Workers int                // per-carrier fan-out; <= 0 uses GOMAXPROCS
	ISS     *iss.Estimator     // nil seeds per DOT number
	Rules   []eligibility.Rule // nil uses eligibility.Rules

	logger Logger
	now    func() time.Time
}

// NewEngine creates an engine scoring as of the given date
func NewEngine(asOf time.Time) *Engine {
	return &Engine{
		AsOf:   asOf,
		ISS:    &iss.Estimator{},
		logger: NopLogger{},
		now:    time.Now,
	}
}

// SetLogger sets the engine's logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// carrierSlot holds the per-carrier result of phase A at the carrier's input index
type carrierSlot struct {
	decision domain.Decision
	outcome  domain.CarrierOutcome
}

// Run scores every carrier. Per-carrier work fans out first; insurance
// normalization and grading start only after every carrier is done.
func (e *Engine) Run(ctx context.Context, carriers []domain.CarrierData) (*domain.RunResult, error) {
	if e.logger == nil {
		e.logger = NopLogger{}
	}
	if e.now == nil {
		e.now = time.Now
	}

	result := &domain.RunResult{
		RunID:     uuid.NewString(),
		AsOf:      e.AsOf,
		StartedAt: e.now(),
	}
	e.logger.Infof("run %s: scoring %d carriers as of %s", result.RunID, len(carriers), e.AsOf.Format("2006-01-02"))

	slots, err := e.scoreCarriers(ctx, carriers)
	if err != nil {
		return nil, fmt.Errorf("scoring carriers: %w", err)
	}
	phaseA := e.now()
	result.Timings.PerCarrier = phaseA.Sub(result.StartedAt)

	result.Outcomes = make([]domain.CarrierOutcome, 0, len(slots))
	for i := range slots {
		if slots[i].decision.Excluded {
			result.Excluded = append(result.Excluded, domain.Exclusion{
				DOTNumber: carriers[i].Carrier.DOTNumber,
				Reason:    slots[i].decision.Reason,
			})
			continue
		}
		result.Outcomes = append(result.Outcomes, slots[i].outcome)
	}
	e.logger.Infof("kept %d carriers, excluded %d", len(result.Outcomes), len(result.Excluded))

	pop := NewPopulation(result.Outcomes)
	rates := e.applyInsurance(result.Outcomes, pop)
	placements := e.applyGrades(result.Outcomes, pop)

	result.FinishedAt = e.now()
	result.Timings.Population = result.FinishedAt.Sub(phaseA)
	result.Summary = summarize(len(carriers), result, pop, rates, placements)

	return result, nil
}

// scoreCarriers runs eligibility, component scoring and ISS per carrier.
// Each worker writes only its own slot, so the slice needs no lock.
func (e *Engine) scoreCarriers(ctx context.Context, carriers []domain.CarrierData) ([]carrierSlot, error) {
	slots := make([]carrierSlot, len(carriers))

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range carriers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = e.scoreCarrier(&carriers[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (e *Engine) scoreCarrier(data *domain.CarrierData) carrierSlot {
	rules := e.Rules
	if rules == nil {
		rules = eligibility.Rules
	}

	decision := eligibility.ClassifyWith(rules, &data.Carrier)
	if decision.Excluded {
		e.logger.Debugf("carrier %s excluded: %s", data.Carrier.DOTNumber, decision.Reason)
		return carrierSlot{decision: decision}
	}

	estimator := e.ISS
	if estimator == nil {
		estimator = &iss.Estimator{}
	}

	return carrierSlot{
		decision: decision,
		outcome: domain.CarrierOutcome{
			Carrier: &data.Carrier,
			Score:   ScoreCarrier(data, e.AsOf),
			ISS:     estimator.Estimate(&data.Carrier, data.Basic),
		},
	}
}

func (e *Engine) applyInsurance(outcomes []domain.CarrierOutcome, pop Population) InsuranceRates {
	e.logger.Infof("normalizing insurance ratings for %d eligible carriers", pop.Len())
	rates := NormalizeInsurance(pop)
	for idx, rating := range rates.Ratings {
		r := rating
		outcomes[idx].Score.InsuranceRating = &r
	}
	e.logger.Infof("global violations/100k: %.3f, crashes/100k: %.3f", rates.GlobalViolationRate, rates.GlobalCrashRate)
	return rates
}

func (e *Engine) applyGrades(outcomes []domain.CarrierOutcome, pop Population) []Placement {
	placements := AssignGrades(pop)
	for _, p := range placements {
		rank, grade := p.Rank, p.Grade
		outcomes[p.Index].Score.Rank = &rank
		outcomes[p.Index].Score.Grade = &grade
	}
	if len(placements) > 0 {
		counts := GradeDistribution(placements)
		for _, g := range domain.Grades {
			e.logger.Debugf("grade %-2s: %d", g, counts[g])
		}
	}
	return placements
}

func summarize(processed int, result *domain.RunResult, pop Population, rates InsuranceRates, placements []Placement) domain.RunSummary {
	summary := domain.RunSummary{
		Processed:           processed,
		Kept:                len(result.Outcomes),
		Exclusions:          make(map[domain.ExclusionReason]int, len(domain.ExclusionReasons)),
		Eligible:            pop.Len(),
		InsufficientMileage: len(result.Outcomes) - pop.Len(),
		GlobalViolationRate: rates.GlobalViolationRate,
		GlobalCrashRate:     rates.GlobalCrashRate,
		GradeCounts:         GradeDistribution(placements),
		BucketCounts: map[domain.ISSBucket]int{
			domain.BucketInspect:  0,
			domain.BucketOptional: 0,
			domain.BucketPass:     0,
		},
	}

	for _, reason := range domain.ExclusionReasons {
		summary.Exclusions[reason] = 0
	}
	for _, ex := range result.Excluded {
		summary.Exclusions[ex.Reason]++
	}

	ratings := make([]float64, 0, len(rates.Ratings))
	for _, o := range result.Outcomes {
		summary.BucketCounts[o.ISS.Bucket]++
		if o.Score.InsuranceRating != nil {
			ratings = append(ratings, *o.Score.InsuranceRating)
		}
	}
	summary.Ratings = ComputeRatingStats(ratings)

	return summary
}
