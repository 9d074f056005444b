// Package metrics records run statistics in a Prometheus registry that can be
// written as a node-exporter textfile after each batch run.
package metrics

import (
	"fmt"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/fredduggan/fleetidy/internal/ingest"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fleetidy"

// RatingBuckets are the insurance-rating histogram bounds
var RatingBuckets = []float64{1, 2, 5, 10, 25, 50, 100, 200, 500}

// Recorder holds one run's metrics
type Recorder struct {
	registry *prometheus.Registry

	censusRows   prometheus.Gauge
	loadSkipped  *prometheus.GaugeVec
	processed    prometheus.Counter
	excluded     *prometheus.CounterVec
	eligible     prometheus.Gauge
	insufficient prometheus.Gauge
	grades       *prometheus.GaugeVec
	buckets      *prometheus.GaugeVec
	ratings      prometheus.Histogram
	phase        *prometheus.GaugeVec
	lastRun      prometheus.Gauge
}

// NewRecorder creates a recorder backed by its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		censusRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "census_rows",
			Help: "Census rows read by the last load.",
		}),
		loadSkipped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "census_rows_skipped",
			Help: "Census rows skipped by the last load, by reason.",
		}, []string{"reason"}),
		processed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "carriers_processed_total",
			Help: "Carriers passed to the scoring engine.",
		}),
		excluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "carriers_excluded_total",
			Help: "Carriers removed by the eligibility classifier, by reason.",
		}, []string{"reason"}),
		eligible: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "carriers_eligible",
			Help: "Kept carriers at or above the mileage threshold.",
		}),
		insufficient: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "carriers_insufficient_mileage",
			Help: "Kept carriers below the mileage threshold.",
		}),
		grades: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "carriers_graded",
			Help: "Eligible carriers by letter grade.",
		}, []string{"grade"}),
		buckets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "iss_bucket_carriers",
			Help: "Kept carriers by ISS bucket.",
		}, []string{"bucket"}),
		ratings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "insurance_rating",
			Help:    "Insurance ratings of eligible carriers.",
			Buckets: RatingBuckets,
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "phase_duration_seconds",
			Help: "Wall time of each run phase.",
		}, []string{"phase"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}

	r.registry.MustRegister(
		r.censusRows, r.loadSkipped,
		r.processed, r.excluded, r.eligible, r.insufficient,
		r.grades, r.buckets, r.ratings, r.phase, r.lastRun,
	)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveLoad records ingest statistics
func (r *Recorder) ObserveLoad(stats ingest.Stats) {
	r.censusRows.Set(float64(stats.CensusRows))
	r.loadSkipped.WithLabelValues("duplicate").Set(float64(stats.Duplicates))
	r.loadSkipped.WithLabelValues("no_dot").Set(float64(stats.NoDOT))
	r.loadSkipped.WithLabelValues("malformed").Set(float64(stats.Malformed))
}

// ObserveRun records a completed run
func (r *Recorder) ObserveRun(run *domain.RunResult) {
	s := run.Summary
	r.processed.Add(float64(s.Processed))
	for _, reason := range domain.ExclusionReasons {
		r.excluded.WithLabelValues(string(reason)).Add(float64(s.Exclusions[reason]))
	}
	r.eligible.Set(float64(s.Eligible))
	r.insufficient.Set(float64(s.InsufficientMileage))

	for _, g := range domain.Grades {
		r.grades.WithLabelValues(string(g)).Set(float64(s.GradeCounts[g]))
	}
	for _, b := range []domain.ISSBucket{domain.BucketInspect, domain.BucketOptional, domain.BucketPass} {
		r.buckets.WithLabelValues(string(b)).Set(float64(s.BucketCounts[b]))
	}
	for _, o := range run.Outcomes {
		if o.Score.InsuranceRating != nil {
			r.ratings.Observe(*o.Score.InsuranceRating)
		}
	}

	r.phase.WithLabelValues("per_carrier").Set(run.Timings.PerCarrier.Seconds())
	r.phase.WithLabelValues("population").Set(run.Timings.Population.Seconds())
	if !run.FinishedAt.IsZero() {
		r.lastRun.Set(float64(run.FinishedAt.Unix()))
	}
}

// WriteTextfile writes the registry in text exposition format, atomically replacing path
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
