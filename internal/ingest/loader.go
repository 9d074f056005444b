package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// ErrMissingCensus is returned when the census extract does not exist
var ErrMissingCensus = errors.New("census file not found")

// cancelCheckEvery is how many rows are read between context checks
const cancelCheckEvery = 10000

// Stats summarizes one load
type Stats struct {
	CensusRows  int      `json:"census_rows"`
	Carriers    int      `json:"carriers"`
	Duplicates  int      `json:"duplicates"`
	NoDOT       int      `json:"no_dot"`
	Malformed   int      `json:"malformed"`
	SMSRecords  int      `json:"sms_records"`
	Basic       int      `json:"basic"`
	Crashes     int      `json:"crashes"`
	Inspections int      `json:"inspections"`
	Violations  int      `json:"violations"`
	Missing     []string `json:"missing,omitempty"` // optional files that were absent
}

// Loader reads a data directory into joined carrier data
type Loader struct {
	Settings domain.InputSettings
	// Sample keeps only the first N distinct carriers in census order; 0 keeps all
	Sample int
	logger *slog.Logger
}

// NewLoader creates a loader for the given input settings
func NewLoader(settings domain.InputSettings, sample int) *Loader {
	return &Loader{
		Settings: settings,
		Sample:   sample,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the loader's logger; nil discards
func (l *Loader) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l.logger = logger
}

// Load reads the census, overlays SMS authority flags, and attaches related
// records by DOT number. Rows for DOT numbers outside the census are dropped.
func (l *Loader) Load(ctx context.Context) ([]domain.CarrierData, Stats, error) {
	var stats Stats

	censusPath := l.Settings.Path(l.Settings.Census)
	if _, err := os.Stat(censusPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stats, fmt.Errorf("%w: %s", ErrMissingCensus, censusPath)
		}
		return nil, stats, fmt.Errorf("checking census: %w", err)
	}

	sms, err := l.loadSMS(ctx, &stats)
	if err != nil {
		return nil, stats, err
	}

	carriers, index, err := l.loadCensus(ctx, censusPath, sms, &stats)
	if err != nil {
		return nil, stats, err
	}
	l.logger.Info("loaded census",
		"rows", stats.CensusRows, "carriers", stats.Carriers,
		"duplicates", stats.Duplicates, "no_dot", stats.NoDOT)

	related := []struct {
		name  string
		file  string
		count *int
		add   func(d *domain.CarrierData, row Row) bool
	}{
		{"basic", l.Settings.Basic, &stats.Basic, func(d *domain.CarrierData, row Row) bool {
			if d.Basic != nil {
				return false
			}
			d.Basic = BasicFromRow(row)
			return true
		}},
		{"crashes", l.Settings.Crashes, &stats.Crashes, func(d *domain.CarrierData, row Row) bool {
			d.Crashes = append(d.Crashes, CrashFromRow(row))
			return true
		}},
		{"inspections", l.Settings.Inspections, &stats.Inspections, func(d *domain.CarrierData, row Row) bool {
			d.Inspections = append(d.Inspections, InspectionFromRow(row))
			return true
		}},
		{"violations", l.Settings.Violations, &stats.Violations, func(d *domain.CarrierData, row Row) bool {
			d.Violations = append(d.Violations, ViolationFromRow(row))
			return true
		}},
	}

	for _, r := range related {
		path := l.Settings.Path(r.file)
		if path == "" {
			continue
		}
		found, err := l.forEachRow(ctx, path, &stats, func(row Row) {
			i, ok := index[rowDOT(row)]
			if !ok {
				return
			}
			if r.add(&carriers[i], row) {
				*r.count++
			}
		})
		if err != nil {
			return nil, stats, fmt.Errorf("loading %s: %w", r.name, err)
		}
		if !found {
			stats.Missing = append(stats.Missing, r.name)
			l.logger.Warn("optional file not found", "file", path)
			continue
		}
		l.logger.Info("attached "+r.name, "records", *r.count)
	}

	return carriers, stats, nil
}

func (l *Loader) loadSMS(ctx context.Context, stats *Stats) (map[string]Row, error) {
	path := l.Settings.Path(l.Settings.SMSCensus)
	if path == "" {
		return nil, nil
	}

	sms := make(map[string]Row)
	found, err := l.forEachRow(ctx, path, stats, func(row Row) {
		if dot := rowDOT(row); dot != "" {
			sms[dot] = row
		}
	})
	if err != nil {
		return nil, fmt.Errorf("loading sms census: %w", err)
	}
	if !found {
		stats.Missing = append(stats.Missing, "sms_census")
		l.logger.Warn("optional file not found", "file", path)
		return nil, nil
	}
	stats.SMSRecords = len(sms)
	l.logger.Info("indexed sms census", "records", len(sms))
	return sms, nil
}

func (l *Loader) loadCensus(ctx context.Context, path string, sms map[string]Row, stats *Stats) ([]domain.CarrierData, map[string]int, error) {
	var carriers []domain.CarrierData
	index := make(map[string]int)

	errSampleFull := errors.New("sample full")
	_, err := l.forEachRowUntil(ctx, path, stats, func(row Row) error {
		stats.CensusRows++
		record := CarrierFromRow(row)
		if record.DOTNumber == "" {
			stats.NoDOT++
			return nil
		}
		if _, dup := index[record.DOTNumber]; dup {
			stats.Duplicates++
			return nil
		}
		if smsRow, ok := sms[record.DOTNumber]; ok {
			OverlayAuthority(&record, smsRow)
		}
		index[record.DOTNumber] = len(carriers)
		carriers = append(carriers, domain.CarrierData{Carrier: record})
		if l.Sample > 0 && len(carriers) >= l.Sample {
			return errSampleFull
		}
		return nil
	})
	if err != nil && !errors.Is(err, errSampleFull) {
		return nil, nil, fmt.Errorf("loading census: %w", err)
	}
	if l.Sample > 0 {
		l.logger.Info("sample mode", "limit", l.Sample, "carriers", len(carriers))
	}

	stats.Carriers = len(carriers)
	return carriers, index, nil
}

// forEachRow calls fn for every well-formed row of path. A missing file
// reports found=false with no error.
func (l *Loader) forEachRow(ctx context.Context, path string, stats *Stats, fn func(Row)) (bool, error) {
	return l.forEachRowUntil(ctx, path, stats, func(row Row) error {
		fn(row)
		return nil
	})
}

// forEachRowUntil is forEachRow where fn may stop the scan by returning an error
func (l *Loader) forEachRowUntil(ctx context.Context, path string, stats *Stats, fn func(Row) error) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	reader, err := NewReader(f)
	if errors.Is(err, ErrEmptyFile) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("%s: %w", path, err)
	}

	for n := 0; ; n++ {
		if n%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return true, err
			}
		}

		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			stats.Malformed++
			l.logger.Debug("skipping malformed row", "file", path, "line", parseErr.Line)
			continue
		}
		if err != nil {
			return true, fmt.Errorf("%s: %w", path, err)
		}

		if err := fn(row); err != nil {
			return true, err
		}
	}
}
