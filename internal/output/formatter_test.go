package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fredduggan/fleetidy/internal/config"
	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func buildTestRun() *domain.RunResult {
	group := 5
	return &domain.RunResult{
		RunID:      "run-1",
		AsOf:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
		Outcomes: []domain.CarrierOutcome{
			{
				Carrier: &domain.CarrierRecord{
					DOTNumber:       "100",
					LegalName:       "Alpha Freight, Inc.",
					PowerUnits:      4,
					PhysicalAddress: domain.Address{City: "Austin", State: "TX"},
				},
				Score: domain.ScoreResult{
					ExperienceScore: 100, SafetyScore: 70, CrashScore: 90, InspectionScore: 80,
					CombinedScore:   82.5,
					RiskFlags:       []string{"HOS Alert", "Recent crash"},
					AnnualMileage:   150000,
					Eligible:        true,
					Rank:            ptr(1),
					Grade:           ptr(domain.Grade("A+")),
					InsuranceRating: ptr(1.0),
				},
				ISS: domain.ISSResult{Score: 80, Bucket: domain.BucketInspect, Source: domain.SourceSafety, Group: &group},
			},
			{
				Carrier: &domain.CarrierRecord{DOTNumber: "200", LegalName: "Beta Hauling"},
				Score: domain.ScoreResult{
					CombinedScore: 40,
					AnnualMileage: 5000,
				},
				ISS: domain.ISSResult{Score: 62, Bucket: domain.BucketOptional, Source: domain.SourceInsufficient, Case: "D4"},
			},
		},
		Excluded: []domain.Exclusion{{DOTNumber: "300", Reason: domain.ReasonInactiveStatus}},
		Summary: domain.RunSummary{
			Processed:           3,
			Kept:                2,
			Exclusions:          map[domain.ExclusionReason]int{domain.ReasonInactiveStatus: 1},
			Eligible:            1,
			InsufficientMileage: 1,
			Ratings:             domain.RatingStats{Count: 1, Mean: 1, Median: 1, P10: 1, P90: 1, Min: 1, Max: 1},
			GradeCounts:         map[domain.Grade]int{"A+": 1},
			BucketCounts:        map[domain.ISSBucket]int{domain.BucketInspect: 1, domain.BucketOptional: 1},
		},
	}
}

func TestFormatterFunc(t *testing.T) {
	called := false
	formatter := FormatterFunc{
		ID: "test-formatter",
		F: func(run *domain.RunResult) ([]byte, error) {
			called = true
			return []byte(run.RunID), nil
		},
	}

	out, err := formatter.Format(buildTestRun())

	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, "test-formatter", formatter.Name())
	assert.Equal(t, []byte("run-1"), out)
}

func TestRegistryMatchesConfiguredFormats(t *testing.T) {
	names := AvailableFormatterNames()
	slices.Sort(names)
	known := slices.Clone(config.KnownFormats)
	slices.Sort(known)

	assert.Equal(t, known, names, "Every format the configuration accepts must have a formatter")
}

func TestGetFormatterByName(t *testing.T) {
	formatter := GetFormatterByName(" CSV ")
	require.NotNil(t, formatter)
	assert.Equal(t, "csv", formatter.Name())

	assert.Nil(t, GetFormatterByName("html"), "Should return nil for unknown names")
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFormatted(JSFormatter{}, buildTestRun(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fred_data.js"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "// FRED Score Data - Generated 2025-06-30T12:00:00\n"))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	formatter := FormatterFunc{
		ID: "broken",
		F: func(*domain.RunResult) ([]byte, error) {
			return nil, fmt.Errorf("formatter error")
		},
	}

	path, err := WriteFormatted(formatter, buildTestRun(), t.TempDir())

	assert.Error(t, err)
	assert.Empty(t, path)
	assert.Contains(t, err.Error(), "formatter error")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestRun())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Len(t, decoded["carriers"], 2)
	assert.Contains(t, decoded, "summary")
}

func TestJSFormatter(t *testing.T) {
	out, err := JSFormatter{}.Format(buildTestRun())
	require.NoError(t, err)

	content := string(out)
	require.True(t, strings.HasSuffix(content, ";\n"))
	_, body, ok := strings.Cut(content, "const FRED_DATA = ")
	require.True(t, ok)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSuffix(body, ";\n")), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "100", records[0]["dot_number"])
	assert.Equal(t, "A+", records[0]["fred_score_grade"])
	assert.Equal(t, "HOS Alert; Recent crash", records[0]["risk_flags"])
	assert.Nil(t, records[1]["rank"], "Ungraded carriers export a null rank")
	assert.Equal(t, "D4", records[1]["iss_case"])
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestRun())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Len(t, csvHeader, 23)

	assert.Equal(t, []string{
		"100", "Alpha Freight, Inc.", "",
		"Austin", "TX", "",
		"4", "0", "150000",
		"100", "70", "90", "80",
		"82.5", "A+", "1",
		"80", "Inspect",
		"0", "0", "0",
		"1", "HOS Alert; Recent crash",
	}, rows[1])
	assert.Equal(t, "", rows[2][14], "No grade below the mileage threshold")
	assert.Equal(t, "", rows[2][15], "No rank below the mileage threshold")
	assert.Equal(t, "", rows[2][21], "No insurance rating below the mileage threshold")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestRun())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "FRED SCORE RUN run-1")
	assert.Contains(t, content, "2025-06-30")
	assert.Contains(t, content, "inactive_status")
	assert.Contains(t, content, "GRADE DISTRIBUTION")
	assert.Contains(t, content, "TOP 1")
	assert.Contains(t, content, "BOTTOM 1")
	assert.Contains(t, content, "Alpha Freight, Inc.")
	assert.NotContains(t, content, "Beta Hauling", "Ungraded carriers are not ranked")
}

func TestConsoleFormatter_EmptyRun(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(&domain.RunResult{RunID: "empty"})
	require.NoError(t, err)

	assert.Contains(t, string(out), "FRED SCORE RUN empty")
	assert.NotContains(t, string(out), "TOP")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 40))
	assert.Equal(t, strings.Repeat("é", 40), truncate(strings.Repeat("é", 45), 40))
}
