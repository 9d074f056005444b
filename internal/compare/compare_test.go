package compare

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcome(dot string, grade string, rank int, combined float64, bucket domain.ISSBucket) domain.CarrierOutcome {
	o := domain.CarrierOutcome{
		Carrier: &domain.CarrierRecord{DOTNumber: dot, LegalName: "Carrier " + dot},
		Score:   domain.ScoreResult{CombinedScore: combined},
		ISS:     domain.ISSResult{Bucket: bucket},
	}
	if grade != "" {
		g := domain.Grade(grade)
		r := rank
		o.Score.Grade = &g
		o.Score.Rank = &r
	}
	return o
}

func baseRun() *domain.RunResult {
	return &domain.RunResult{
		RunID: "base",
		AsOf:  time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Outcomes: []domain.CarrierOutcome{
			outcome("100", "B", 2, 70, domain.BucketPass),
			outcome("200", "A", 1, 80, domain.BucketPass),
			outcome("300", "", 0, 50, domain.BucketOptional),
			outcome("400", "C", 3, 60, domain.BucketInspect),
			outcome("500", "D", 4, 40, domain.BucketInspect),
		},
		Summary: domain.RunSummary{GradeCounts: map[domain.Grade]int{"A": 1, "B": 1, "C": 1, "D": 1}},
	}
}

func currentRun() *domain.RunResult {
	return &domain.RunResult{
		RunID: "current",
		AsOf:  time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Outcomes: []domain.CarrierOutcome{
			outcome("100", "A", 1, 82.5, domain.BucketPass),
			outcome("200", "C", 3, 61, domain.BucketOptional),
			outcome("300", "B", 2, 71, domain.BucketOptional),
			outcome("400", "", 0, 58, domain.BucketInspect),
			outcome("600", "D", 4, 42, domain.BucketInspect),
		},
		Summary: domain.RunSummary{GradeCounts: map[domain.Grade]int{"A": 1, "B": 1, "C": 1, "D": 1}},
	}
}

func byDOT(cs *ComparisonSet) map[string]CarrierChange {
	m := make(map[string]CarrierChange, len(cs.Changes))
	for _, c := range cs.Changes {
		m[c.DOTNumber] = c
	}
	return m
}

func TestCompare(t *testing.T) {
	cs, err := Compare(baseRun(), currentRun())
	require.NoError(t, err)

	assert.Equal(t, "base", cs.BaseRunID)
	assert.Equal(t, "2025-06-30", cs.CurrentAsOf)

	dots := make([]string, len(cs.Changes))
	for i, c := range cs.Changes {
		dots[i] = c.DOTNumber
	}
	assert.Equal(t, []string{"100", "200", "300", "400", "600", "500"}, dots,
		"Current order first, then carriers only in the base run")

	changes := byDOT(cs)
	up := changes["100"]
	assert.Equal(t, MovementUpgraded, up.Movement)
	assert.Equal(t, 3, up.GradeSteps, "B to A is three steps")
	assert.Equal(t, 1, up.RankDelta)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(up.CombinedDelta))

	down := changes["200"]
	assert.Equal(t, MovementDowngraded, down.Movement)
	assert.Equal(t, -6, down.GradeSteps)
	assert.Equal(t, -2, down.RankDelta)
	assert.Equal(t, domain.BucketOptional, down.CurrentBucket)

	assert.Equal(t, MovementGraded, changes["300"].Movement)
	assert.Equal(t, MovementUngraded, changes["400"].Movement)
	assert.Equal(t, MovementNew, changes["600"].Movement)
	assert.Nil(t, changes["600"].BaseGrade)

	dropped := changes["500"]
	assert.Equal(t, MovementDropped, dropped.Movement)
	assert.True(t, decimal.NewFromInt(-40).Equal(dropped.CombinedDelta))

	assert.Equal(t, map[Movement]int{
		MovementUpgraded: 1, MovementDowngraded: 1, MovementGraded: 1,
		MovementUngraded: 1, MovementNew: 1, MovementDropped: 1,
	}, cs.Counts)
	assert.Equal(t, 0, cs.GradeShift["A"])

	assert.Contains(t, cs.Highlights, "1 carriers upgraded, 1 downgraded")
	assert.Contains(t, cs.Highlights, "Largest gain: DOT 100 rose from B to A")
	assert.Contains(t, cs.Highlights, "Largest drop: DOT 200 fell from A to C")
}

func TestCompare_Unchanged(t *testing.T) {
	cs, err := Compare(baseRun(), baseRun())
	require.NoError(t, err)

	assert.Equal(t, 5, cs.Counts[MovementUnchanged])
	for _, c := range cs.Changes {
		assert.False(t, c.Changed(), c.DOTNumber)
	}
	assert.Empty(t, cs.Highlights)
	assert.Empty(t, cs.Filter(CarrierChange.Changed).Changes)
}

func TestCompare_NilRun(t *testing.T) {
	_, err := Compare(nil, currentRun())
	assert.Error(t, err)
}

func TestLoadRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fred_scores.json")
	data, err := json.Marshal(currentRun())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	run, err := LoadRun(path)
	require.NoError(t, err)
	assert.Equal(t, "current", run.RunID)
	require.Len(t, run.Outcomes, 5)
	assert.Equal(t, domain.Grade("A"), *run.Outcomes[0].Score.Grade)

	_, err = LoadRun(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = LoadRun(path)
	assert.Error(t, err)
}

func TestFormatters(t *testing.T) {
	cs, err := Compare(baseRun(), currentRun())
	require.NoError(t, err)

	t.Run("table", func(t *testing.T) {
		tf := &TableFormatter{}
		out := tf.Format(cs)
		assert.Contains(t, out, "FRED SCORE RUN COMPARISON")
		assert.Contains(t, out, "Base:    base (as of 2025-03-31)")
		assert.Contains(t, out, "HIGHLIGHTS")
		assert.Contains(t, out, "+12.50")
		assert.Equal(t, "upgraded: 1 | downgraded: 1 | graded: 1 | ungraded: 1 | new: 1 | dropped: 1", tf.FormatCompact(cs))
		assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	})

	t.Run("csv", func(t *testing.T) {
		out, err := (&CSVFormatter{}).Format(cs)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 7)
		assert.True(t, strings.HasPrefix(lines[0], "DOT Number,Legal Name,Movement"))
		assert.Equal(t, "100,Carrier 100,upgraded,B,A,3,2,1,1,70.00,12.50,Pass,Pass", lines[1])
		assert.Equal(t, "600,Carrier 600,new,,D,0,,4,0,0.00,42.00,,Inspect", lines[5])
	})

	t.Run("json", func(t *testing.T) {
		out, err := (&JSONFormatter{Pretty: true}).Format(cs)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "current", decoded["currentRunId"])
		assert.Len(t, decoded["changes"], 6)
		assert.True(t, strings.HasSuffix(out, "}\n"))
	})

	t.Run("json lines", func(t *testing.T) {
		out, err := (&JSONFormatter{Lines: true}).Format(cs)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		require.Len(t, lines, len(cs.Changes))
		for i, line := range lines {
			var c CarrierChange
			require.NoError(t, json.Unmarshal([]byte(line), &c), line)
			assert.Equal(t, cs.Changes[i].DOTNumber, c.DOTNumber)
			assert.Equal(t, cs.Changes[i].Movement, c.Movement)
		}
	})
}

func TestJSONFormatter_KeepsLegalNamesReadable(t *testing.T) {
	cs := &ComparisonSet{Changes: []CarrierChange{{DOTNumber: "1", LegalName: "SMITH & SONS <EXPRESS>", Movement: MovementNew}}}

	for _, jf := range []*JSONFormatter{{}, {Pretty: true}, {Lines: true}} {
		out, err := jf.Format(cs)
		require.NoError(t, err)
		assert.Contains(t, out, "SMITH & SONS <EXPRESS>")
	}

	out, err := (&JSONFormatter{Lines: true}).Format(&ComparisonSet{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
