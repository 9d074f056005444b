package calculation

import (
	"testing"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func measure(v float64) *float64 { return &v }

func TestCalculateExperienceScore(t *testing.T) {
	tests := []struct {
		name    string
		addDate string
		want    float64
	}{
		{"under one year", "20250101", 70},
		{"under two years", "20240101", 80},
		{"under three years", "20230101", 90},
		{"under five years", "20210101", 95},
		{"established", "20150101", 100},
		{"trailing time ignored", "20250101 0000", 70},
		{"missing date", "", 100},
		{"unparseable date", "garbage!", 100},
		{"too short", "2025", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.CarrierRecord{AddDate: tt.addDate}
			assert.Equal(t, tt.want, CalculateExperienceScore(c, testAsOf))
		})
	}
}

func TestCalculateSafetyScore(t *testing.T) {
	t.Run("nil record is neutral", func(t *testing.T) {
		score, flags := CalculateSafetyScore(nil)
		assert.Equal(t, 100.0, score)
		assert.Empty(t, flags)
	})

	t.Run("alerts and percentile tiers", func(t *testing.T) {
		basic := &domain.BasicRecord{}
		basic.Alerts[domain.CrashIndicator] = true
		basic.Alerts[domain.UnsafeDriving] = true
		basic.Measures[domain.HoursOfService] = measure(80)
		basic.Measures[domain.DriverFitness] = measure(70)
		basic.Measures[domain.VehicleMaintenance] = measure(64.9)

		score, flags := CalculateSafetyScore(basic)

		assert.Equal(t, 55.0, score)
		assert.Equal(t, []string{"BASIC Alert: Unsafe Driving", "BASIC Alert: Crash Indicator"}, flags)
	})

	t.Run("alert takes precedence over percentile", func(t *testing.T) {
		basic := &domain.BasicRecord{}
		basic.Alerts[domain.HoursOfService] = true
		basic.Measures[domain.HoursOfService] = measure(99)

		score, _ := CalculateSafetyScore(basic)
		assert.Equal(t, 85.0, score)
	})

	t.Run("floors at zero", func(t *testing.T) {
		basic := &domain.BasicRecord{}
		for _, b := range domain.AllBasics {
			basic.Alerts[b] = true
		}
		score, flags := CalculateSafetyScore(basic)
		assert.Equal(t, 0.0, score)
		assert.Len(t, flags, domain.NumBasics)
	})
}

func TestCalculateCrashScore(t *testing.T) {
	tests := []struct {
		name      string
		crashes   []domain.CrashRecord
		wantScore float64
		wantFlags []string
	}{
		{"no crashes", nil, 100, nil},
		{
			name:      "one minor crash flags only",
			crashes:   []domain.CrashRecord{{}},
			wantScore: 100,
			wantFlags: []string{"High crash frequency (1 crashes)"},
		},
		{
			name: "mixed severity",
			crashes: []domain.CrashRecord{
				{Fatalities: 1},
				{Injuries: 2},
				{HazmatReleased: true},
			},
			wantScore: 45,
			wantFlags: []string{
				"FATAL crashes (1 fatalities)",
				"Multiple injury crashes (2 injuries)",
				"Hazmat releases (1)",
				"High crash frequency (3 crashes)",
			},
		},
		{
			name: "caps and floor",
			crashes: []domain.CrashRecord{
				{Fatalities: 3, Injuries: 10, HazmatReleased: true},
				{HazmatReleased: true},
				{HazmatReleased: true},
				{},
				{},
			},
			wantScore: 0,
			wantFlags: []string{
				"FATAL crashes (3 fatalities)",
				"Multiple injury crashes (10 injuries)",
				"Hazmat releases (3)",
				"High crash frequency (5 crashes)",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, flags := CalculateCrashScore(tt.crashes)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

func inspections(total, oos int) []domain.InspectionRecord {
	out := make([]domain.InspectionRecord, total)
	for i := 0; i < oos; i++ {
		out[i].OutOfService = true
	}
	return out
}

func violations(category string, n int) []domain.ViolationRecord {
	out := make([]domain.ViolationRecord, n)
	for i := range out {
		out[i].BasicDesc = category
	}
	return out
}

func TestCalculateInspectionScore(t *testing.T) {
	tests := []struct {
		name        string
		inspections []domain.InspectionRecord
		violations  []domain.ViolationRecord
		wantScore   float64
		wantFlags   []string
	}{
		{"no inspections", nil, violations("Vehicle Maint.", 12), 100, nil},
		{"fifty percent", inspections(10, 5), nil, 70, []string{"High OOS rate (50.0%)"}},
		{"thirty percent", inspections(10, 3), nil, 80, []string{"Elevated OOS rate (30.0%)"}},
		{"twenty percent deducts silently", inspections(10, 2), nil, 90, nil},
		{"ten percent", inspections(10, 1), nil, 100, nil},
		{"one in three", inspections(3, 1), nil, 80, []string{"Elevated OOS rate (33.3%)"}},
		{
			name:        "pattern flags are informational",
			inspections: inspections(4, 0),
			violations: append(append(append(
				violations("Vehicle Maint.", 10),
				violations("HOS Compliance", 9)...),
				violations("", 11)...),
				violations("HOS Compliance", 1)...),
			wantScore: 100,
			wantFlags: []string{
				"Pattern: Vehicle Maint. (10 violations)",
				"Pattern: HOS Compliance (10 violations)",
				"Pattern: Unknown (11 violations)",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, flags := CalculateInspectionScore(tt.inspections, tt.violations)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantFlags, flags)
		})
	}
}

func TestCombinedScore(t *testing.T) {
	assert.Equal(t, 100.0, CombinedScore(100, 100, 100, 100))
	assert.Equal(t, 0.0, CombinedScore(0, 0, 0, 0))
	assert.Equal(t, 82.5, CombinedScore(100, 70, 90, 80))

	ties := []struct {
		name                                  string
		experience, safety, crash, inspection float64
		want                                  float64
	}{
		{"mixed components", 70, 55, 45, 70, 57.2},
		{"experience tier 95", 95, 100, 100, 100, 99.2},
		{"safety 85", 100, 85, 100, 100, 94.8},
	}
	for _, tt := range ties {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombinedScore(tt.experience, tt.safety, tt.crash, tt.inspection))
		})
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.2, roundTo(0.25, 1))
	assert.Equal(t, 0.3, roundTo(0.35, 1), "0.35 is stored just below the tie")
	assert.Equal(t, 2.5, roundTo(2.45, 1), "2.45 is stored just above the tie")
	assert.Equal(t, 29.23, roundTo(29.234, 2))
	assert.Equal(t, -1.2, roundTo(-1.25, 1))
}

func TestScoreCarrier(t *testing.T) {
	basic := &domain.BasicRecord{}
	basic.Alerts[domain.HoursOfService] = true

	data := &domain.CarrierData{
		Carrier: domain.CarrierRecord{
			DOTNumber:     "1",
			AddDate:       "20240101",
			MCS150Mileage: 0,
			TotalMileage:  150000,
		},
		Basic:       basic,
		Crashes:     []domain.CrashRecord{{Injuries: 1}},
		Inspections: inspections(2, 1),
		Violations:  violations("Unsafe Driving", 10),
	}

	result := ScoreCarrier(data, testAsOf)

	assert.Equal(t, 80.0, result.ExperienceScore)
	assert.Equal(t, 85.0, result.SafetyScore)
	assert.Equal(t, 95.0, result.CrashScore)
	assert.Equal(t, 70.0, result.InspectionScore)
	assert.Equal(t, CombinedScore(80, 85, 95, 70), result.CombinedScore)
	assert.Equal(t, []string{
		"BASIC Alert: Hours-of-Service",
		"Multiple injury crashes (1 injuries)",
		"High crash frequency (1 crashes)",
		"High OOS rate (50.0%)",
		"Pattern: Unsafe Driving (10 violations)",
	}, result.RiskFlags)
	assert.Equal(t, int64(150000), result.AnnualMileage)
	assert.True(t, result.Eligible)
	assert.Equal(t, 1, result.CrashCount)
	assert.Equal(t, 2, result.InspectionCount)
	assert.Equal(t, 10, result.ViolationCount)
	assert.Nil(t, result.Rank)
	assert.Nil(t, result.Grade)
	assert.Nil(t, result.InsuranceRating)
}

func TestScoreCarrier_NoAssociatedDataIsNeutral(t *testing.T) {
	data := &domain.CarrierData{Carrier: domain.CarrierRecord{DOTNumber: "9", MCS150Mileage: 99999}}

	result := ScoreCarrier(data, testAsOf)

	assert.Equal(t, 100.0, result.CombinedScore)
	assert.Empty(t, result.RiskFlags)
	assert.False(t, result.Eligible)
	require.NotNil(t, result.Trends.Violations)
	assert.Empty(t, result.Trends.Inspections)
}

func TestScoreCarrier_ComponentsStayInRange(t *testing.T) {
	for n := 0; n < 30; n++ {
		basic := &domain.BasicRecord{}
		for i, b := range domain.AllBasics {
			basic.Alerts[b] = (n+i)%3 == 0
			basic.Measures[b] = measure(float64((n * 13 * (i + 1)) % 101))
		}
		crashes := make([]domain.CrashRecord, n%7)
		for i := range crashes {
			crashes[i] = domain.CrashRecord{Fatalities: n % 3, Injuries: n % 5, HazmatReleased: n%2 == 0}
		}
		data := &domain.CarrierData{
			Carrier:     domain.CarrierRecord{AddDate: "20250301"},
			Basic:       basic,
			Crashes:     crashes,
			Inspections: inspections(n+1, n/2),
			Violations:  violations("Driver Fitness", n),
		}

		r := ScoreCarrier(data, testAsOf)
		for _, s := range []float64{r.ExperienceScore, r.SafetyScore, r.CrashScore, r.InspectionScore, r.CombinedScore} {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}
		assert.Equal(t, CombinedScore(r.ExperienceScore, r.SafetyScore, r.CrashScore, r.InspectionScore), r.CombinedScore)
	}
}
