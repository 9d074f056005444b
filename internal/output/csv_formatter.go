package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// csvHeader is the scored-carrier export column set
var csvHeader = []string{
	"dot_number", "legal_name", "dba_name",
	"physical_city", "physical_state", "physical_zip",
	"power_units", "drivers", "annual_mileage",
	"experience_score", "safety_score", "crash_score", "inspection_score",
	"combined_score", "fred_score_grade", "rank",
	"iss_score", "iss_bucket",
	"crash_count", "inspection_count", "violation_count",
	"insurance_rating", "risk_flags",
}

// CSVFormatter writes one row per kept carrier in input order
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(run *domain.RunResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, o := range run.Outcomes {
		r := domain.NewExportRecord(o)
		row := []string{
			r.DOTNumber, r.LegalName, r.DBAName,
			r.PhysicalCity, r.PhysicalState, r.PhysicalZip,
			strconv.Itoa(r.PowerUnits), strconv.Itoa(r.Drivers), strconv.FormatInt(r.AnnualMileage, 10),
			formatFloat(r.ExperienceScore), formatFloat(r.SafetyScore), formatFloat(r.CrashScore), formatFloat(r.InspectionScore),
			formatFloat(r.CombinedScore), gradeString(r.Grade), intPtrString(r.Rank),
			strconv.Itoa(r.ISSScore), string(r.ISSBucket),
			strconv.Itoa(r.CrashCount), strconv.Itoa(r.InspectionCount), strconv.Itoa(r.ViolationCount),
			floatPtrString(r.InsuranceRating), r.RiskFlags,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func floatPtrString(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func gradeString(g *domain.Grade) string {
	if g == nil {
		return ""
	}
	return string(*g)
}
