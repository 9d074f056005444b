package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// CSVFormatter formats a comparison as one CSV row per carrier
type CSVFormatter struct{}

// Format generates CSV output for a comparison
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"DOT Number",
		"Legal Name",
		"Movement",
		"Base Grade",
		"Current Grade",
		"Grade Steps",
		"Base Rank",
		"Current Rank",
		"Rank Delta",
		"Base Combined",
		"Combined Delta",
		"Base ISS Bucket",
		"Current ISS Bucket",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, c := range compSet.Changes {
		if err := writer.Write(cf.formatRow(c)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(c CarrierChange) []string {
	return []string{
		c.DOTNumber,
		c.LegalName,
		string(c.Movement),
		gradeText(c.BaseGrade),
		gradeText(c.CurrentGrade),
		strconv.Itoa(c.GradeSteps),
		rankText(c.BaseRank),
		rankText(c.CurrentRank),
		strconv.Itoa(c.RankDelta),
		c.BaseCombined.StringFixed(2),
		c.CombinedDelta.StringFixed(2),
		string(c.BaseBucket),
		string(c.CurrentBucket),
	}
}

func gradeText(g *domain.Grade) string {
	if g == nil {
		return ""
	}
	return string(*g)
}

func rankText(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
