package compare

import (
	"fmt"
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats a comparison as a console report
type TableFormatter struct{}

// Format generates a fixed-width table of changes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("FRED SCORE RUN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base:    %s (as of %s)\n", compSet.BaseRunID, compSet.BaseAsOf))
	sb.WriteString(fmt.Sprintf("Current: %s (as of %s)\n", compSet.CurrentRunID, compSet.CurrentAsOf))
	sb.WriteString("\n")

	sb.WriteString("MOVEMENT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, m := range Movements {
		sb.WriteString(fmt.Sprintf("  %-12s %d\n", m, compSet.Counts[m]))
	}
	sb.WriteString("\n")

	sb.WriteString("GRADE SHIFT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, g := range domain.Grades {
		sb.WriteString(fmt.Sprintf("  %-3s %s\n", g, signedInt(compSet.GradeShift[g])))
	}
	sb.WriteString("\n")

	nameWidth := 30
	sb.WriteString(fmt.Sprintf("%-10s %-*s %-11s %5s %5s %7s %8s\n",
		"DOT", nameWidth, "Carrier", "Movement", "Was", "Now", "Rank", "Score"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, c := range compSet.Changes {
		sb.WriteString(fmt.Sprintf("%-10s %-*s %-11s %5s %5s %7s %8s\n",
			c.DOTNumber,
			nameWidth, tf.truncate(c.LegalName, nameWidth),
			c.Movement,
			gradeOrDash(c.BaseGrade),
			gradeOrDash(c.CurrentGrade),
			signedInt(c.RankDelta),
			tf.formatDelta(c.CombinedDelta)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Highlights) > 0 {
		sb.WriteString("\nHIGHLIGHTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, h := range compSet.Highlights {
			sb.WriteString(fmt.Sprintf("* %s\n", h))
		}
	}

	return sb.String()
}

// FormatCompact creates a single-line summary of the movement counts
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(Movements))
	for _, m := range Movements {
		if n := compSet.Counts[m]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", m, n))
		}
	}
	if len(parts) == 0 {
		return "no carriers"
	}
	return strings.Join(parts, " | ")
}

func (tf *TableFormatter) formatDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

// truncate truncates a string to maxLen runes
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func gradeOrDash(g *domain.Grade) string {
	if g == nil {
		return "-"
	}
	return string(*g)
}

func signedInt(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}
