package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fredduggan/fleetidy/internal/domain"
)

// RankedListSize is how many carriers the top and bottom lists show
const RankedListSize = 10

// maxNameWidth truncates carrier names in ranked lists
const maxNameWidth = 40

// ConsoleFormatter renders a run report for the terminal
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(run *domain.RunResult) ([]byte, error) {
	s := run.Summary
	var sections []string

	sections = append(sections,
		TitleStyle.Render("FRED SCORE RUN "+run.RunID),
		metricLine(
			"As of", run.AsOf.Format(domain.DateLayout),
			"Processed", strconv.Itoa(s.Processed),
			"Kept", strconv.Itoa(s.Kept),
			"Eligible", strconv.Itoa(s.Eligible),
			"Insufficient mileage", strconv.Itoa(s.InsufficientMileage),
		),
	)

	exclusions := make([][]string, 0, len(domain.ExclusionReasons))
	for _, reason := range domain.ExclusionReasons {
		exclusions = append(exclusions, []string{string(reason), strconv.Itoa(s.Exclusions[reason])})
	}
	sections = append(sections,
		SectionStyle.Render("EXCLUSIONS"),
		renderTable([]string{"Reason", "Carriers"}, exclusions, -1))

	sections = append(sections,
		SectionStyle.Render("INSURANCE RATINGS"),
		metricLine(
			"Global violation rate", strconv.FormatFloat(s.GlobalViolationRate, 'f', 4, 64),
			"Global crash rate", strconv.FormatFloat(s.GlobalCrashRate, 'f', 4, 64),
		),
		metricLine(
			"Count", strconv.Itoa(s.Ratings.Count),
			"Mean", formatFloat(s.Ratings.Mean),
			"Median", formatFloat(s.Ratings.Median),
			"P10", formatFloat(s.Ratings.P10),
			"P90", formatFloat(s.Ratings.P90),
			"Min", formatFloat(s.Ratings.Min),
			"Max", formatFloat(s.Ratings.Max),
		),
	)

	grades := make([][]string, 0, len(domain.Grades))
	for _, g := range domain.Grades {
		grades = append(grades, []string{string(g), strconv.Itoa(s.GradeCounts[g])})
	}
	sections = append(sections,
		SectionStyle.Render("GRADE DISTRIBUTION"),
		renderTable([]string{"Grade", "Carriers"}, grades, 0))

	sections = append(sections,
		SectionStyle.Render("ISS BUCKETS"),
		metricLine(
			string(domain.BucketInspect), strconv.Itoa(s.BucketCounts[domain.BucketInspect]),
			string(domain.BucketOptional), strconv.Itoa(s.BucketCounts[domain.BucketOptional]),
			string(domain.BucketPass), strconv.Itoa(s.BucketCounts[domain.BucketPass]),
		),
	)

	ranked := run.Ranked()
	if len(ranked) > 0 {
		top := ranked[:min(RankedListSize, len(ranked))]
		bottom := ranked[max(0, len(ranked)-RankedListSize):]
		sections = append(sections,
			SectionStyle.Render(fmt.Sprintf("TOP %d", len(top))),
			renderTable(rankedHeader, rankedRows(top), 3),
			SectionStyle.Render(fmt.Sprintf("BOTTOM %d", len(bottom))),
			renderTable(rankedHeader, rankedRows(bottom), 3),
		)
	}

	return []byte(lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"), nil
}

var rankedHeader = []string{"Rank", "DOT", "Name", "Grade", "Combined", "Rating"}

func rankedRows(outcomes []domain.CarrierOutcome) [][]string {
	rows := make([][]string, len(outcomes))
	for i, o := range outcomes {
		rows[i] = []string{
			"#" + intPtrString(o.Score.Rank),
			o.Carrier.DOTNumber,
			truncate(o.Carrier.LegalName, maxNameWidth),
			gradeString(o.Score.Grade),
			formatFloat(o.Score.CombinedScore),
			floatPtrString(o.Score.InsuranceRating),
		}
	}
	return rows
}

// renderTable draws a bordered table; gradeCol colors that column by grade, -1 for none
func renderTable(headers []string, rows [][]string, gradeCol int) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if col == gradeCol && row >= 0 && row < len(rows) {
				return gradeStyle(rows[row][col])
			}
			return TableCellStyle
		}).
		String()
}

// metricLine renders label/value pairs on one line
func metricLine(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, MetricLabelStyle.Render(pairs[i]+":")+" "+MetricValueStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
