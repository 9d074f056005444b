package output

import "github.com/charmbracelet/lipgloss"

// Report palette
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorMuted   = lipgloss.Color("#626262")
	ColorBorder  = lipgloss.Color("#3C3C3C")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderBottom(true).
			BorderForeground(ColorBorder)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// gradeStyle colors a grade by band
func gradeStyle(g string) lipgloss.Style {
	if g == "" {
		return TableCellStyle
	}
	switch g[0] {
	case 'A', 'B':
		return TableCellStyle.Foreground(ColorSuccess)
	case 'D', 'F':
		return TableCellStyle.Foreground(ColorDanger)
	default:
		return TableCellStyle
	}
}
