package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// Formatter renders a scoring run in one export format
type Formatter interface {
	Name() string
	Format(run *domain.RunResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(run *domain.RunResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(run *domain.RunResult) ([]byte, error) { return f.F(run) }

var formatters = []Formatter{
	JSONFormatter{},
	JSFormatter{},
	CSVFormatter{},
	ConsoleFormatter{},
}

// fileNames are the file names each built-in format is written to
var fileNames = map[string]string{
	"json":    "fred_scores.json",
	"js":      "fred_data.js",
	"csv":     "fred_scores.csv",
	"console": "fred_report.txt",
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, len(formatters))
	for i, f := range formatters {
		names[i] = f.Name()
	}
	return names
}

// FileName returns the file a format is written to
func FileName(format string) string {
	if name, ok := fileNames[format]; ok {
		return name
	}
	return "fred_scores." + format
}

// WriteFormatted renders run with f and writes it into dir, returning the path written
func WriteFormatted(f Formatter, run *domain.RunResult, dir string) (string, error) {
	data, err := f.Format(run)
	if err != nil {
		return "", fmt.Errorf("formatting %s: %w", f.Name(), err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, FileName(f.Name()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
