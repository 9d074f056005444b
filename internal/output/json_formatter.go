package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// JSONFormatter writes the complete run, summary included
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(run *domain.RunResult) ([]byte, error) {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run: %w", err)
	}
	return append(data, '\n'), nil
}

// JSFormatter writes the flat carrier records as a browser script defining FRED_DATA
type JSFormatter struct{}

func (j JSFormatter) Name() string { return "js" }

func (j JSFormatter) Format(run *domain.RunResult) ([]byte, error) {
	records := make([]domain.ExportRecord, len(run.Outcomes))
	for i, o := range run.Outcomes {
		records[i] = domain.NewExportRecord(o)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// FRED Score Data - Generated %s\n", run.FinishedAt.Format(isoLayout))
	buf.WriteString("const FRED_DATA = ")
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

const isoLayout = "2006-01-02T15:04:05"
