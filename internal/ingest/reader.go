package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// ErrEmptyFile is returned by NewReader when there is no header line
var ErrEmptyFile = errors.New("empty file")

// Row is one CSV record addressed by normalized column name
type Row struct {
	columns map[string]int
	fields  []string
}

// Get returns the first non-empty value among keys, trimmed. Keys are
// normalized, so callers may use the header spelling from any extract.
func (r Row) Get(keys ...string) string {
	for _, key := range keys {
		i, ok := r.columns[NormalizeFieldName(key)]
		if !ok || i >= len(r.fields) {
			continue
		}
		if v := strings.TrimSpace(r.fields[i]); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether the row's header carries key
func (r Row) Has(key string) bool {
	_, ok := r.columns[NormalizeFieldName(key)]
	return ok
}

// Reader streams rows from a headed CSV file
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewReader reads the header line. Duplicate normalized names keep the first column.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		key := NormalizeFieldName(name)
		if key == "" {
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return &Reader{csv: cr, columns: columns}, nil
}

// HasColumn reports whether the header carries key
func (r *Reader) HasColumn(key string) bool {
	_, ok := r.columns[NormalizeFieldName(key)]
	return ok
}

// Next returns the next row, io.EOF at the end, or a *csv.ParseError for a
// malformed record that the caller may skip.
func (r *Reader) Next() (Row, error) {
	fields, err := r.csv.Read()
	if err != nil {
		return Row{}, err
	}
	return Row{columns: r.columns, fields: fields}, nil
}
