// Package store persists scored carriers to SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DefaultTable is the table scored carriers are written to
const DefaultTable = "carriers"

var (
	errNotOpen       = errors.New("store not open")
	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Dialect captures the SQL differences between the supported databases
type Dialect struct {
	Name      string
	Driver    string
	FloatType string
	numbered  bool // $1 placeholders instead of ?
}

var (
	SQLite   = Dialect{Name: "sqlite", Driver: "sqlite", FloatType: "REAL"}
	Postgres = Dialect{Name: "postgres", Driver: "postgres", FloatType: "DOUBLE PRECISION", numbered: true}
)

// Placeholder returns the bind marker for the n-th parameter, 1-based
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Store writes runs into one carriers table
type Store struct {
	db      *sql.DB
	dialect Dialect
	table   string
}

// Open connects to dsn and verifies the connection
func Open(ctx context.Context, dialect Dialect, dsn, table string) (*Store, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect.Name, err)
	}
	s, err := New(db, dialect, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialect.Name, err)
	}
	return s, nil
}

// New wraps an open database. An empty table name uses DefaultTable.
func New(db *sql.DB, dialect Dialect, table string) (*Store, error) {
	if db == nil {
		return nil, errNotOpen
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Store{db: db, dialect: dialect, table: table}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// EnsureSchema creates the carriers table and its indexes when missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.schemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema in %s: %w", s.dialect.Name, err)
		}
	}
	return nil
}

func (s *Store) schemaStatements() []string {
	defs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		def := c.name + " " + c.kind.sqlType(s.dialect)
		if c.name == "dot_number" {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", s.table, strings.Join(defs, ",\n\t")),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_state ON %[1]s(physical_state)", s.table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_grade ON %[1]s(fred_score_grade)", s.table),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%[1]s_commodities ON %[1]s(commodities)", s.table),
	}
}

func (s *Store) upsertStatement() string {
	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	updates := make([]string, 0, len(columns)-1)
	for i, c := range columns {
		names[i] = c.name
		marks[i] = s.dialect.Placeholder(i + 1)
		if c.name != "dot_number" {
			updates = append(updates, c.name+" = excluded."+c.name)
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (dot_number) DO UPDATE SET %s",
		s.table, strings.Join(names, ", "), strings.Join(marks, ", "), strings.Join(updates, ", "))
}

// WriteRun upserts every kept carrier of run in one transaction and returns the rows written
func (s *Store) WriteRun(ctx context.Context, run *domain.RunResult) (int, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, s.upsertStatement())
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	meta := runMeta{ID: run.RunID, AsOf: run.AsOf.Format(domain.DateLayout)}
	written := 0
	for _, o := range run.Outcomes {
		args, err := rowArgs(domain.NewExportRecord(o), meta)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to write carrier %s: %w", o.Carrier.DOTNumber, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run %s: %w", run.RunID, err)
	}
	return written, nil
}

// Count returns the number of carriers stored
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count carriers: %w", err)
	}
	return n, nil
}

func rowArgs(r domain.ExportRecord, meta runMeta) ([]any, error) {
	args := make([]any, len(columns))
	for i, c := range columns {
		v, err := c.value(&r, meta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s for carrier %s: %w", c.name, r.DOTNumber, err)
		}
		args[i] = v
	}
	return args, nil
}

// nullable turns a nil pointer into SQL NULL
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func jsonText(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
