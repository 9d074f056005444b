package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/fredduggan/fleetidy/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// KnownFormats are the export formats a run may request
var KnownFormats = []string{"json", "js", "csv", "console"}

var (
	tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	logLevels        = []string{"", "debug", "info", "warn", "warning", "error"}
)

// InputParser handles parsing of run configuration files
type InputParser struct {
	// Getenv resolves environment overrides; nil uses os.Getenv
	Getenv func(string) string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Getenv: os.Getenv}
}

// DefaultConfiguration returns the settings used when no file is given
func DefaultConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Input: domain.InputSettings{
			DataDir:     "fmcsa_data",
			Census:      "census.csv",
			SMSCensus:   "sms_census.csv",
			Basic:       "basic.csv",
			Crashes:     "crashes.csv",
			Inspections: "inspections.csv",
			Violations:  "violations.csv",
		},
		Output: domain.OutputSettings{
			Dir:     ".",
			Formats: []string{"js", "csv", "console"},
		},
		Database: domain.DatabaseSettings{
			PostgresTable: "carriers",
		},
		Logging: domain.LoggingSettings{Level: "info"},
	}
}

// LoadFromFile loads a YAML configuration over the defaults and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration checks a configuration; failures wrap ErrInvalidConfig
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}
	if err := validateRun(&config.Run); err != nil {
		return fmt.Errorf("%w: run: %v", ErrInvalidConfig, err)
	}
	if err := validateInput(&config.Input); err != nil {
		return fmt.Errorf("%w: input: %v", ErrInvalidConfig, err)
	}
	if err := validateOutput(&config.Output); err != nil {
		return fmt.Errorf("%w: output: %v", ErrInvalidConfig, err)
	}
	if err := validateDatabase(&config.Database); err != nil {
		return fmt.Errorf("%w: database: %v", ErrInvalidConfig, err)
	}
	if !slices.Contains(logLevels, strings.ToLower(config.Logging.Level)) {
		return fmt.Errorf("%w: logging: unknown level %q", ErrInvalidConfig, config.Logging.Level)
	}
	return nil
}

func validateRun(run *domain.RunSettings) error {
	if run.AsOf != "" {
		if _, err := time.Parse(domain.DateLayout, run.AsOf); err != nil {
			return fmt.Errorf("as_of must be YYYY-MM-DD: %w", err)
		}
	}
	if run.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if run.SampleSize < 0 {
		return fmt.Errorf("sample_size cannot be negative")
	}
	return nil
}

func validateInput(input *domain.InputSettings) error {
	if strings.TrimSpace(input.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if strings.TrimSpace(input.Census) == "" {
		return fmt.Errorf("census file name is required")
	}
	return nil
}

func validateOutput(output *domain.OutputSettings) error {
	for _, f := range output.Formats {
		if !slices.Contains(KnownFormats, strings.ToLower(f)) {
			return fmt.Errorf("unknown format %q (available: %s)", f, strings.Join(KnownFormats, ", "))
		}
	}
	return nil
}

func validateDatabase(db *domain.DatabaseSettings) error {
	if db.Postgres && !tableNamePattern.MatchString(db.PostgresTable) {
		return fmt.Errorf("postgres_table %q is not a valid identifier", db.PostgresTable)
	}
	return nil
}

// PostgresDSN returns the configured DSN, or one built from PG_HOST, PG_PORT,
// PG_DB, PG_USER and PG_PASS with local defaults.
func (ip *InputParser) PostgresDSN(config *domain.Configuration) string {
	if config.Database.PostgresDSN != "" {
		return config.Database.PostgresDSN
	}

	getenv := ip.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	parts := []string{
		"host=" + env("PG_HOST", "localhost"),
		"port=" + env("PG_PORT", "5432"),
		"dbname=" + env("PG_DB", "fred_scores"),
		"user=" + env("PG_USER", "postgres"),
	}
	if pass := getenv("PG_PASS"); pass != "" {
		parts = append(parts, "password="+quoteDSNValue(pass))
	}
	parts = append(parts, "sslmode=disable")
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes a libpq key/value when it holds spaces or quotes
func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
