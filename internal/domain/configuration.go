package domain

import (
	"path/filepath"
	"time"
)

// RunSettings controls a single scoring run
type RunSettings struct {
	AsOf       string `yaml:"as_of" json:"as_of"` // YYYY-MM-DD, empty means today
	Workers    int    `yaml:"workers" json:"workers"`
	SampleSize int    `yaml:"sample_size" json:"sample_size"`
}

// ISSSettings configures the ISS estimator
type ISSSettings struct {
	Seed *int64 `yaml:"seed,omitempty" json:"seed,omitempty"` // nil or 0 derives a seed per DOT number
}

// InputSettings names the data directory and its files
type InputSettings struct {
	DataDir     string `yaml:"data_dir" json:"data_dir"`
	Census      string `yaml:"census" json:"census"`
	SMSCensus   string `yaml:"sms_census" json:"sms_census"`
	Basic       string `yaml:"basic" json:"basic"`
	Crashes     string `yaml:"crashes" json:"crashes"`
	Inspections string `yaml:"inspections" json:"inspections"`
	Violations  string `yaml:"violations" json:"violations"`
}

// OutputSettings controls file exports
type OutputSettings struct {
	Dir     string   `yaml:"dir" json:"dir"`
	Formats []string `yaml:"formats" json:"formats"`
}

// DatabaseSettings controls the optional SQL sinks
type DatabaseSettings struct {
	SQLitePath    string `yaml:"sqlite_path" json:"sqlite_path"`
	Postgres      bool   `yaml:"postgres" json:"postgres"`
	PostgresDSN   string `yaml:"postgres_dsn" json:"postgres_dsn"`
	PostgresTable string `yaml:"postgres_table" json:"postgres_table"`
}

// MetricsSettings controls the Prometheus textfile
type MetricsSettings struct {
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"`
}

// LoggingSettings controls log verbosity
type LoggingSettings struct {
	Level string `yaml:"level" json:"level"`
}

// Configuration represents the complete run configuration
type Configuration struct {
	Run      RunSettings      `yaml:"run" json:"run"`
	ISS      ISSSettings      `yaml:"iss" json:"iss"`
	Input    InputSettings    `yaml:"input" json:"input"`
	Output   OutputSettings   `yaml:"output" json:"output"`
	Database DatabaseSettings `yaml:"database" json:"database"`
	Metrics  MetricsSettings  `yaml:"metrics" json:"metrics"`
	Logging  LoggingSettings  `yaml:"logging" json:"logging"`
}

// DateLayout is the layout of configured dates
const DateLayout = "2006-01-02"

// AsOfDate parses the configured as-of date, falling back to now
func (c *Configuration) AsOfDate(now time.Time) (time.Time, error) {
	if c.Run.AsOf == "" {
		return now, nil
	}
	return time.Parse(DateLayout, c.Run.AsOf)
}

// Path joins a configured file name onto the data directory. Absolute names are kept.
func (s InputSettings) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.DataDir, name)
}
