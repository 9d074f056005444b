package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fredduggan/fleetidy/internal/calculation"
	"github.com/fredduggan/fleetidy/internal/config"
	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/fredduggan/fleetidy/internal/ingest"
	"github.com/fredduggan/fleetidy/internal/iss"
	"github.com/fredduggan/fleetidy/internal/logging"
	"github.com/fredduggan/fleetidy/internal/metrics"
	"github.com/fredduggan/fleetidy/internal/output"
	"github.com/fredduggan/fleetidy/internal/store"
	"github.com/spf13/cobra"
)

// stdoutDir sends a single format to stdout instead of a file
const stdoutDir = "-"

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every carrier in a data directory",
		Long: `Load the census and related extracts, score and grade every eligible carrier,
and write the requested exports.

Examples:
  fleetidy score --data-dir fmcsa_data --out build
  fleetidy score --config fleetidy.yaml --sample 1000 --format console --out -
  fleetidy score --sqlite fred_scores.db --postgres --metrics-file /var/lib/node_exporter/fleetidy.prom`,
		Args: cobra.NoArgs,
		RunE: runScore,
	}

	f := cmd.Flags()
	f.String("config", "", "YAML run configuration")
	f.String("data-dir", "", "Directory holding the FMCSA CSV extracts")
	f.String("out", "", `Output directory, or "-" for stdout with a single format`)
	f.StringSlice("format", nil, "Export formats ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	f.Int("sample", 0, "Score only the first N carriers (0 = all)")
	f.Int64("seed", 0, "Fixed ISS seed for every carrier (default derives one per DOT number)")
	f.Int("workers", 0, "Per-carrier workers (0 = GOMAXPROCS)")
	f.String("as-of", "", "Reference date YYYY-MM-DD (default today)")
	f.String("sqlite", "", "Also write carriers to this SQLite database")
	f.Bool("postgres", false, "Also write carriers to PostgreSQL (PG_HOST, PG_PORT, PG_DB, PG_USER, PG_PASS)")
	f.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	return cmd
}

// loadConfiguration reads --config (or the defaults) and applies flag overrides
func loadConfiguration(cmd *cobra.Command, parser *config.InputParser) (*domain.Configuration, error) {
	flags := cmd.Flags()

	cfg := config.DefaultConfiguration()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := parser.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("data-dir") {
		cfg.Input.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("out") {
		cfg.Output.Dir, _ = flags.GetString("out")
	}
	if flags.Changed("format") {
		cfg.Output.Formats, _ = flags.GetStringSlice("format")
	}
	if flags.Changed("sample") {
		cfg.Run.SampleSize, _ = flags.GetInt("sample")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		cfg.ISS.Seed = &seed
	}
	if flags.Changed("workers") {
		cfg.Run.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("as-of") {
		cfg.Run.AsOf, _ = flags.GetString("as-of")
	}
	if flags.Changed("sqlite") {
		cfg.Database.SQLitePath, _ = flags.GetString("sqlite")
	}
	if flags.Changed("postgres") {
		cfg.Database.Postgres, _ = flags.GetBool("postgres")
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.TextfilePath, _ = flags.GetString("metrics-file")
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	if cfg.Output.Dir == stdoutDir && len(cfg.Output.Formats) != 1 {
		return nil, fmt.Errorf("%w: --out - needs exactly one format, got %d", config.ErrInvalidConfig, len(cfg.Output.Formats))
	}
	return cfg, nil
}

// today returns the current UTC date at midnight
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	parser := config.NewInputParser()

	cfg, err := loadConfiguration(cmd, parser)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level)

	asOf, err := cfg.AsOfDate(today())
	if err != nil {
		return fmt.Errorf("invalid as-of date: %w", err)
	}

	loader := ingest.NewLoader(cfg.Input, cfg.Run.SampleSize)
	loader.SetLogger(logger.WithGroup("ingest"))
	carriers, stats, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	engine := calculation.NewEngine(asOf)
	engine.Workers = cfg.Run.Workers
	engine.ISS = &iss.Estimator{Seed: cfg.ISS.Seed}
	engine.SetLogger(logging.NewEngineLogger(logger))

	run, err := engine.Run(ctx, carriers)
	if err != nil {
		return err
	}

	if err := writeExports(cmd, cfg, run, logger); err != nil {
		return err
	}
	if err := writeDatabases(ctx, cfg, parser, run, logger); err != nil {
		return err
	}

	if path := cfg.Metrics.TextfilePath; path != "" {
		rec := metrics.NewRecorder()
		rec.ObserveLoad(stats)
		rec.ObserveRun(run)
		if err := rec.WriteTextfile(path); err != nil {
			return err
		}
		logger.Info("wrote metrics", "path", path)
	}

	logRanked(logger.WithGroup("ranked"), run)
	return nil
}

func writeExports(cmd *cobra.Command, cfg *domain.Configuration, run *domain.RunResult, logger *slog.Logger) error {
	for _, name := range cfg.Output.Formats {
		f := output.GetFormatterByName(name)
		if f == nil {
			return fmt.Errorf("unknown output format %q", name)
		}

		if cfg.Output.Dir == stdoutDir {
			data, err := f.Format(run)
			if err != nil {
				return fmt.Errorf("formatting %s: %w", f.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		path, err := output.WriteFormatted(f, run, cfg.Output.Dir)
		if err != nil {
			return err
		}
		logger.Info("wrote export", "format", f.Name(), "path", path, "carriers", len(run.Outcomes))
	}
	return nil
}

func writeDatabases(ctx context.Context, cfg *domain.Configuration, parser *config.InputParser, run *domain.RunResult, logger *slog.Logger) error {
	if path := cfg.Database.SQLitePath; path != "" {
		db, err := store.Open(ctx, store.SQLite, path, store.DefaultTable)
		if err != nil {
			return err
		}
		n, err := db.WriteRun(ctx, run)
		db.Close()
		if err != nil {
			return err
		}
		logger.Info("wrote sqlite", "path", path, "carriers", n)
	}

	if cfg.Database.Postgres {
		db, err := store.Open(ctx, store.Postgres, parser.PostgresDSN(cfg), cfg.Database.PostgresTable)
		if err != nil {
			// an unreachable server skips the export rather than failing the run
			logger.Error("skipping postgres export", "err", err)
			return nil
		}
		n, err := db.WriteRun(ctx, run)
		db.Close()
		if err != nil {
			return err
		}
		logger.Info("wrote postgres", "table", cfg.Database.PostgresTable, "carriers", n)
	}
	return nil
}

// logRanked logs the top and bottom graded carriers
func logRanked(logger *slog.Logger, run *domain.RunResult) {
	ranked := run.Ranked()
	if len(ranked) == 0 {
		logger.Warn("no carriers met the mileage threshold")
		return
	}

	line := func(o domain.CarrierOutcome) string {
		name := []rune(o.Carrier.LegalName)
		if len(name) > 40 {
			name = name[:40]
		}
		return fmt.Sprintf("#%d DOT %s: %s - %s", *o.Score.Rank, o.Carrier.DOTNumber, string(name), *o.Score.Grade)
	}

	top := ranked[:min(output.RankedListSize, len(ranked))]
	for _, o := range top {
		logger.Info("top " + line(o))
	}
	bottom := ranked[max(0, len(ranked)-output.RankedListSize):]
	for _, o := range bottom {
		logger.Info("bottom " + line(o))
	}
}
