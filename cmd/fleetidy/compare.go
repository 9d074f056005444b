package main

import (
	"fmt"
	"strings"

	"github.com/fredduggan/fleetidy/internal/compare"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <base.json> <current.json>",
		Short: "Compare grades and ranks between two runs",
		Long: `Compare two runs written by the json export format and report carriers
whose grade, rank or ISS bucket moved.

Examples:
  fleetidy compare q1/fred_scores.json q2/fred_scores.json
  fleetidy compare q1/fred_scores.json q2/fred_scores.json --changed-only --format csv
  fleetidy compare q1/fred_scores.json q2/fred_scores.json --format jsonl | jq -c 'select(.movement == "downgraded")'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			changedOnly, _ := cmd.Flags().GetBool("changed-only")

			base, err := compare.LoadRun(args[0])
			if err != nil {
				return err
			}
			current, err := compare.LoadRun(args[1])
			if err != nil {
				return err
			}

			cs, err := compare.Compare(base, current)
			if err != nil {
				return err
			}
			if changedOnly {
				cs = cs.Filter(compare.CarrierChange.Changed)
			}

			var out string
			switch strings.ToLower(format) {
			case "table", "":
				out = (&compare.TableFormatter{}).Format(cs)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(cs) + "\n"
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(cs)
			case "jsonl":
				out, err = (&compare.JSONFormatter{Lines: true}).Format(cs)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(cs)
			default:
				return fmt.Errorf("unknown compare format %q (available: table, compact, json, jsonl, csv)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("format", "table", "Output format (table, compact, json, jsonl, csv)")
	cmd.Flags().Bool("changed-only", false, "Only list carriers whose grade, rank or bucket moved")
	return cmd
}
