package main

import (
	"fmt"

	"github.com/fredduggan/fleetidy/internal/config"
	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/fredduggan/fleetidy/internal/eligibility"
	"github.com/fredduggan/fleetidy/internal/ingest"
	"github.com/fredduggan/fleetidy/internal/logging"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <data-dir>",
		Short: "Count carriers removed by each eligibility rule",
		Long: `Read the census and SMS extracts from a data directory and report how many
carriers each eligibility rule excludes, without scoring.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, _ := cmd.Flags().GetInt("sample")
			level, _ := cmd.Flags().GetString("log-level")
			logger := logging.NewLogger(cmd.ErrOrStderr(), level)

			settings := config.DefaultConfiguration().Input
			settings.DataDir = args[0]
			settings.Basic, settings.Crashes, settings.Inspections, settings.Violations = "", "", "", ""

			loader := ingest.NewLoader(settings, sample)
			loader.SetLogger(logger.WithGroup("ingest"))
			carriers, _, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}

			counts := make(map[domain.ExclusionReason]int, len(domain.ExclusionReasons))
			kept := 0
			for i := range carriers {
				d := eligibility.Classify(&carriers[i].Carrier)
				if d.Excluded {
					counts[d.Reason]++
					continue
				}
				kept++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "carriers: %d\n", len(carriers))
			for _, reason := range domain.ExclusionReasons {
				fmt.Fprintf(out, "  %-24s %d\n", reason, counts[reason])
			}
			fmt.Fprintf(out, "kept: %d\n", kept)
			return nil
		},
	}
	cmd.Flags().Int("sample", 0, "Classify only the first N carriers (0 = all)")
	return cmd
}
