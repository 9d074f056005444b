package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/fredduggan/fleetidy/internal/iss"
	"github.com/spf13/cobra"
)

// basicByKey maps the short alert keys to BASIC categories
func basicByKey(key string) (domain.Basic, bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for _, b := range domain.AllBasics {
		if b.Key() == key {
			return b, true
		}
	}
	return 0, false
}

func issCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iss",
		Short: "Estimate the ISS score for a single carrier",
		Long: `Estimate an Inspection Selection System score from command-line inputs.
Without any BASIC flag the insufficient-data algorithm applies.

Examples:
  fleetidy iss --dot 123456 --power-units 12
  fleetidy iss --dot 123456 --alert HOS --alert VEH_MAINT --percentile UNSAFE=72.5`,
		Args: cobra.NoArgs,
		RunE: runISS,
	}

	f := cmd.Flags()
	f.String("dot", "", "USDOT number (seeds the estimate)")
	f.Int("power-units", 0, "Power units")
	f.Int("truck-units", 0, "Truck units")
	f.Int("total-power", 0, "Total power units")
	f.StringSlice("alert", nil, "BASIC keys in alert (UNSAFE, HOS, DRIVER_FIT, CSAA, VEH_MAINT, HM, CRASH)")
	f.StringToString("percentile", nil, "BASIC percentiles as KEY=value")
	f.Int("vehicle-insp", 0, "Vehicle inspections in the BASIC window")
	f.Int("driver-insp", 0, "Driver inspections in the BASIC window")
	f.Int64("seed", 0, "Fixed seed (default derives one from the DOT number)")
	_ = cmd.MarkFlagRequired("dot")
	return cmd
}

func runISS(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	carrier := &domain.CarrierRecord{}
	carrier.DOTNumber, _ = flags.GetString("dot")
	carrier.PowerUnits, _ = flags.GetInt("power-units")
	carrier.TruckUnits, _ = flags.GetInt("truck-units")
	carrier.TotalPower, _ = flags.GetInt("total-power")

	basic, err := basicFromFlags(cmd)
	if err != nil {
		return err
	}

	estimator := &iss.Estimator{}
	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		estimator.Seed = &seed
	}

	result := estimator.Estimate(carrier, basic)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// basicFromFlags returns nil unless at least one BASIC flag was given
func basicFromFlags(cmd *cobra.Command) (*domain.BasicRecord, error) {
	flags := cmd.Flags()
	if !flags.Changed("alert") && !flags.Changed("percentile") &&
		!flags.Changed("vehicle-insp") && !flags.Changed("driver-insp") {
		return nil, nil
	}

	basic := &domain.BasicRecord{}
	alerts, _ := flags.GetStringSlice("alert")
	for _, key := range alerts {
		b, ok := basicByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown BASIC key %q", key)
		}
		basic.Alerts[b] = true
	}

	percentiles, _ := flags.GetStringToString("percentile")
	for key, raw := range percentiles {
		b, ok := basicByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown BASIC key %q", key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid percentile for %s: %w", key, err)
		}
		basic.Measures[b] = &v
	}

	basic.VehicleInspections, _ = flags.GetInt("vehicle-insp")
	basic.DriverInspections, _ = flags.GetInt("driver-insp")
	return basic, nil
}
