package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalfield/coverage-cli/internal/propagation"
)

var fresnelCmd = &cobra.Command{
	Use:   "fresnel",
	Short: "Compute the Fresnel zone radius at path midpoint",
	RunE:  runFresnel,
}

func init() {
	f := fresnelCmd.Flags()
	f.Float64("distance-km", 0, "path length in km (required)")
	f.Float64("freq-mhz", 0, "frequency in MHz (required)")
	f.Int("zone", 1, "Fresnel zone number")
	_ = fresnelCmd.MarkFlagRequired("distance-km")
	_ = fresnelCmd.MarkFlagRequired("freq-mhz")

	rootCmd.AddCommand(fresnelCmd)
}

func runFresnel(cmd *cobra.Command, _ []string) error {
	dist, _ := cmd.Flags().GetFloat64("distance-km")
	freq, _ := cmd.Flags().GetFloat64("freq-mhz")
	zone, _ := cmd.Flags().GetInt("zone")

	radius, err := propagation.FresnelZoneRadius(dist, freq, zone)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.2f m\n", radius)
	return nil
}
