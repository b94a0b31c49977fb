package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalfield/coverage-cli/internal/propagation"
)

var pathlossCmd = &cobra.Command{
	Use:   "pathloss",
	Short: "Compute path loss for a link",
	Long: `Compute path loss in dB using the free-space (Friis) or Okumura-Hata model.

The Okumura-Hata fit is valid for 150-1500 MHz, 1-20 km, and tx heights of
30-200 m; values outside that range are accepted and extrapolated.

Examples:
  # Free-space loss at 5 km, 2.4 GHz
  pathloss --model free_space --freq-mhz 2400 --distance-km 5

  # Suburban Okumura-Hata at 900 MHz
  pathloss --model okumura_hata --freq-mhz 900 --distance-km 3 --environment suburban`,
	RunE: runPathloss,
}

func init() {
	f := pathlossCmd.Flags()
	f.String("model", "free_space", "path loss model: free_space or okumura_hata")
	f.Float64("freq-mhz", 0, "frequency in MHz (required)")
	f.Float64("distance-km", 0, "distance in km (required)")
	f.Float64("tx-height", 30, "transmitter height in meters (okumura_hata)")
	f.Float64("rx-height", 1.5, "receiver height in meters (okumura_hata)")
	f.String("environment", "urban", "environment: urban, suburban, or rural (okumura_hata)")
	_ = pathlossCmd.MarkFlagRequired("freq-mhz")
	_ = pathlossCmd.MarkFlagRequired("distance-km")

	rootCmd.AddCommand(pathlossCmd)
}

func runPathloss(cmd *cobra.Command, _ []string) error {
	modelName, _ := cmd.Flags().GetString("model")
	freq, _ := cmd.Flags().GetFloat64("freq-mhz")
	dist, _ := cmd.Flags().GetFloat64("distance-km")
	txH, _ := cmd.Flags().GetFloat64("tx-height")
	rxH, _ := cmd.Flags().GetFloat64("rx-height")
	env, _ := cmd.Flags().GetString("environment")

	loss, err := propagation.PathLoss(modelName, freq, dist, txH, rxH, propagation.ParseEnvironment(env))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.2f dB\n", loss)
	return nil
}
