package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/signalfield/coverage-cli/internal/propagation"
)

var linkbudgetCmd = &cobra.Command{
	Use:   "linkbudget",
	Short: "Run a full link budget analysis",
	Long: `Compute EIRP, free-space path loss, received power, and link margin for a
point-to-point link, and report whether the link is viable against the
receiver sensitivity.

Examples:
  linkbudget --tx-power-dbm 43 --tx-gain-dbi 15 --freq-mhz 2100 --distance-km 5
  linkbudget --tx-power-dbm 30 --tx-gain-dbi 24 --rx-gain-dbi 24 --freq-mhz 5800 --distance-km 10 --format json`,
	RunE: runLinkbudget,
}

func init() {
	f := linkbudgetCmd.Flags()
	f.Float64("tx-power-dbm", 0, "transmit power in dBm (required)")
	f.Float64("tx-gain-dbi", 0, "transmit antenna gain in dBi")
	f.Float64("rx-gain-dbi", 0, "receive antenna gain in dBi")
	f.Float64("freq-mhz", 0, "frequency in MHz (required)")
	f.Float64("distance-km", 0, "distance in km (required)")
	f.Float64("losses-db", 0, "additional losses in dB")
	f.Float64("sensitivity-dbm", -100, "receiver sensitivity in dBm")
	f.String("format", "table", "output format: table or json")
	_ = linkbudgetCmd.MarkFlagRequired("tx-power-dbm")
	_ = linkbudgetCmd.MarkFlagRequired("freq-mhz")
	_ = linkbudgetCmd.MarkFlagRequired("distance-km")

	rootCmd.AddCommand(linkbudgetCmd)
}

func runLinkbudget(cmd *cobra.Command, _ []string) error {
	params := propagation.LinkBudgetParams{}
	params.TxPowerDBm, _ = cmd.Flags().GetFloat64("tx-power-dbm")
	params.TxGainDBi, _ = cmd.Flags().GetFloat64("tx-gain-dbi")
	params.RxGainDBi, _ = cmd.Flags().GetFloat64("rx-gain-dbi")
	params.FrequencyMHz, _ = cmd.Flags().GetFloat64("freq-mhz")
	params.DistanceKm, _ = cmd.Flags().GetFloat64("distance-km")
	params.AdditionalLossesDB, _ = cmd.Flags().GetFloat64("losses-db")
	params.RxSensitivityDBm, _ = cmd.Flags().GetFloat64("sensitivity-dbm")
	format, _ := cmd.Flags().GetString("format")

	res, err := propagation.LinkBudget(params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return eris.Wrap(err, "linkbudget: encode result")
		}
	case "table":
		fmt.Fprintf(out, "EIRP:            %8.2f dBm\n", res.EIRPDBm)
		fmt.Fprintf(out, "Path loss:       %8.2f dB\n", res.PathLossDB)
		fmt.Fprintf(out, "Total gain:      %8.2f dB\n", res.TotalGainDB)
		fmt.Fprintf(out, "Received power:  %8.2f dBm\n", res.ReceivedPowerDBm)
		fmt.Fprintf(out, "Link margin:     %8.2f dB\n", res.LinkMarginDB)
		fmt.Fprintf(out, "Fade margin:     %8.2f dB\n", res.FadeMarginDB)
		fmt.Fprintf(out, "Viable:          %v\n", res.IsViable)
	default:
		return eris.Errorf("linkbudget: unknown format %q", format)
	}
	return nil
}
