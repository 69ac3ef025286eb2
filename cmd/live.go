package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var minutes int
	var limit int

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Reconstruct the market from recent trades",
		Long: `Aggregate option fills from a recent window into per-instrument VWAPs,
recover the implied volatility each VWAP clears at, and report greeks at
that vol. Instruments rank by traded volume.

Examples:
  volscope live                # last 60 minutes
  volscope live --minutes 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := scanner.LiveTrades(cmd.Context(), asOf, cfg.Currency, minutes, limit)
			if err != nil {
				return err
			}
			return writeReport(rows, len(rows), fmt.Sprintf("options_live_%dmin.csv", minutes))
		},
	}

	liveCmd.Flags().IntVarP(&minutes, "minutes", "m", 60, "lookback window in minutes")
	liveCmd.Flags().IntVarP(&limit, "limit", "n", 200, "cap on reported instruments")
	rootCmd.AddCommand(liveCmd)
}
