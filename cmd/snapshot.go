package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	var limit int

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Full market snapshot of every listed option",
		Long: `Capture the whole listed option chain with quote depth, volume and
greeks. Tickers are fetched concurrently; expect a few minutes for a full
BTC chain.

Examples:
  volscope snapshot              # all instruments
  volscope snapshot --limit 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := scanner.FullSnapshot(cmd.Context(), asOf, cfg.Currency, limit)
			if err != nil {
				return err
			}
			return writeReport(rows, len(rows), "options_snapshot_full.csv")
		},
	}

	snapshotCmd.Flags().IntVarP(&limit, "limit", "n", 0, "cap on instruments, 0 for all")
	rootCmd.AddCommand(snapshotCmd)
}
