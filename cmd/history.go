package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	var date string

	historyCmd := &cobra.Command{
		Use:   "history INSTRUMENT",
		Short: "Hourly price history for one instrument",
		Long: `Fetch hourly OHLCV bars for a single contract across one UTC day. Works
for expired contracts too, which makes it useful next to settlements.

Examples:
  volscope history BTC-6FEB26-60000-C --date 2026-01-22`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				return fmt.Errorf("a date is required (use --date)")
			}
			instrument := args[0]
			rows, err := scanner.History(cmd.Context(), instrument, date)
			if err != nil {
				return err
			}
			name := strings.ReplaceAll(instrument, "-", "_")
			return writeReport(rows, len(rows), fmt.Sprintf("options_history_%s_%s.csv", name, date))
		},
	}

	historyCmd.Flags().StringVarP(&date, "date", "d", "", "trading day, YYYY-MM-DD")
	rootCmd.AddCommand(historyCmd)
}
