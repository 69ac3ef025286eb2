package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var date string
	var daysBack int

	settlementsCmd := &cobra.Command{
		Use:   "settlements",
		Short: "Option settlement history",
		Long: `Fetch option settlement records. With --date only settlements within one
calendar day of it are kept, bracketing the 08:00 UTC settlement run.

Examples:
  volscope settlements                     # recent settlements
  volscope settlements --date 2026-01-26`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := scanner.Settlements(cmd.Context(), asOf, cfg.Currency, date, daysBack)
			if err != nil {
				return err
			}
			tag := date
			if tag == "" {
				tag = "recent"
			}
			return writeReport(rows, len(rows), fmt.Sprintf("options_settlement_%s.csv", tag))
		},
	}

	settlementsCmd.Flags().StringVarP(&date, "date", "d", "", "settlement date, YYYY-MM-DD")
	settlementsCmd.Flags().IntVar(&daysBack, "days", 90, "lookback in days when no date is given")
	rootCmd.AddCommand(settlementsCmd)
}
