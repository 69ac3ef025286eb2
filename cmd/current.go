package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	var limit int

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Quick fetch of the first listed options with greeks",
		Long: `Fetch a small sample of listed option contracts, price each off the
exchange mark IV and report greeks alongside the quote.

Examples:
  volscope current
  volscope current --limit 50
  volscope current -c ETH`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := scanner.CurrentOptions(cmd.Context(), asOf, cfg.Currency, limit)
			if err != nil {
				return err
			}
			return writeReport(rows, len(rows), "options_current.csv")
		},
	}

	currentCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of instruments to fetch")
	rootCmd.AddCommand(currentCmd)
}
