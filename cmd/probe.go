package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Check connectivity to the exchange endpoints",
		Long: `Hit each public endpoint the scanner depends on and print what came
back. Useful before a long snapshot run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scanner.Probe(cmd.Context(), asOf, cfg.Currency)
		},
	}

	rootCmd.AddCommand(probeCmd)
}
