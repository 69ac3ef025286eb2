package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/volexlabs/volscope/deribit"
	"github.com/volexlabs/volscope/logger"
	"github.com/volexlabs/volscope/options"
	"github.com/volexlabs/volscope/report"
	"github.com/volexlabs/volscope/scan"
	"github.com/volexlabs/volscope/settings"
)

var (
	cfgPath   string
	currency  string
	asOfFlag  string
	logLevel  string
	outputDir string

	cfg     settings.Config
	scanner *scan.Scanner
	asOf    time.Time
)

var rootCmd = &cobra.Command{
	Use:   "volscope",
	Short: "Deribit options scanner with model greeks and implied vol",
	Long: `volscope pulls crypto option market data from the Deribit public API and
reprices it with a Black-Scholes engine: greeks from quoted marks, implied
volatility recovered from traded prices, plus settlement and price history.

Each mode writes a CSV report and prints a preview of the first rows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = settings.Load(cfgPath)
		if err != nil {
			return err
		}
		if currency != "" {
			cfg.Currency = currency
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		logger.SetLevel(cfg.LogLevel)
		logger.WithRunID(uuid.New().String()[:8])

		asOf, err = referenceTime(asOfFlag)
		if err != nil {
			return err
		}

		client := deribit.New(cfg.BaseURL,
			time.Duration(cfg.RequestTimeoutSec)*time.Second, cfg.RequestsPerSecond)
		engine := options.NewEngine(cfg.RiskFreeRate, cfg.DayCountBasis)
		scanner = scan.New(client, engine, cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a JSON config file")
	rootCmd.PersistentFlags().StringVarP(&currency, "currency", "c", "", "underlying currency (default BTC)")
	rootCmd.PersistentFlags().StringVar(&asOfFlag, "as-of", "", "reference time, YYYY-MM-DD [HH:MM:SS] UTC (default now)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "directory for CSV reports")
}

// Execute runs the CLI. Ctrl-C cancels the context so in-flight fetches stop
// at the next request boundary.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// referenceTime parses the --as-of flag. Greeks and time to expiry are
// computed against this instant, so pinning it makes runs reproducible.
func referenceTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q, expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
	}
	return t.UTC(), nil
}

// writeReport previews the first rows on stdout and saves the full set under
// the configured output directory.
func writeReport(rows interface{}, count int, filename string) error {
	if err := report.Preview(rows, 20); err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, filename)
	if err := report.WriteCSV(path, rows); err != nil {
		return err
	}
	logger.Infof("saved %s rows to %s", humanize.Comma(int64(count)), path)
	return nil
}
