package scan

import (
	"context"
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Probe exercises the public endpoints end to end and prints what each
// returned. It is a connectivity check, not a data product, so results go
// straight to stdout and individual failures do not abort the run.
func (s *Scanner) Probe(ctx context.Context, asOf time.Time, currency string) error {
	fmt.Println("[1/3] index price")
	if spot, err := s.client.IndexPrice(ctx, currency); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
	} else {
		fmt.Printf("  OK: %s spot $%s\n", currency, humanize.CommafWithDigits(spot, 2))
	}

	fmt.Println("[2/3] settlements")
	weekAgo := asOf.AddDate(0, 0, -7).UnixMilli()
	if sets, err := s.client.Settlements(ctx, currency, weekAgo, 10); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
	} else if len(sets) == 0 {
		fmt.Println("  OK: no settlements in the last week")
	} else {
		latest := sets[0]
		fmt.Printf("  OK: %d settlements, latest %s at %s\n", len(sets), latest.InstrumentName,
			time.UnixMilli(latest.Timestamp).UTC().Format("2006-01-02 15:04"))
	}

	fmt.Println("[3/3] recent trades")
	end := asOf.UnixMilli()
	if trades, err := s.client.TradesByCurrency(ctx, currency, end-3600_000, end, 10); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
	} else if len(trades) == 0 {
		fmt.Println("  OK: no trades in the last hour")
	} else {
		fmt.Printf("  OK: %d trades in the last hour, sample %s\n", len(trades), trades[0].InstrumentName)
	}
	return nil
}
