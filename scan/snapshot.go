package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/volexlabs/volscope/logger"
	"github.com/volexlabs/volscope/models"
)

// CurrentOptions fetches the first limit listed contracts serially and
// prices them off the exchange mark IV. It is the quick look; FullSnapshot
// is the complete one.
func (s *Scanner) CurrentOptions(ctx context.Context, asOf time.Time, currency string, limit int) ([]models.CurrentRow, error) {
	spot, err := s.client.IndexPrice(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("fetch spot price: %w", err)
	}
	logger.Infof("%s spot price: $%s", currency, humanize.CommafWithDigits(spot, 2))

	instruments, err := s.client.Instruments(ctx, currency, false)
	if err != nil {
		return nil, fmt.Errorf("fetch instruments: %w", err)
	}
	if len(instruments) == 0 {
		return nil, fmt.Errorf("no active %s options listed", currency)
	}
	if limit > 0 && len(instruments) > limit {
		instruments = instruments[:limit]
	}
	logger.Infof("processing %s instruments", humanize.Comma(int64(len(instruments))))

	rows := make([]models.CurrentRow, 0, len(instruments))
	skipped := 0
	bar := newBar(len(instruments), "processing")
	for _, summary := range instruments {
		tk, err := s.client.Ticker(ctx, summary.Name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Debugf("ticker %s: %v", summary.Name, err)
			bar.Add(1)
			continue
		}
		_, g, err := s.quotedGreeks(asOf, summary.Name, spot, tk.MarkIV)
		if err != nil {
			skipped++
			logger.Debugf("skipping %s: %v", summary.Name, err)
			bar.Add(1)
			continue
		}
		delta, gamma, vega, theta := roundedGreeks(g)
		rows = append(rows, models.CurrentRow{
			Instrument:   summary.Name,
			MarkPrice:    tk.MarkPrice,
			Bid:          tk.BestBidPrice,
			Ask:          tk.BestAskPrice,
			VolumeUSD:    tk.Stats.VolumeUSD,
			OpenInterest: tk.OpenInterest,
			IV:           tk.MarkIV,
			SpotPrice:    spot,
			Delta:        delta,
			Gamma:        gamma,
			Vega:         vega,
			Theta:        theta,
		})
		bar.Add(1)
	}
	bar.Finish()
	reportSkipped(skipped)
	return rows, nil
}

// FullSnapshot captures the whole listed chain with quote depth and per-name
// identifier fields. Tickers are fetched concurrently; rows keep the
// exchange listing order.
func (s *Scanner) FullSnapshot(ctx context.Context, asOf time.Time, currency string, limit int) ([]models.SnapshotRow, error) {
	spot, err := s.client.IndexPrice(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("fetch spot price: %w", err)
	}
	logger.Infof("%s spot price: $%s", currency, humanize.CommafWithDigits(spot, 2))

	instruments, err := s.client.Instruments(ctx, currency, false)
	if err != nil {
		return nil, fmt.Errorf("fetch instruments: %w", err)
	}
	if len(instruments) == 0 {
		return nil, fmt.Errorf("no active %s options listed", currency)
	}
	if limit > 0 && len(instruments) > limit {
		instruments = instruments[:limit]
	}
	names := make([]string, len(instruments))
	for i := range instruments {
		names[i] = instruments[i].Name
	}
	logger.Infof("snapshotting %s instruments with %d workers",
		humanize.Comma(int64(len(names))), s.cfg.FetchWorkers)

	tickers := s.fetchTickers(ctx, names)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([]models.SnapshotRow, 0, len(names))
	skipped := 0
	for i, tk := range tickers {
		if tk == nil {
			continue
		}
		name := names[i]
		inst, g, err := s.quotedGreeks(asOf, name, spot, tk.MarkIV)
		if err != nil {
			skipped++
			logger.Debugf("skipping %s: %v", name, err)
			continue
		}
		// Safe after a successful parse: the name has exactly four fields.
		parts := strings.Split(name, "-")
		delta, gamma, vega, theta := roundedGreeks(g)
		rows = append(rows, models.SnapshotRow{
			Instrument:      name,
			Expiry:          parts[1],
			Strike:          inst.Strike,
			Type:            parts[3],
			MarkPrice:       tk.MarkPrice,
			LastPrice:       tk.LastPrice,
			Bid:             tk.BestBidPrice,
			Ask:             tk.BestAskPrice,
			BidSize:         tk.BestBidAmount,
			AskSize:         tk.BestAskAmount,
			Volume:          tk.Stats.Volume,
			VolumeUSD:       tk.Stats.VolumeUSD,
			OpenInterest:    tk.OpenInterest,
			IV:              tk.MarkIV,
			SpotPrice:       spot,
			UnderlyingPrice: tk.UnderlyingPrice,
			Delta:           delta,
			Gamma:           gamma,
			Vega:            vega,
			Theta:           theta,
		})
	}
	reportSkipped(skipped)
	return rows, nil
}
