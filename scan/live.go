package scan

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	humanize "github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/volexlabs/volscope/deribit"
	"github.com/volexlabs/volscope/logger"
	"github.com/volexlabs/volscope/models"
	"github.com/volexlabs/volscope/options"
)

// tradeBucket collects the fills of one instrument inside the lookback
// window, in feed order.
type tradeBucket struct {
	name       string
	prices     []float64
	volumes    []float64
	timestamps []int64
}

func (b *tradeBucket) totalVolume() float64 {
	return floats.Sum(b.volumes)
}

// vwap is the volume-weighted average fill price, falling back to a plain
// mean when the reported amounts sum to zero.
func (b *tradeBucket) vwap() float64 {
	if b.totalVolume() > 0 {
		return stat.Mean(b.prices, b.volumes)
	}
	return stat.Mean(b.prices, nil)
}

// LiveTrades reconstructs per-contract prices from the fills of the last
// minutesBack minutes and solves each one back to an implied volatility. The
// most actively traded limit instruments are kept, busiest first. Contracts
// whose price cannot be inverted keep their trade statistics and carry NaN
// for the IV and every Greek.
func (s *Scanner) LiveTrades(ctx context.Context, asOf time.Time, currency string, minutesBack, limit int) ([]models.LiveRow, error) {
	spot, err := s.client.IndexPrice(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("fetch spot price: %w", err)
	}
	logger.Infof("%s spot price: $%s", currency, humanize.CommafWithDigits(spot, 2))

	end := asOf.UnixMilli()
	start := end - int64(minutesBack)*60*1000
	trades, err := s.client.TradesByCurrency(ctx, currency, start, end, 1000)
	if err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}
	if len(trades) == 0 {
		return nil, fmt.Errorf("no %s option trades in the last %d minutes", currency, minutesBack)
	}

	buckets := bucketTrades(trades)
	logger.Infof("%s trades across %d unique instruments",
		humanize.Comma(int64(len(trades))), len(buckets))

	sort.SliceStable(buckets, func(i, j int) bool {
		vi, vj := buckets[i].totalVolume(), buckets[j].totalVolume()
		if vi != vj {
			return vi > vj
		}
		return buckets[i].name < buckets[j].name
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}

	rows := make([]models.LiveRow, 0, len(buckets))
	skipped := 0
	bar := newBar(len(buckets), "calculating greeks")
	for _, b := range buckets {
		bar.Add(1)
		inst, err := models.ParseInstrument(b.name)
		if err != nil {
			skipped++
			logger.Debugf("skipping %s: %v", b.name, err)
			continue
		}
		last := len(b.prices) - 1
		vwap := b.vwap()
		tte := s.engine.TimeToExpiry(asOf, inst.Expiry)

		// Fills are quoted in the underlying; the model solves in USD.
		ivPercent := math.NaN()
		greeks := options.Undefined()
		iv, err := s.engine.ImpliedVol(options.VolQuery{
			Price:        vwap * spot,
			Spot:         spot,
			Strike:       inst.Strike,
			TimeToExpiry: tte,
			Type:         inst.Type,
		})
		switch {
		case err != nil:
			logger.Debugf("%s: %v", b.name, err)
		case iv*100 <= 0 || iv*100 >= 500:
			logger.Debugf("%s: implied vol %.1f%% outside sanity band", b.name, iv*100)
		default:
			ivPercent = iv * 100
			greeks = s.engine.Compute(options.Input{
				Spot:         spot,
				Strike:       inst.Strike,
				TimeToExpiry: tte,
				Volatility:   iv,
				Type:         inst.Type,
			})
		}
		delta, gamma, vega, theta := roundedGreeks(greeks)
		rows = append(rows, models.LiveRow{
			Instrument:   b.name,
			VWAP:         vwap,
			LatestPrice:  b.prices[last],
			NumTrades:    len(b.prices),
			TotalVolume:  b.totalVolume(),
			LastTrade:    time.UnixMilli(b.timestamps[last]).UTC().Format("2006-01-02 15:04:05"),
			SpotPrice:    spot,
			CalculatedIV: ivPercent,
			Delta:        delta,
			Gamma:        gamma,
			Vega:         vega,
			Theta:        theta,
		})
	}
	bar.Finish()
	reportSkipped(skipped)
	return rows, nil
}

func bucketTrades(trades []deribit.Trade) []*tradeBucket {
	byName := make(map[string]*tradeBucket, len(trades))
	ordered := make([]*tradeBucket, 0, len(trades))
	for _, tr := range trades {
		b, ok := byName[tr.InstrumentName]
		if !ok {
			b = &tradeBucket{name: tr.InstrumentName}
			byName[tr.InstrumentName] = b
			ordered = append(ordered, b)
		}
		b.prices = append(b.prices, tr.Price)
		b.volumes = append(b.volumes, tr.Amount)
		b.timestamps = append(b.timestamps, tr.Timestamp)
	}
	return ordered
}
