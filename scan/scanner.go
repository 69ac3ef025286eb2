package scan

import (
	"context"
	"math"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/volexlabs/volscope/deribit"
	"github.com/volexlabs/volscope/logger"
	"github.com/volexlabs/volscope/models"
	"github.com/volexlabs/volscope/options"
	"github.com/volexlabs/volscope/settings"
)

// Scanner ties the exchange client to the pricing engine and produces the
// rows for each report mode. Methods take an explicit asOf so a run can be
// pinned to a reference instant and reproduced.
type Scanner struct {
	client *deribit.Client
	engine *options.Engine
	cfg    settings.Config
}

func New(client *deribit.Client, engine *options.Engine, cfg settings.Config) *Scanner {
	return &Scanner{client: client, engine: engine, cfg: cfg}
}

// quotedGreeks prices one contract off its percent IV quote. A malformed
// name comes back as the error; pricing degeneracies (expired contract, zero
// quote) come back as NaN greeks instead.
func (s *Scanner) quotedGreeks(asOf time.Time, name string, spot, ivPercent float64) (models.Instrument, options.Greeks, error) {
	inst, err := models.ParseInstrument(name)
	if err != nil {
		return models.Instrument{}, options.Undefined(), err
	}
	g := s.engine.Compute(options.Input{
		Spot:         spot,
		Strike:       inst.Strike,
		TimeToExpiry: s.engine.TimeToExpiry(asOf, inst.Expiry),
		Volatility:   ivPercent / 100,
		Type:         inst.Type,
	})
	return inst, g, nil
}

// fetchTickers fans ticker requests over a bounded worker pool. The result
// slice is aligned with names; failed fetches leave nil holes the caller
// skips, so one bad contract never sinks a snapshot.
func (s *Scanner) fetchTickers(ctx context.Context, names []string) []*deribit.Ticker {
	out := make([]*deribit.Ticker, len(names))
	jobs := make(chan int)
	workers := s.cfg.FetchWorkers
	if workers < 1 {
		workers = 1
	}
	bar := newBar(len(names), "fetching tickers")
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				tk, err := s.client.Ticker(ctx, names[i])
				if err != nil {
					logger.Debugf("ticker %s: %v", names[i], err)
				} else {
					out[i] = tk
				}
				bar.Add(1)
			}
		}()
	}
feed:
	for i := range names {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	bar.Finish()
	return out
}

func newBar(n int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func reportSkipped(n int) {
	if n > 0 {
		logger.Warnf("skipped %d instruments with malformed names", n)
	}
}

// roundTo trims report noise without touching the NaN markers, which pass
// through math.Round unchanged.
func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// roundedGreeks applies the report convention: four decimals for delta, vega
// and theta, six for gamma.
func roundedGreeks(g options.Greeks) (delta, gamma, vega, theta float64) {
	return roundTo(g.Delta, 4), roundTo(g.Gamma, 6), roundTo(g.Vega, 4), roundTo(g.Theta, 4)
}
