package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/volexlabs/volscope/logger"
	"github.com/volexlabs/volscope/models"
)

// History pulls hourly OHLCV bars for one instrument across one UTC day.
// The chart feed keeps serving expired contracts, so this also works for
// post-mortems on settled options.
func (s *Scanner) History(ctx context.Context, instrument, date string) ([]models.CandleRow, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	start := day.UnixMilli()
	end := day.Add(24 * time.Hour).UnixMilli()

	chart, err := s.client.ChartData(ctx, instrument, start, end, "60")
	if err != nil {
		return nil, fmt.Errorf("fetch chart data: %w", err)
	}
	if len(chart.Ticks) == 0 {
		return nil, fmt.Errorf("no chart data for %s on %s", instrument, date)
	}

	// The feed returns parallel arrays; guard each one in case a partial
	// bar arrives with a short tail.
	rows := make([]models.CandleRow, 0, len(chart.Ticks))
	for i, tick := range chart.Ticks {
		row := models.CandleRow{
			Timestamp: time.UnixMilli(tick).UTC().Format("2006-01-02 15:04:05"),
		}
		if i < len(chart.Open) {
			row.Open = chart.Open[i]
		}
		if i < len(chart.High) {
			row.High = chart.High[i]
		}
		if i < len(chart.Low) {
			row.Low = chart.Low[i]
		}
		if i < len(chart.Close) {
			row.Close = chart.Close[i]
		}
		if i < len(chart.Volume) {
			row.Volume = chart.Volume[i]
		}
		rows = append(rows, row)
	}
	logger.Infof("found %d bars for %s on %s", len(rows), instrument, date)
	return rows, nil
}
