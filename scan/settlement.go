package scan

import (
	"context"
	"fmt"
	"sort"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/volexlabs/volscope/logger"
	"github.com/volexlabs/volscope/models"
)

// Settlements pulls option settlement history. With a date (YYYY-MM-DD) only
// records within one calendar day of it are kept, bracketing the 08:00 UTC
// settlement run; otherwise the window spans daysBack days before asOf.
// Rows come back newest first.
func (s *Scanner) Settlements(ctx context.Context, asOf time.Time, currency, date string, daysBack int) ([]models.SettlementRow, error) {
	var searchStart int64
	var target time.Time
	filtered := date != ""
	if filtered {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
		target = t
		searchStart = time.Date(t.Year(), t.Month(), t.Day(), models.SettlementHour, 0, 0, 0, time.UTC).UnixMilli()
		logger.Infof("fetching settlements around %s", date)
	} else {
		searchStart = asOf.AddDate(0, 0, -daysBack).UnixMilli()
		logger.Infof("fetching settlements from the last %d days", daysBack)
	}

	settlements, err := s.client.Settlements(ctx, currency, searchStart, 1000)
	if err != nil {
		return nil, fmt.Errorf("fetch settlements: %w", err)
	}
	logger.Infof("found %s settlement records", humanize.Comma(int64(len(settlements))))

	rows := make([]models.SettlementRow, 0, len(settlements))
	for _, st := range settlements {
		ts := time.UnixMilli(st.Timestamp).UTC()
		if filtered && calendarDaysApart(ts, target) > 1 {
			continue
		}
		rows = append(rows, models.SettlementRow{
			Instrument:        st.InstrumentName,
			SettlementDate:    ts.Format("2006-01-02"),
			SettlementTime:    ts.Format("2006-01-02 15:04:05"),
			SettlementType:    st.Type,
			IndexPrice:        st.IndexPrice,
			MarkPrice:         st.MarkPrice,
			SessionProfitLoss: st.SessionProfitLoss,
		})
	}
	// Lexicographic order on this timestamp format is chronological.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SettlementTime > rows[j].SettlementTime
	})
	return rows, nil
}

// calendarDaysApart counts whole calendar days between the UTC dates of a
// and b, ignoring time of day.
func calendarDaysApart(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	days := int(da.Sub(db).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}
