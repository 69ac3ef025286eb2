package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/volexlabs/volscope/models"
)

// Downstream loaders key on these exact column names in this exact order;
// this pins the file layout rather than the struct definition.
func TestCurrentReportColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "options_current.csv")
	rows := []models.CurrentRow{
		{
			Instrument:   "BTC-6FEB26-60000-C",
			MarkPrice:    0.3795,
			Bid:          0.3775,
			Ask:          0.381,
			VolumeUSD:    4489415.2,
			OpenInterest: 1251.3,
			IV:           65.5,
			SpotPrice:    96480.52,
			Delta:        0.9999,
			Gamma:        2.1e-08,
			Vega:         0.048,
			Theta:        -8.3099,
		},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Bad line count: %v, expected 2", len(lines))
	}
	wantHeader := "instrument,mark_price,bid,ask,volume_usd,open_interest,iv,spot_price,delta,gamma,vega,theta"
	if lines[0] != wantHeader {
		t.Errorf("Bad header:\n  got  %v\n  want %v", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[1], "BTC-6FEB26-60000-C,0.3795,") {
		t.Errorf("Bad row: %v", lines[1])
	}
}

func TestNaNSerializesAsMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.csv")
	nan := math.NaN()
	rows := []models.LiveRow{
		{
			Instrument:   "BTC-6FEB26-200000-C",
			VWAP:         0.0003,
			LatestPrice:  0.0003,
			NumTrades:    2,
			TotalVolume:  0.4,
			LastTrade:    "2026-01-23 11:58:40",
			SpotPrice:    96480.52,
			CalculatedIV: nan,
			Delta:        nan,
			Gamma:        nan,
			Vega:         nan,
			Theta:        nan,
		},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	row := strings.Split(strings.TrimRight(string(data), "\n"), "\n")[1]
	if strings.Count(row, "NaN") != 5 {
		t.Errorf("expected 5 NaN markers in %q", row)
	}
}

func TestSettlementReportColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settlements.csv")
	rows := []models.SettlementRow{
		{
			Instrument:        "BTC-23JAN26-90000-C",
			SettlementDate:    "2026-01-23",
			SettlementTime:    "2026-01-23 08:00:00",
			SettlementType:    "settlement",
			IndexPrice:        96100.5,
			MarkPrice:         0.067,
			SessionProfitLoss: 12.5,
		},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	wantHeader := "instrument,settlement_date,settlement_time,settlement_type,index_price,mark_price,session_profit_loss"
	if got := strings.Split(string(data), "\n")[0]; got != wantHeader {
		t.Errorf("Bad header:\n  got  %v\n  want %v", got, wantHeader)
	}
}

func TestPreviewTruncates(t *testing.T) {
	rows := make([]models.CandleRow, 30)
	for i := range rows {
		rows[i] = models.CandleRow{Timestamp: "2026-01-23 00:00:00", Close: float64(i)}
	}
	// Preview output goes to stdout; here we only care that it does not
	// error on a full slice or an oversized n.
	if err := Preview(rows, 20); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if err := Preview(rows, 100); err != nil {
		t.Fatalf("Preview: %v", err)
	}
}
