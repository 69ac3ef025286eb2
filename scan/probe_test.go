package scan

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

func TestProbeHitsAllEndpoints(t *testing.T) {
	var hits int64
	mux := http.NewServeMux()
	mux.HandleFunc("/public/get_index_price", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeResult(w, `{"index_price": 96500.0}`)
	})
	mux.HandleFunc("/public/get_last_settlements_by_currency", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		ts := time.Date(2026, time.January, 23, 8, 0, 0, 0, time.UTC).UnixMilli()
		writeResult(w, `{"settlements": [{"instrument_name": "BTC-23JAN26-90000-C", "type": "settlement", "index_price": 96100.5, "mark_price": 0.067, "session_profit_loss": 12.5, "timestamp": `+itoa(ts)+`}], "continuation": "none"}`)
	})
	mux.HandleFunc("/public/get_last_trades_by_currency", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeResult(w, `{"trades": [], "has_more": false}`)
	})

	s := newTestScanner(t, mux, 1)
	if err := s.Probe(context.Background(), asOf, "BTC"); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 3 {
		t.Errorf("Bad endpoint count: %v, expected 3", got)
	}
}

// A dead endpoint must not abort the probe; it reports and moves on.
func TestProbeSurvivesFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	s := newTestScanner(t, mux, 1)
	if err := s.Probe(context.Background(), asOf, "BTC"); err != nil {
		t.Fatalf("Probe: %v", err)
	}
}
