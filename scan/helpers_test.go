package scan

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/volexlabs/volscope/deribit"
	"github.com/volexlabs/volscope/options"
	"github.com/volexlabs/volscope/settings"
)

// Reference instant shared by the mode tests: a Friday morning with the
// 6FEB26 weeklies two weeks out.
var asOf = time.Date(2026, time.January, 23, 12, 0, 0, 0, time.UTC)

func newTestScanner(t *testing.T, handler http.Handler, workers int) *Scanner {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := settings.Default()
	cfg.FetchWorkers = workers
	cfg.RequestsPerSecond = 10000
	client := deribit.New(srv.URL, 0, cfg.RequestsPerSecond)
	engine := options.NewEngine(cfg.RiskFreeRate, cfg.DayCountBasis)
	return New(client, engine, cfg)
}

func indexHandler(price float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, `{"index_price": `+strconv.FormatFloat(price, 'f', -1, 64)+`}`)
	}
}

func writeResult(w http.ResponseWriter, result string) {
	w.Write([]byte(`{"result": ` + result + `}`))
}
