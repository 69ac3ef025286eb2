package deribit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production public API root.
const DefaultBaseURL = "https://www.deribit.com/api/v2"

const defaultTimeout = 10 * time.Second

// Client talks to the Deribit public REST API. All methods are read-only and
// need no credentials. Requests pass through a shared rate limiter so bulk
// scans stay inside the venue's per-IP limits.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// New builds a client. Zero values select the production URL, a 10s timeout
// and 10 requests per second.
func New(baseURL string, timeout time.Duration, requestsPerSecond float64) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 10
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Instruments lists option contracts for a currency. With expired false only
// tradeable contracts are returned, in the exchange's listing order.
func (c *Client) Instruments(ctx context.Context, currency string, expired bool) ([]InstrumentSummary, error) {
	q := url.Values{}
	q.Set("currency", strings.ToUpper(currency))
	q.Set("kind", "option")
	q.Set("expired", strconv.FormatBool(expired))
	var out []InstrumentSummary
	if err := c.get(ctx, "/public/get_instruments", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ticker fetches the current quote block for one instrument.
func (c *Client) Ticker(ctx context.Context, instrument string) (*Ticker, error) {
	q := url.Values{}
	q.Set("instrument_name", instrument)
	var out Ticker
	if err := c.get(ctx, "/public/ticker", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IndexPrice returns the USD index for a currency, e.g. btc_usd for BTC.
func (c *Client) IndexPrice(ctx context.Context, currency string) (float64, error) {
	q := url.Values{}
	q.Set("index_name", strings.ToLower(currency)+"_usd")
	var out struct {
		IndexPrice float64 `json:"index_price"`
	}
	if err := c.get(ctx, "/public/get_index_price", q, &out); err != nil {
		return 0, err
	}
	return out.IndexPrice, nil
}

// TradesByCurrency returns option fills for a currency inside [start, end],
// both in ms since epoch. count caps the page size; the venue tops out at
// 1000 per call.
func (c *Client) TradesByCurrency(ctx context.Context, currency string, start, end int64, count int) ([]Trade, error) {
	q := url.Values{}
	q.Set("currency", strings.ToUpper(currency))
	q.Set("kind", "option")
	q.Set("start_timestamp", strconv.FormatInt(start, 10))
	q.Set("end_timestamp", strconv.FormatInt(end, 10))
	q.Set("count", strconv.Itoa(count))
	q.Set("include_old", "true")
	var out struct {
		Trades  []Trade `json:"trades"`
		HasMore bool    `json:"has_more"`
	}
	if err := c.get(ctx, "/public/get_last_trades_by_currency", q, &out); err != nil {
		return nil, err
	}
	return out.Trades, nil
}

// TradesByInstrument is TradesByCurrency narrowed to a single contract.
func (c *Client) TradesByInstrument(ctx context.Context, instrument string, start, end int64, count int) ([]Trade, error) {
	q := url.Values{}
	q.Set("instrument_name", instrument)
	q.Set("start_timestamp", strconv.FormatInt(start, 10))
	q.Set("end_timestamp", strconv.FormatInt(end, 10))
	q.Set("count", strconv.Itoa(count))
	q.Set("include_old", "true")
	var out struct {
		Trades  []Trade `json:"trades"`
		HasMore bool    `json:"has_more"`
	}
	if err := c.get(ctx, "/public/get_last_trades_by_instrument", q, &out); err != nil {
		return nil, err
	}
	return out.Trades, nil
}

// Settlements returns option settlement records anchored at searchStart
// (ms since epoch).
func (c *Client) Settlements(ctx context.Context, currency string, searchStart int64, count int) ([]Settlement, error) {
	q := url.Values{}
	q.Set("currency", strings.ToUpper(currency))
	q.Set("type", "settlement")
	q.Set("count", strconv.Itoa(count))
	q.Set("search_start_timestamp", strconv.FormatInt(searchStart, 10))
	var out struct {
		Settlements  []Settlement `json:"settlements"`
		Continuation string       `json:"continuation"`
	}
	if err := c.get(ctx, "/public/get_last_settlements_by_currency", q, &out); err != nil {
		return nil, err
	}
	return out.Settlements, nil
}

// OrderBook fetches the top depth levels for one instrument.
func (c *Client) OrderBook(ctx context.Context, instrument string, depth int) (*OrderBook, error) {
	q := url.Values{}
	q.Set("instrument_name", instrument)
	q.Set("depth", strconv.Itoa(depth))
	var out OrderBook
	if err := c.get(ctx, "/public/get_order_book", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChartData returns OHLCV bars between start and end (ms since epoch) at the
// given resolution in minutes ("60" for hourly, "1D" for daily).
func (c *Client) ChartData(ctx context.Context, instrument string, start, end int64, resolution string) (*ChartData, error) {
	q := url.Values{}
	q.Set("instrument_name", instrument)
	q.Set("start_timestamp", strconv.FormatInt(start, 10))
	q.Set("end_timestamp", strconv.FormatInt(end, 10))
	q.Set("resolution", resolution)
	var out ChartData
	if err := c.get(ctx, "/public/get_tradingview_chart_data", q, &out); err != nil {
		return nil, err
	}
	if out.Status != "ok" {
		return nil, fmt.Errorf("/public/get_tradingview_chart_data: status %q", out.Status)
	}
	return &out, nil
}

// get performs one rate-limited GET and decodes the envelope. The exchange
// reports errors in-band, so the embedded error object wins over the HTTP
// status when both are present.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", path, err)
	}
	var env rpcEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: status %d", path, resp.StatusCode)
		}
		return fmt.Errorf("%s: decode: %w", path, err)
	}
	if env.Error != nil {
		return fmt.Errorf("%s: %w", path, env.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%s: decode result: %w", path, err)
	}
	return nil
}
