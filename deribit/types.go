package deribit

import (
	"encoding/json"
	"fmt"
)

// rpcEnvelope is the JSON-RPC wrapper every v2 response arrives in. Result
// stays raw until the caller picks a concrete type for it.
type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *APIError       `json:"error"`
}

// APIError is the error object the exchange embeds in an envelope. The
// transport returns it wrapped, so errors.As can recover the code.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deribit: %s (code %d)", e.Message, e.Code)
}

// InstrumentSummary is one entry from /public/get_instruments.
type InstrumentSummary struct {
	Name                string  `json:"instrument_name"`
	Kind                string  `json:"kind"`
	OptionType          string  `json:"option_type"`
	Strike              float64 `json:"strike"`
	ExpirationTimestamp int64   `json:"expiration_timestamp"`
	IsActive            bool    `json:"is_active"`
	QuoteCurrency       string  `json:"quote_currency"`
	BaseCurrency        string  `json:"base_currency"`
	TickSize            float64 `json:"tick_size"`
	ContractSize        float64 `json:"contract_size"`
}

// TickerStats is the rolling 24h block nested inside a ticker.
type TickerStats struct {
	Volume      float64 `json:"volume"`
	VolumeUSD   float64 `json:"volume_usd"`
	PriceChange float64 `json:"price_change"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
}

// Ticker is the /public/ticker result. Prices for options are quoted in the
// underlying currency; mark_iv is in percent.
type Ticker struct {
	InstrumentName  string      `json:"instrument_name"`
	MarkPrice       float64     `json:"mark_price"`
	MarkIV          float64     `json:"mark_iv"`
	BestBidPrice    float64     `json:"best_bid_price"`
	BestAskPrice    float64     `json:"best_ask_price"`
	BestBidAmount   float64     `json:"best_bid_amount"`
	BestAskAmount   float64     `json:"best_ask_amount"`
	LastPrice       float64     `json:"last_price"`
	OpenInterest    float64     `json:"open_interest"`
	UnderlyingPrice float64     `json:"underlying_price"`
	IndexPrice      float64     `json:"index_price"`
	Stats           TickerStats `json:"stats"`
	Timestamp       int64       `json:"timestamp"`
}

// Trade is one fill from the public trade feeds. Amount for options is in
// contracts of the underlying; price is in the underlying currency.
type Trade struct {
	InstrumentName string  `json:"instrument_name"`
	TradeID        string  `json:"trade_id"`
	Price          float64 `json:"price"`
	Amount         float64 `json:"amount"`
	Direction      string  `json:"direction"`
	IndexPrice     float64 `json:"index_price"`
	Timestamp      int64   `json:"timestamp"`
}

// Settlement is one record from /public/get_last_settlements_by_currency.
type Settlement struct {
	InstrumentName    string  `json:"instrument_name"`
	Type              string  `json:"type"`
	IndexPrice        float64 `json:"index_price"`
	MarkPrice         float64 `json:"mark_price"`
	SessionProfitLoss float64 `json:"session_profit_loss"`
	Timestamp         int64   `json:"timestamp"`
}

// OrderBook is the /public/get_order_book result. Bids and asks are
// [price, amount] pairs, best first.
type OrderBook struct {
	InstrumentName string      `json:"instrument_name"`
	Bids           [][]float64 `json:"bids"`
	Asks           [][]float64 `json:"asks"`
	MarkPrice      float64     `json:"mark_price"`
	IndexPrice     float64     `json:"index_price"`
	Timestamp      int64       `json:"timestamp"`
}

// ChartData is the /public/get_tradingview_chart_data result, parallel
// arrays keyed by Ticks (ms).
type ChartData struct {
	Status string    `json:"status"`
	Ticks  []int64   `json:"ticks"`
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []float64 `json:"volume"`
	Cost   []float64 `json:"cost"`
}
