package models

// Report row types. Field order defines CSV column order, and the csv tags
// define the column names; both are stable contracts for downstream loaders,
// so new fields go at the end and existing tags never change.

// CurrentRow is one instrument in the quick market scan, with Greeks derived
// from the exchange-quoted mark IV.
type CurrentRow struct {
	Instrument   string  `csv:"instrument" json:"instrument"`
	MarkPrice    float64 `csv:"mark_price" json:"mark_price"`
	Bid          float64 `csv:"bid" json:"bid"`
	Ask          float64 `csv:"ask" json:"ask"`
	VolumeUSD    float64 `csv:"volume_usd" json:"volume_usd"`
	OpenInterest float64 `csv:"open_interest" json:"open_interest"`
	IV           float64 `csv:"iv" json:"iv"`
	SpotPrice    float64 `csv:"spot_price" json:"spot_price"`
	Delta        float64 `csv:"delta" json:"delta"`
	Gamma        float64 `csv:"gamma" json:"gamma"`
	Vega         float64 `csv:"vega" json:"vega"`
	Theta        float64 `csv:"theta" json:"theta"`
}

// SnapshotRow is one instrument in the full-chain snapshot. Expiry and Type
// carry the raw name tokens ("6FEB26", "C") so the file round-trips the
// exchange naming.
type SnapshotRow struct {
	Instrument      string  `csv:"instrument" json:"instrument"`
	Expiry          string  `csv:"expiry" json:"expiry"`
	Strike          float64 `csv:"strike" json:"strike"`
	Type            string  `csv:"type" json:"type"`
	MarkPrice       float64 `csv:"mark_price" json:"mark_price"`
	LastPrice       float64 `csv:"last_price" json:"last_price"`
	Bid             float64 `csv:"bid" json:"bid"`
	Ask             float64 `csv:"ask" json:"ask"`
	BidSize         float64 `csv:"bid_size" json:"bid_size"`
	AskSize         float64 `csv:"ask_size" json:"ask_size"`
	Volume          float64 `csv:"volume" json:"volume"`
	VolumeUSD       float64 `csv:"volume_usd" json:"volume_usd"`
	OpenInterest    float64 `csv:"open_interest" json:"open_interest"`
	IV              float64 `csv:"iv" json:"iv"`
	SpotPrice       float64 `csv:"spot_price" json:"spot_price"`
	UnderlyingPrice float64 `csv:"underlying_price" json:"underlying_price"`
	Delta           float64 `csv:"delta" json:"delta"`
	Gamma           float64 `csv:"gamma" json:"gamma"`
	Vega            float64 `csv:"vega" json:"vega"`
	Theta           float64 `csv:"theta" json:"theta"`
}

// LiveRow is one instrument reconstructed from recent trades. CalculatedIV is
// the volatility implied by the volume-weighted trade price, in percent, and
// is NaN when the solver could not resolve it.
type LiveRow struct {
	Instrument   string  `csv:"instrument" json:"instrument"`
	VWAP         float64 `csv:"vwap" json:"vwap"`
	LatestPrice  float64 `csv:"latest_price" json:"latest_price"`
	NumTrades    int     `csv:"num_trades" json:"num_trades"`
	TotalVolume  float64 `csv:"total_volume" json:"total_volume"`
	LastTrade    string  `csv:"last_trade" json:"last_trade"`
	SpotPrice    float64 `csv:"spot_price" json:"spot_price"`
	CalculatedIV float64 `csv:"calculated_iv" json:"calculated_iv"`
	Delta        float64 `csv:"delta" json:"delta"`
	Gamma        float64 `csv:"gamma" json:"gamma"`
	Vega         float64 `csv:"vega" json:"vega"`
	Theta        float64 `csv:"theta" json:"theta"`
}

// SettlementRow is one record from the settlement history feed.
type SettlementRow struct {
	Instrument        string  `csv:"instrument" json:"instrument"`
	SettlementDate    string  `csv:"settlement_date" json:"settlement_date"`
	SettlementTime    string  `csv:"settlement_time" json:"settlement_time"`
	SettlementType    string  `csv:"settlement_type" json:"settlement_type"`
	IndexPrice        float64 `csv:"index_price" json:"index_price"`
	MarkPrice         float64 `csv:"mark_price" json:"mark_price"`
	SessionProfitLoss float64 `csv:"session_profit_loss" json:"session_profit_loss"`
}

// CandleRow is one OHLCV bar from the chart history feed.
type CandleRow struct {
	Timestamp string  `csv:"timestamp" json:"timestamp"`
	Open      float64 `csv:"open" json:"open"`
	High      float64 `csv:"high" json:"high"`
	Low       float64 `csv:"low" json:"low"`
	Close     float64 `csv:"close" json:"close"`
	Volume    float64 `csv:"volume" json:"volume"`
}
