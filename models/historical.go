package models

// StockHistorical is one trading day of OHLCV data for one equity.
type StockHistorical struct {
	Date     string  `json:"date"` // ISO yyyy-MM-dd
	Exchange string  `json:"exchange,omitempty"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`   // shares
	Turnover float64 `json:"turnover"` // value traded
	// Transaction is the number of executed transactions.
	Transaction float64 `json:"transaction"`
	// Change is sign-adjusted: upstream reports a magnitude plus a
	// direction token, and one venue renders direction with a reversed
	// color convention.
	Change float64 `json:"change"`
}

// IndexHistorical is one trading day of a market index, derived from
// intraday five-minute snapshots.
type IndexHistorical struct {
	Date   string  `json:"date"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name,omitempty"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Change float64 `json:"change"`
}

// FutOptHistorical is one trading day of one derivatives contract month.
type FutOptHistorical struct {
	Date            string  `json:"date"`
	Symbol          string  `json:"symbol"`         // product code, e.g. "TXF"
	ContractMonth   string  `json:"contract_month"` // delivery month or week code
	StrikePrice     float64 `json:"strike_price,omitempty"`
	Type            string  `json:"type,omitempty"` // call/put for options
	Open            float64 `json:"open"`
	High            float64 `json:"high"`
	Low             float64 `json:"low"`
	Close           float64 `json:"close"`
	Change          float64 `json:"change"`
	ChangePercent   float64 `json:"change_percent"`
	Volume          float64 `json:"volume"`
	SettlementPrice float64 `json:"settlement_price"`
	OpenInterest    float64 `json:"open_interest"`
	Session         string  `json:"session,omitempty"` // regular or after-hours
}
