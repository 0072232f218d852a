package models

// BookLevel is one rung of a bid or ask ladder.
type BookLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// Quote is a point-in-time top-of-book snapshot from a realtime feed.
// Each call returns a fresh snapshot; nothing is persisted.
type Quote struct {
	Date           string      `json:"date"` // trading date, ISO yyyy-MM-dd
	Symbol         string      `json:"symbol"`
	Name           string      `json:"name"`
	ReferencePrice float64     `json:"reference_price"`
	LimitUpPrice   float64     `json:"limit_up_price"`
	LimitDownPrice float64     `json:"limit_down_price"`
	OpenPrice      float64     `json:"open_price"`
	HighPrice      float64     `json:"high_price"`
	LowPrice       float64     `json:"low_price"`
	LastPrice      float64     `json:"last_price"`
	LastSize       float64     `json:"last_size"`
	TotalVolume    float64     `json:"total_volume"`
	BidPrice       []float64   `json:"bid_price"`
	AskPrice       []float64   `json:"ask_price"`
	BidSize        []float64   `json:"bid_size"`
	AskSize        []float64   `json:"ask_size"`
	Book           []BookLevel `json:"-"`
	LastUpdated    int64       `json:"last_updated"` // epoch milliseconds
}

// FutOptQuote is a realtime derivatives quote from the futures exchange feed.
type FutOptQuote struct {
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	ReferencePrice float64   `json:"reference_price"`
	LimitUpPrice   float64   `json:"limit_up_price"`
	LimitDownPrice float64   `json:"limit_down_price"`
	OpenPrice      float64   `json:"open_price"`
	HighPrice      float64   `json:"high_price"`
	LowPrice       float64   `json:"low_price"`
	LastPrice      float64   `json:"last_price"`
	LastSize       float64   `json:"last_size"`
	TotalVolume    float64   `json:"total_volume"`
	OpenInterest   float64   `json:"open_interest"`
	BidPrice       []float64 `json:"bid_price"`
	AskPrice       []float64 `json:"ask_price"`
	BidSize        []float64 `json:"bid_size"`
	AskSize        []float64 `json:"ask_size"`
	TestPrice      float64   `json:"test_price,omitempty"` // pre-open matching trial price
	AfterHours     bool      `json:"after_hours,omitempty"`
	LastUpdated    int64     `json:"last_updated"` // epoch milliseconds
}
