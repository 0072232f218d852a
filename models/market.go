package models

// MarketTrades is the whole-market daily trading summary.
type MarketTrades struct {
	Date        string  `json:"date"`
	Market      string  `json:"market"`
	TradeVolume float64 `json:"trade_volume"`
	TradeValue  float64 `json:"trade_value"`
	Transaction float64 `json:"transaction"`
	Index       float64 `json:"index"`
	Change      float64 `json:"change"`
}

// MarketBreadth counts advancing and declining issues for one market day.
type MarketBreadth struct {
	Date      string  `json:"date"`
	Market    string  `json:"market"`
	Up        float64 `json:"up"`
	LimitUp   float64 `json:"limit_up"`
	Down      float64 `json:"down"`
	LimitDown float64 `json:"limit_down"`
	Unchanged float64 `json:"unchanged"`
	Unmatched float64 `json:"unmatched"` // quoted but never traded
	// NoTrades counts issues with neither quotes nor trades; only some
	// venues report it.
	NoTrades float64 `json:"no_trades,omitempty"`
}

// MarketMarginTrades is the whole-market margin trading summary in
// thousand shares and thousand TWD.
type MarketMarginTrades struct {
	Date                   string  `json:"date"`
	Market                 string  `json:"market"`
	MarginBuy              float64 `json:"margin_buy"`
	MarginSell             float64 `json:"margin_sell"`
	MarginRedeem           float64 `json:"margin_redeem"`
	MarginBalance          float64 `json:"margin_balance"`
	MarginBalancePrev      float64 `json:"margin_balance_prev"`
	ShortBuy               float64 `json:"short_buy"`
	ShortSell              float64 `json:"short_sell"`
	ShortRedeem            float64 `json:"short_redeem"`
	ShortBalance           float64 `json:"short_balance"`
	ShortBalancePrev       float64 `json:"short_balance_prev"`
	MarginBuyValue         float64 `json:"margin_buy_value"`
	MarginSellValue        float64 `json:"margin_sell_value"`
	MarginRedeemValue      float64 `json:"margin_redeem_value"`
	MarginBalanceValue     float64 `json:"margin_balance_value"`
	MarginBalanceValuePrev float64 `json:"margin_balance_value_prev"`
}

// IndexTrades is one sector index's share of the day's trading.
type IndexTrades struct {
	Date        string  `json:"date"`
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name,omitempty"`
	TradeVolume float64 `json:"trade_volume"`
	TradeValue  float64 `json:"trade_value"`
	Transaction float64 `json:"transaction"`
	// TradeWeight is the sector's percentage of the market's total trade
	// value, derived against the whole-market trades record.
	TradeWeight float64 `json:"trade_weight"`
}
