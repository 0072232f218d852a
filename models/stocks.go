package models

// FiniHoldings reports foreign and mainland investor holdings for one equity.
type FiniHoldings struct {
	Date              string  `json:"date"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	IssuedShares      float64 `json:"issued_shares"`
	AvailableShares   float64 `json:"available_shares"` // still purchasable under the cap
	SharesHeld        float64 `json:"shares_held"`
	AvailablePercent  float64 `json:"available_percent"`
	HeldPercent       float64 `json:"held_percent"`
	UpperLimitPercent float64 `json:"upper_limit_percent"`
}

// MarginTrades is the margin purchase / short-covering activity for one equity.
type MarginTrades struct {
	Date              string  `json:"date"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	MarginBuy         float64 `json:"margin_buy"`
	MarginSell        float64 `json:"margin_sell"`
	MarginRedeem      float64 `json:"margin_redeem"` // cash redemption
	MarginBalance     float64 `json:"margin_balance"`
	MarginBalancePrev float64 `json:"margin_balance_prev"`
	MarginQuota       float64 `json:"margin_quota"`
	ShortBuy          float64 `json:"short_buy"`
	ShortSell         float64 `json:"short_sell"`
	ShortRedeem       float64 `json:"short_redeem"` // covering by delivery
	ShortBalance      float64 `json:"short_balance"`
	ShortBalancePrev  float64 `json:"short_balance_prev"`
	ShortQuota        float64 `json:"short_quota"`
	Offset            float64 `json:"offset"` // margin/short offsetting
	Note              string  `json:"note,omitempty"`
}

// ShortSales reports margin short sales and securities-borrowing short
// sales for one equity.
type ShortSales struct {
	Date                   string  `json:"date"`
	Symbol                 string  `json:"symbol"`
	Name                   string  `json:"name"`
	MarginShortBalancePrev float64 `json:"margin_short_balance_prev"`
	MarginShortSell        float64 `json:"margin_short_sell"`
	MarginShortBuy         float64 `json:"margin_short_buy"`
	MarginShortRedeem      float64 `json:"margin_short_redeem"`
	MarginShortBalance     float64 `json:"margin_short_balance"`
	MarginShortQuota       float64 `json:"margin_short_quota"`
	SBLShortBalancePrev    float64 `json:"sbl_short_balance_prev"`
	SBLShortSale           float64 `json:"sbl_short_sale"`
	SBLShortReturn         float64 `json:"sbl_short_return"`
	SBLShortAdjustment     float64 `json:"sbl_short_adjustment"`
	SBLShortBalance        float64 `json:"sbl_short_balance"`
	SBLShortQuota          float64 `json:"sbl_short_quota"`
	Note                   string  `json:"note,omitempty"`
}

// StockValues carries per-equity valuation ratios published after trading.
type StockValues struct {
	Date          string  `json:"date"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	PeRatio       float64 `json:"pe_ratio"`
	PbRatio       float64 `json:"pb_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	DividendYear  int     `json:"dividend_year"`
}

// Dividend is an ex-dividend summary row enriched with per-symbol detail.
// Summary rows come from the ex-right listing; CashDividend and
// StockDividendShares require a second per-symbol detail fetch.
type Dividend struct {
	Date                     string  `json:"date"` // resumption (ex) date
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	PreviousClose            float64 `json:"previous_close"`
	ReferencePrice           float64 `json:"reference_price"`
	Dividend                 float64 `json:"dividend"` // combined rights + dividend value
	DividendType             string  `json:"dividend_type"`
	LimitUpPrice             float64 `json:"limit_up_price"`
	LimitDownPrice           float64 `json:"limit_down_price"`
	OpeningReferencePrice    float64 `json:"opening_reference_price"`
	ExDividendReferencePrice float64 `json:"ex_dividend_reference_price"`
	CashDividend             float64 `json:"cash_dividend"`
	StockDividendShares      float64 `json:"stock_dividend_shares"` // shares per thousand held
}

// CapitalReduction is a trading-resumption row after a capital reduction,
// enriched with per-symbol detail.
type CapitalReduction struct {
	Date                  string  `json:"date"` // resumption date
	Symbol                string  `json:"symbol"`
	Name                  string  `json:"name"`
	PreviousClose         float64 `json:"previous_close"`
	ReferencePrice        float64 `json:"reference_price"`
	LimitUpPrice          float64 `json:"limit_up_price"`
	LimitDownPrice        float64 `json:"limit_down_price"`
	OpeningReferencePrice float64 `json:"opening_reference_price"`
	ExRightReferencePrice float64 `json:"ex_right_reference_price"`
	Reason                string  `json:"reason"`
	// Detail fields from the per-symbol fetch.
	HaltDate          string  `json:"halt_date,omitempty"`
	SharesPerThousand float64 `json:"shares_per_thousand,omitempty"`
	RefundPerShare    float64 `json:"refund_per_share,omitempty"`
}

// Split is a trading-resumption row after a par-value change, enriched
// with per-symbol detail.
type Split struct {
	Date           string  `json:"date"` // resumption date
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	PreviousClose  float64 `json:"previous_close"`
	ReferencePrice float64 `json:"reference_price"`
	LimitUpPrice   float64 `json:"limit_up_price"`
	LimitDownPrice float64 `json:"limit_down_price"`
	// Detail fields from the per-symbol fetch.
	HaltDate    string  `json:"halt_date,omitempty"`
	NewParValue float64 `json:"new_par_value,omitempty"`
	SplitRatio  float64 `json:"split_ratio,omitempty"` // new shares per old share
}

// ShareholderTier is one holding-size bucket of a shareholder distribution.
type ShareholderTier struct {
	Level      int     `json:"level"`
	Holders    float64 `json:"holders"`
	Shares     float64 `json:"shares"`
	Proportion float64 `json:"proportion"` // percent of custody balance
}

// ShareholderDistribution is the ordered tier list for one symbol and date.
type ShareholderDistribution struct {
	Date   string            `json:"date"`
	Symbol string            `json:"symbol"`
	Tiers  []ShareholderTier `json:"tiers"`
}

// EPS is one company's quarterly earnings-per-share disclosure.
type EPS struct {
	Exchange string  `json:"exchange"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	EPS      float64 `json:"eps"`
	Year     int     `json:"year"`
	Quarter  int     `json:"quarter"`
}

// Revenue is one company's monthly revenue disclosure.
type Revenue struct {
	Exchange string  `json:"exchange"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"` // thousand TWD
	Year     int     `json:"year"`
	Month    int     `json:"month"`
}
