package models

// LargeTraders reports the open interest concentration of the largest
// traders for one derivatives product and contract month.
type LargeTraders struct {
	Date                 string  `json:"date"`
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	ContractMonth        string  `json:"contract_month"`
	Top5LongOI           float64 `json:"top5_long_oi"`
	Top5ShortOI          float64 `json:"top5_short_oi"`
	Top10LongOI          float64 `json:"top10_long_oi"`
	Top10ShortOI         float64 `json:"top10_short_oi"`
	Top5SpecificLongOI   float64 `json:"top5_specific_long_oi"`
	Top5SpecificShortOI  float64 `json:"top5_specific_short_oi"`
	Top10SpecificLongOI  float64 `json:"top10_specific_long_oi"`
	Top10SpecificShortOI float64 `json:"top10_specific_short_oi"`
	TotalOI              float64 `json:"total_oi"`
}

// RetailPosition is the derived retail (non-institutional) open interest
// for one mini futures product. All fields are computed from the product's
// total open interest minus the institutional positions.
type RetailPosition struct {
	Date          string  `json:"date"`
	Symbol        string  `json:"symbol"`
	RetailLongOI  float64 `json:"retail_long_oi"`
	RetailShortOI float64 `json:"retail_short_oi"`
	RetailNetOI   float64 `json:"retail_net_oi"`
	// LongShortRatio is RetailNetOI over the product's total open interest.
	LongShortRatio float64 `json:"long_short_ratio"`
}

// PutCallRatio is the daily TXO put/call volume and open interest ratio.
type PutCallRatio struct {
	Date               string  `json:"date"`
	PutVolume          float64 `json:"put_volume"`
	CallVolume         float64 `json:"call_volume"`
	PutCallVolumeRatio float64 `json:"put_call_volume_ratio"` // percent
	PutOI              float64 `json:"put_oi"`
	CallOI             float64 `json:"call_oi"`
	PutCallOIRatio     float64 `json:"put_call_oi_ratio"` // percent
}

// ExchangeRates is the futures exchange's daily reference FX fixing.
type ExchangeRates struct {
	Date   string  `json:"date"`
	UsdTwd float64 `json:"usdtwd"`
	CnyTwd float64 `json:"cnytwd"`
	EurUsd float64 `json:"eurusd"`
	UsdJpy float64 `json:"usdjpy"`
	GbpUsd float64 `json:"gbpusd"`
	AudUsd float64 `json:"audusd"`
	UsdHkd float64 `json:"usdhkd"`
	UsdCny float64 `json:"usdcny"`
	UsdSgd float64 `json:"usdsgd"`
	NzdUsd float64 `json:"nzdusd"`
}
