package models

// InstInvestorsTrades is the institutional-investor buy/sell breakdown
// shared by per-stock, per-contract, and whole-market records.
//
// Derived totals always satisfy:
//
//	DealersBuy  = DealersForProprietaryBuy + DealersForHedgingBuy
//	TotalInstInvestorsBuy = FiniBuy + SitcBuy + DealersBuy
//
// and the same identities for Sell and NetBuySell.
type InstInvestorsTrades struct {
	FiniWithoutDealersBuy           float64 `json:"fini_without_dealers_buy"`
	FiniWithoutDealersSell          float64 `json:"fini_without_dealers_sell"`
	FiniWithoutDealersNetBuySell    float64 `json:"fini_without_dealers_net_buy_sell"`
	FiniDealersBuy                  float64 `json:"fini_dealers_buy"`
	FiniDealersSell                 float64 `json:"fini_dealers_sell"`
	FiniDealersNetBuySell           float64 `json:"fini_dealers_net_buy_sell"`
	FiniBuy                         float64 `json:"fini_buy"`
	FiniSell                        float64 `json:"fini_sell"`
	FiniNetBuySell                  float64 `json:"fini_net_buy_sell"`
	SitcBuy                         float64 `json:"sitc_buy"`
	SitcSell                        float64 `json:"sitc_sell"`
	SitcNetBuySell                  float64 `json:"sitc_net_buy_sell"`
	DealersForProprietaryBuy        float64 `json:"dealers_for_proprietary_buy"`
	DealersForProprietarySell       float64 `json:"dealers_for_proprietary_sell"`
	DealersForProprietaryNetBuySell float64 `json:"dealers_for_proprietary_net_buy_sell"`
	DealersForHedgingBuy            float64 `json:"dealers_for_hedging_buy"`
	DealersForHedgingSell           float64 `json:"dealers_for_hedging_sell"`
	DealersForHedgingNetBuySell     float64 `json:"dealers_for_hedging_net_buy_sell"`
	DealersBuy                      float64 `json:"dealers_buy"`
	DealersSell                     float64 `json:"dealers_sell"`
	DealersNetBuySell               float64 `json:"dealers_net_buy_sell"`
	TotalInstInvestorsBuy           float64 `json:"total_inst_investors_buy"`
	TotalInstInvestorsSell          float64 `json:"total_inst_investors_sell"`
	TotalInstInvestorsNetBuySell    float64 `json:"total_inst_investors_net_buy_sell"`
}

// DeriveTotals fills the dealer and grand-total fields from their
// sub-components. Upstream payloads report the components; the composed
// totals are always recomputed here so the identities hold.
func (t *InstInvestorsTrades) DeriveTotals() {
	t.FiniBuy = t.FiniWithoutDealersBuy + t.FiniDealersBuy
	t.FiniSell = t.FiniWithoutDealersSell + t.FiniDealersSell
	t.FiniNetBuySell = t.FiniWithoutDealersNetBuySell + t.FiniDealersNetBuySell
	t.DealersBuy = t.DealersForProprietaryBuy + t.DealersForHedgingBuy
	t.DealersSell = t.DealersForProprietarySell + t.DealersForHedgingSell
	t.DealersNetBuySell = t.DealersForProprietaryNetBuySell + t.DealersForHedgingNetBuySell
	t.TotalInstInvestorsBuy = t.FiniBuy + t.SitcBuy + t.DealersBuy
	t.TotalInstInvestorsSell = t.FiniSell + t.SitcSell + t.DealersSell
	t.TotalInstInvestorsNetBuySell = t.FiniNetBuySell + t.SitcNetBuySell + t.DealersNetBuySell
}

// StockInstitutional is the institutional breakdown for one equity and date.
type StockInstitutional struct {
	Date     string `json:"date"`
	Exchange string `json:"exchange,omitempty"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	InstInvestorsTrades
}

// MarketInstitutional is the whole-market institutional breakdown by value.
type MarketInstitutional struct {
	Date   string `json:"date"`
	Market string `json:"market"`
	InstInvestorsTrades
}

// FutOptInstitutional is the institutional breakdown for one derivatives
// product, in contracts and in notional value.
type FutOptInstitutional struct {
	Date   string `json:"date"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`

	FiniLongOI     float64 `json:"fini_long_oi"`
	FiniShortOI    float64 `json:"fini_short_oi"`
	FiniNetOI      float64 `json:"fini_net_oi"`
	SitcLongOI     float64 `json:"sitc_long_oi"`
	SitcShortOI    float64 `json:"sitc_short_oi"`
	SitcNetOI      float64 `json:"sitc_net_oi"`
	DealersLongOI  float64 `json:"dealers_long_oi"`
	DealersShortOI float64 `json:"dealers_short_oi"`
	DealersNetOI   float64 `json:"dealers_net_oi"`

	FiniLongVolume     float64 `json:"fini_long_volume"`
	FiniShortVolume    float64 `json:"fini_short_volume"`
	FiniNetVolume      float64 `json:"fini_net_volume"`
	SitcLongVolume     float64 `json:"sitc_long_volume"`
	SitcShortVolume    float64 `json:"sitc_short_volume"`
	SitcNetVolume      float64 `json:"sitc_net_volume"`
	DealersLongVolume  float64 `json:"dealers_long_volume"`
	DealersShortVolume float64 `json:"dealers_short_volume"`
	DealersNetVolume   float64 `json:"dealers_net_volume"`

	TotalLongOI  float64 `json:"total_long_oi"`
	TotalShortOI float64 `json:"total_short_oi"`
	TotalNetOI   float64 `json:"total_net_oi"`
}
