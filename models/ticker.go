// Package models defines the normalized record shapes returned by twmarket
package models

import "time"

// Exchange identifies the venue operating a listing.
type Exchange string

const (
	ExchangeTWSE   Exchange = "TWSE"   // Taiwan Stock Exchange
	ExchangeTPEx   Exchange = "TPEx"   // Taipei Exchange
	ExchangeTAIFEX Exchange = "TAIFEX" // Taiwan Futures Exchange
	ExchangeNone   Exchange = ""
)

// Market identifies the trading market a listing belongs to.
type Market string

const (
	MarketTSE    Market = "TSE" // listed market, operated by TWSE
	MarketOTC    Market = "OTC" // over-the-counter market, operated by TPEx
	MarketFutOpt Market = "FUTOPT"
	MarketNone   Market = ""
)

// ParseExchange maps an upstream venue label to an Exchange.
// Unknown labels resolve to ExchangeNone, never an error.
func ParseExchange(s string) Exchange {
	switch s {
	case "TWSE", "上市", "臺灣證券交易所":
		return ExchangeTWSE
	case "TPEx", "上櫃", "證券櫃檯買賣中心":
		return ExchangeTPEx
	case "TAIFEX", "期貨", "臺灣期貨交易所":
		return ExchangeTAIFEX
	}
	return ExchangeNone
}

// ParseMarket maps an upstream market label to a Market.
func ParseMarket(s string) Market {
	switch s {
	case "TSE", "上市":
		return MarketTSE
	case "OTC", "上櫃":
		return MarketOTC
	case "FUTOPT", "期貨及選擇權":
		return MarketFutOpt
	}
	return MarketNone
}

// MarketFor returns the market a venue trades.
func MarketFor(ex Exchange) Market {
	switch ex {
	case ExchangeTWSE:
		return MarketTSE
	case ExchangeTPEx:
		return MarketOTC
	case ExchangeTAIFEX:
		return MarketFutOpt
	}
	return MarketNone
}

// Ticker is the resolved identity and venue metadata for a tradable symbol.
// Tickers are created on first resolution and never mutated afterwards.
type Ticker struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Exchange   Exchange  `json:"exchange"`
	Market     Market    `json:"market"`
	Type       string    `json:"type,omitempty"`     // security type ("股票", "ETF", futures/options class, ...)
	Industry   string    `json:"industry,omitempty"` // industry code where the registry reports one
	ListedDate time.Time `json:"listed_date,omitzero"`
	// ChannelKey is the venue channel identifier used by the realtime
	// quote feed (e.g. "tse_2330.tw"). Empty for derivatives.
	ChannelKey string `json:"channel_key,omitempty"`
}
