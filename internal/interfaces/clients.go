// Package interfaces defines source client contracts for twmarket
package interfaces

import (
	"context"

	"github.com/twmarket/twmarket/models"
)

// TickerDirectory enumerates and looks up listed securities in the ISIN
// registry. Directory loads return every record for a market so callers
// can cache in bulk.
type TickerDirectory interface {
	// ListTickers retrieves the full directory for one market
	ListTickers(ctx context.Context, market models.Market) ([]*models.Ticker, error)

	// LookupTicker performs a single-symbol point lookup. Returns nil
	// (no error) when the registry has no such symbol.
	LookupTicker(ctx context.Context, symbol string) (*models.Ticker, error)
}

// EquityClient is the after-trading data contract shared by the two
// trading venues (TWSE and TPEx). A nil record or empty slice with a nil
// error is the upstream "no data for this query" outcome, not a failure.
type EquityClient interface {
	// StocksHistorical retrieves one day of OHLCV rows for every equity
	StocksHistorical(ctx context.Context, date string) ([]*models.StockHistorical, error)

	// StocksInstitutional retrieves the institutional investor breakdown per equity
	StocksInstitutional(ctx context.Context, date string) ([]*models.StockInstitutional, error)

	// StocksFiniHoldings retrieves foreign holdings per equity
	StocksFiniHoldings(ctx context.Context, date string) ([]*models.FiniHoldings, error)

	// StocksMarginTrades retrieves margin trading activity per equity
	StocksMarginTrades(ctx context.Context, date string) ([]*models.MarginTrades, error)

	// StocksShortSales retrieves short sale activity per equity
	StocksShortSales(ctx context.Context, date string) ([]*models.ShortSales, error)

	// StocksValues retrieves valuation ratios per equity
	StocksValues(ctx context.Context, date string) ([]*models.StockValues, error)

	// StocksDividends retrieves ex-dividend rows within a date range,
	// enriched with per-symbol detail
	StocksDividends(ctx context.Context, startDate, endDate string) ([]*models.Dividend, error)

	// StocksCapitalReductions retrieves capital reduction resumptions
	// within a date range, enriched with per-symbol detail
	StocksCapitalReductions(ctx context.Context, startDate, endDate string) ([]*models.CapitalReduction, error)

	// StocksSplits retrieves par-value change resumptions within a date
	// range, enriched with per-symbol detail
	StocksSplits(ctx context.Context, startDate, endDate string) ([]*models.Split, error)

	// IndicesHistorical derives daily index OHLC from intraday snapshots
	IndicesHistorical(ctx context.Context, date string) ([]*models.IndexHistorical, error)

	// IndicesTrades retrieves per-sector trading value
	IndicesTrades(ctx context.Context, date string) ([]*models.IndexTrades, error)

	// MarketTrades retrieves the whole-market trading summary
	MarketTrades(ctx context.Context, date string) (*models.MarketTrades, error)

	// MarketBreadth retrieves the advance/decline summary
	MarketBreadth(ctx context.Context, date string) (*models.MarketBreadth, error)

	// MarketInstitutional retrieves the whole-market institutional breakdown
	MarketInstitutional(ctx context.Context, date string) (*models.MarketInstitutional, error)

	// MarketMarginTrades retrieves the whole-market margin summary
	MarketMarginTrades(ctx context.Context, date string) (*models.MarketMarginTrades, error)
}

// FutOptClient provides the futures exchange's downloadable data.
type FutOptClient interface {
	// ListContracts retrieves the tradable product directory
	ListContracts(ctx context.Context, availableOnly bool) ([]*models.Ticker, error)

	// Historical retrieves one day of per-contract rows for a product,
	// or all products when symbol is empty
	Historical(ctx context.Context, date, symbol string, afterhours bool) ([]*models.FutOptHistorical, error)

	// Institutional retrieves the institutional breakdown per product
	Institutional(ctx context.Context, date, symbol string) ([]*models.FutOptInstitutional, error)

	// LargeTraders retrieves large trader concentration per product
	LargeTraders(ctx context.Context, date, symbol string) ([]*models.LargeTraders, error)

	// PutCallRatio retrieves the TXO put/call ratio for a date
	PutCallRatio(ctx context.Context, date string) (*models.PutCallRatio, error)

	// ExchangeRates retrieves the daily FX fixing
	ExchangeRates(ctx context.Context, date string) (*models.ExchangeRates, error)
}

// DepositoryClient provides shareholder distribution data.
type DepositoryClient interface {
	// QueryDistribution runs the interactive session-token query for one
	// symbol and date
	QueryDistribution(ctx context.Context, symbol, date string) (*models.ShareholderDistribution, error)

	// LatestDistributions retrieves the standing weekly open-data feed
	LatestDistributions(ctx context.Context) ([]*models.ShareholderDistribution, error)
}

// DisclosureClient provides financial disclosures from the filing portal.
type DisclosureClient interface {
	// EPS retrieves quarterly earnings per share for one market
	EPS(ctx context.Context, market models.Market, year, quarter int) ([]*models.EPS, error)

	// Revenue retrieves monthly revenue for one market
	Revenue(ctx context.Context, market models.Market, year, month int, foreign bool) ([]*models.Revenue, error)
}

// RealtimeEquityClient provides realtime quotes for equities and indices.
type RealtimeEquityClient interface {
	// StockQuote retrieves a live snapshot for one equity; odd selects
	// the odd-lot session
	StockQuote(ctx context.Context, ticker *models.Ticker, odd bool) (*models.Quote, error)

	// IndexQuote retrieves a live snapshot for one index
	IndexQuote(ctx context.Context, ticker *models.Ticker) (*models.Quote, error)

	// ListIndices retrieves the index directory for both markets
	ListIndices(ctx context.Context) ([]*models.Ticker, error)
}

// RealtimeFutOptClient provides realtime derivatives quotes.
type RealtimeFutOptClient interface {
	// Quote retrieves a live snapshot for one contract; afterhours
	// selects the after-hours session
	Quote(ctx context.Context, ticker *models.Ticker, afterhours bool) (*models.FutOptQuote, error)
}
