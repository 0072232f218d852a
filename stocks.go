package twmarket

import (
	"context"

	"github.com/twmarket/twmarket/internal/interfaces"
	"github.com/twmarket/twmarket/internal/tickers"
	"github.com/twmarket/twmarket/models"
)

// StocksService groups the per-equity operations. Operations taking an
// optional Symbol resolve it first and dispatch on the resolved venue;
// without a symbol the explicit Exchange/Market option selects the venue
// and the full collection is returned.
type StocksService struct {
	client *Client
}

// equityFor returns the venue client for an exchange.
func (c *Client) equityFor(ex models.Exchange) interfaces.EquityClient {
	return c.registry.Equity(models.MarketFor(ex))
}

// equityScope resolves the venue and symbol filter for one call. With a
// symbol the resolved ticker decides the venue; otherwise the explicit
// venue options apply.
func (c *Client) equityScope(ctx context.Context, opts Options) (interfaces.EquityClient, string, error) {
	if opts.Symbol != "" {
		ticker, err := c.tickers.ResolveStock(ctx, opts.Symbol)
		if err != nil {
			return nil, "", err
		}
		return c.equityFor(ticker.Exchange), ticker.Symbol, nil
	}
	ex, _ := opts.venue()
	return c.equityFor(ex), "", nil
}

// keep filters a collection down to one symbol when one was requested.
func keep[T any](records []*T, symbol string, symbolOf func(*T) string) []*T {
	if symbol == "" {
		return records
	}
	for _, r := range records {
		if symbolOf(r) == symbol {
			return []*T{r}
		}
	}
	return nil
}

// List returns the cached securities directory, optionally narrowed by
// Exchange, Market, or Symbol.
func (s *StocksService) List(ctx context.Context, opts Options) ([]*models.Ticker, error) {
	records, err := s.client.tickers.ListStocks(ctx, tickers.Filter{
		Exchange: opts.Exchange,
		Market:   opts.Market,
		Type:     opts.Type,
		Industry: opts.Industry,
	})
	if err != nil {
		return nil, err
	}
	return keep(records, opts.Symbol, func(t *models.Ticker) string { return t.Symbol }), nil
}

// Quote retrieves a realtime snapshot for one equity. Odd selects the
// odd-lot session.
func (s *StocksService) Quote(ctx context.Context, opts Options) (*models.Quote, error) {
	if opts.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	ticker, err := s.client.tickers.ResolveStock(ctx, opts.Symbol)
	if err != nil {
		return nil, err
	}
	return s.client.registry.MisTWSE().StockQuote(ctx, ticker, opts.Odd)
}

// Historical retrieves one day of OHLCV rows.
func (s *StocksService) Historical(ctx context.Context, opts Options) ([]*models.StockHistorical, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := venue.StocksHistorical(ctx, opts.date())
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.StockHistorical) string { return r.Symbol }), nil
}

// Institutional retrieves the institutional investor breakdown.
func (s *StocksService) Institutional(ctx context.Context, opts Options) ([]*models.StockInstitutional, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := venue.StocksInstitutional(ctx, opts.date())
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.StockInstitutional) string { return r.Symbol }), nil
}

// FiniHoldings retrieves foreign investor holdings.
func (s *StocksService) FiniHoldings(ctx context.Context, opts Options) ([]*models.FiniHoldings, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := venue.StocksFiniHoldings(ctx, opts.date())
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.FiniHoldings) string { return r.Symbol }), nil
}

// MarginTrades retrieves margin trading activity.
func (s *StocksService) MarginTrades(ctx context.Context, opts Options) ([]*models.MarginTrades, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := venue.StocksMarginTrades(ctx, opts.date())
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.MarginTrades) string { return r.Symbol }), nil
}

// ShortSales retrieves short sale activity.
func (s *StocksService) ShortSales(ctx context.Context, opts Options) ([]*models.ShortSales, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := venue.StocksShortSales(ctx, opts.date())
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.ShortSales) string { return r.Symbol }), nil
}

// Values retrieves per-equity valuation ratios.
func (s *StocksService) Values(ctx context.Context, opts Options) ([]*models.StockValues, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := venue.StocksValues(ctx, opts.date())
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.StockValues) string { return r.Symbol }), nil
}

// Dividends retrieves ex-dividend rows within the date range, enriched
// with per-symbol detail.
func (s *StocksService) Dividends(ctx context.Context, opts Options) ([]*models.Dividend, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	start, end := opts.dateRange()
	records, err := venue.StocksDividends(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.Dividend) string { return r.Symbol }), nil
}

// CapitalReductions retrieves capital reduction resumptions within the
// date range, enriched with per-symbol detail.
func (s *StocksService) CapitalReductions(ctx context.Context, opts Options) ([]*models.CapitalReduction, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	start, end := opts.dateRange()
	records, err := venue.StocksCapitalReductions(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.CapitalReduction) string { return r.Symbol }), nil
}

// Splits retrieves par-value change resumptions within the date range,
// enriched with per-symbol detail.
func (s *StocksService) Splits(ctx context.Context, opts Options) ([]*models.Split, error) {
	venue, symbol, err := s.client.equityScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	start, end := opts.dateRange()
	records, err := venue.StocksSplits(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.Split) string { return r.Symbol }), nil
}

// Shareholders retrieves the shareholder distribution for one equity.
// With a Date the interactive depository query is used; without one the
// standing weekly feed is filtered to the symbol.
func (s *StocksService) Shareholders(ctx context.Context, opts Options) (*models.ShareholderDistribution, error) {
	if opts.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	ticker, err := s.client.tickers.ResolveStock(ctx, opts.Symbol)
	if err != nil {
		return nil, err
	}

	depository := s.client.registry.TDCC()
	if opts.Date != "" {
		return depository.QueryDistribution(ctx, ticker.Symbol, opts.Date)
	}

	records, err := depository.LatestDistributions(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Symbol == ticker.Symbol {
			return r, nil
		}
	}
	return nil, nil
}

// disclosureScope validates the mutually exclusive symbol / exchange
// selectors and resolves the target market. Symbol calls return the
// filter symbol alongside.
func (c *Client) disclosureScope(ctx context.Context, opts Options) (models.Market, string, error) {
	hasSymbol := opts.Symbol != ""
	hasExchange := opts.Exchange != models.ExchangeNone
	switch {
	case hasSymbol && hasExchange:
		return models.MarketNone, "", ErrConflictingSelectors
	case !hasSymbol && !hasExchange:
		return models.MarketNone, "", ErrMissingSelector
	case hasSymbol:
		ticker, err := c.tickers.ResolveStock(ctx, opts.Symbol)
		if err != nil {
			return models.MarketNone, "", err
		}
		return ticker.Market, ticker.Symbol, nil
	default:
		return models.MarketFor(opts.Exchange), "", nil
	}
}

// EPS retrieves quarterly earnings per share. Exactly one of Symbol or
// Exchange must be given.
func (s *StocksService) EPS(ctx context.Context, opts Options) ([]*models.EPS, error) {
	market, symbol, err := s.client.disclosureScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := s.client.registry.MOPS().EPS(ctx, market, opts.Year, opts.Quarter)
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.EPS) string { return r.Symbol }), nil
}

// Revenue retrieves monthly revenue. Exactly one of Symbol or Exchange
// must be given.
func (s *StocksService) Revenue(ctx context.Context, opts Options) ([]*models.Revenue, error) {
	market, symbol, err := s.client.disclosureScope(ctx, opts)
	if err != nil {
		return nil, err
	}
	records, err := s.client.registry.MOPS().Revenue(ctx, market, opts.Year, opts.Month, opts.Foreign)
	if err != nil {
		return nil, err
	}
	return keep(records, symbol, func(r *models.Revenue) string { return r.Symbol }), nil
}
