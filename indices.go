package twmarket

import (
	"context"
	"errors"
	"math"

	"github.com/twmarket/twmarket/internal/tickers"
	"github.com/twmarket/twmarket/models"
)

// IndicesService groups the index operations. Venue payloads identify
// indices by display name; the service maps names back to feed symbols
// through the index directory cache.
type IndicesService struct {
	client *Client
}

// List returns the cached index directory.
func (s *IndicesService) List(ctx context.Context, opts Options) ([]*models.Ticker, error) {
	records, err := s.client.tickers.ListIndices(ctx, tickers.Filter{
		Exchange: opts.Exchange,
		Market:   opts.Market,
	})
	if err != nil {
		return nil, err
	}
	return keep(records, opts.Symbol, func(t *models.Ticker) string { return t.Symbol }), nil
}

// resolveIndex accepts either a feed symbol or a display name.
func (s *IndicesService) resolveIndex(ctx context.Context, symbol string) (*models.Ticker, error) {
	ticker, err := s.client.tickers.ResolveIndex(ctx, symbol)
	if errors.Is(err, ErrSymbolNotFound) {
		return s.client.tickers.ResolveIndexByName(ctx, symbol)
	}
	return ticker, err
}

// Quote retrieves a realtime snapshot for one index.
func (s *IndicesService) Quote(ctx context.Context, opts Options) (*models.Quote, error) {
	if opts.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	ticker, err := s.resolveIndex(ctx, opts.Symbol)
	if err != nil {
		return nil, err
	}
	return s.client.registry.MisTWSE().IndexQuote(ctx, ticker)
}

// symbolsByName builds the display-name lookup for one venue's indices.
func (s *IndicesService) symbolsByName(ctx context.Context, ex models.Exchange) (map[string]string, error) {
	directory, err := s.client.tickers.ListIndices(ctx, tickers.Filter{Exchange: ex})
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(directory))
	for _, t := range directory {
		byName[t.Name] = t.Symbol
	}
	return byName, nil
}

// Historical derives daily index OHLC from the venue's intraday
// snapshots.
func (s *IndicesService) Historical(ctx context.Context, opts Options) ([]*models.IndexHistorical, error) {
	ex, _ := opts.venue()
	symbol := ""
	if opts.Symbol != "" {
		ticker, err := s.resolveIndex(ctx, opts.Symbol)
		if err != nil {
			return nil, err
		}
		ex, symbol = ticker.Exchange, ticker.Symbol
	}

	records, err := s.client.equityFor(ex).IndicesHistorical(ctx, opts.date())
	if err != nil {
		return nil, err
	}

	byName, err := s.symbolsByName(ctx, ex)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		r.Symbol = byName[r.Name]
	}
	return keep(records, symbol, func(r *models.IndexHistorical) string { return r.Symbol }), nil
}

// Trades retrieves per-sector trading value. TradeWeight is derived
// against the same day's whole-market trade value.
func (s *IndicesService) Trades(ctx context.Context, opts Options) ([]*models.IndexTrades, error) {
	ex, _ := opts.venue()
	symbol := ""
	if opts.Symbol != "" {
		ticker, err := s.resolveIndex(ctx, opts.Symbol)
		if err != nil {
			return nil, err
		}
		ex, symbol = ticker.Exchange, ticker.Symbol
	}

	venue := s.client.equityFor(ex)
	date := opts.date()

	records, err := venue.IndicesTrades(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	market, err := venue.MarketTrades(ctx, date)
	if err != nil {
		return nil, err
	}

	byName, err := s.symbolsByName(ctx, ex)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		r.Symbol = byName[r.Name]
		if market != nil && market.TradeValue > 0 {
			r.TradeWeight = math.Round(r.TradeValue/market.TradeValue*10000) / 100
		}
	}
	return keep(records, symbol, func(r *models.IndexTrades) string { return r.Symbol }), nil
}
