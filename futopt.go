package twmarket

import (
	"context"
	"math"

	"github.com/twmarket/twmarket/internal/tickers"
	"github.com/twmarket/twmarket/models"
)

// Mini and micro TAIEX futures, the products retail position is derived
// for.
const (
	symbolMXF = "MXF"
	symbolTMF = "TMF"
)

// FutOptService groups the derivatives operations.
type FutOptService struct {
	client *Client
}

// List returns the derivatives product directory. AvailableContracts
// restricts it to products currently open for trading.
func (s *FutOptService) List(ctx context.Context, opts Options) ([]*models.Ticker, error) {
	if opts.AvailableContracts {
		records, err := s.client.registry.TAIFEX().ListContracts(ctx, true)
		if err != nil {
			return nil, err
		}
		return keep(records, opts.Symbol, func(t *models.Ticker) string { return t.Symbol }), nil
	}

	records, err := s.client.tickers.ListContracts(ctx, tickers.Filter{})
	if err != nil {
		return nil, err
	}
	return keep(records, opts.Symbol, func(t *models.Ticker) string { return t.Symbol }), nil
}

// Quote retrieves a realtime snapshot for one contract. AfterHours
// selects the after-hours session.
func (s *FutOptService) Quote(ctx context.Context, opts Options) (*models.FutOptQuote, error) {
	if opts.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	ticker, err := s.client.tickers.ResolveContract(ctx, opts.Symbol)
	if err != nil {
		return nil, err
	}
	return s.client.registry.MisTAIFEX().Quote(ctx, ticker, opts.AfterHours)
}

// contractSymbol resolves the optional product selector.
func (s *FutOptService) contractSymbol(ctx context.Context, opts Options) (string, error) {
	if opts.Symbol == "" {
		return "", nil
	}
	ticker, err := s.client.tickers.ResolveContract(ctx, opts.Symbol)
	if err != nil {
		return "", err
	}
	return ticker.Symbol, nil
}

// Historical retrieves one day of per-contract rows, for one product or
// for all of them.
func (s *FutOptService) Historical(ctx context.Context, opts Options) ([]*models.FutOptHistorical, error) {
	symbol, err := s.contractSymbol(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.client.registry.TAIFEX().Historical(ctx, opts.date(), symbol, opts.AfterHours)
}

// Institutional retrieves the institutional breakdown per product.
func (s *FutOptService) Institutional(ctx context.Context, opts Options) ([]*models.FutOptInstitutional, error) {
	symbol, err := s.contractSymbol(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.client.registry.TAIFEX().Institutional(ctx, opts.date(), symbol)
}

// LargeTraders retrieves large trader concentration per product.
func (s *FutOptService) LargeTraders(ctx context.Context, opts Options) ([]*models.LargeTraders, error) {
	symbol, err := s.contractSymbol(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.client.registry.TAIFEX().LargeTraders(ctx, opts.date(), symbol)
}

// retailPosition derives the retail open interest for one product:
// whatever part of the total open interest the three institutional
// identities do not hold.
func (s *FutOptService) retailPosition(ctx context.Context, date, symbol string) (*models.RetailPosition, error) {
	taifex := s.client.registry.TAIFEX()

	historical, err := taifex.Historical(ctx, date, symbol, false)
	if err != nil {
		return nil, err
	}
	if len(historical) == 0 {
		return nil, nil
	}

	var totalOI float64
	for _, row := range historical {
		totalOI += row.OpenInterest
	}

	institutional, err := taifex.Institutional(ctx, date, symbol)
	if err != nil {
		return nil, err
	}
	if len(institutional) == 0 {
		return nil, nil
	}
	inst := institutional[0]

	retailLong := totalOI - inst.TotalLongOI
	retailShort := totalOI - inst.TotalShortOI
	netOI := retailLong - retailShort

	position := &models.RetailPosition{
		Date:          date,
		Symbol:        symbol,
		RetailLongOI:  retailLong,
		RetailShortOI: retailShort,
		RetailNetOI:   netOI,
	}
	if totalOI > 0 {
		position.LongShortRatio = math.Round(netOI/totalOI*10000) / 10000
	}
	return position, nil
}

// MXFRetailPosition derives the retail position in mini TAIEX futures.
func (s *FutOptService) MXFRetailPosition(ctx context.Context, opts Options) (*models.RetailPosition, error) {
	return s.retailPosition(ctx, opts.date(), symbolMXF)
}

// TMFRetailPosition derives the retail position in micro TAIEX futures.
func (s *FutOptService) TMFRetailPosition(ctx context.Context, opts Options) (*models.RetailPosition, error) {
	return s.retailPosition(ctx, opts.date(), symbolTMF)
}

// TXOPutCallRatio retrieves the daily TAIEX options put/call ratio.
func (s *FutOptService) TXOPutCallRatio(ctx context.Context, opts Options) (*models.PutCallRatio, error) {
	return s.client.registry.TAIFEX().PutCallRatio(ctx, opts.date())
}

// ExchangeRates retrieves the futures exchange's daily FX fixing.
func (s *FutOptService) ExchangeRates(ctx context.Context, opts Options) (*models.ExchangeRates, error) {
	return s.client.registry.TAIFEX().ExchangeRates(ctx, opts.date())
}
