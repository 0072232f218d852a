package twmarket

import (
	"context"

	"github.com/twmarket/twmarket/models"
)

// MarketService groups the whole-market summary operations. The venue
// is selected with the Exchange or Market option, defaulting to the
// listed market.
type MarketService struct {
	client *Client
}

// Trades retrieves the daily whole-market trading summary.
func (s *MarketService) Trades(ctx context.Context, opts Options) (*models.MarketTrades, error) {
	ex, _ := opts.venue()
	return s.client.equityFor(ex).MarketTrades(ctx, opts.date())
}

// Breadth retrieves the advance/decline summary.
func (s *MarketService) Breadth(ctx context.Context, opts Options) (*models.MarketBreadth, error) {
	ex, _ := opts.venue()
	return s.client.equityFor(ex).MarketBreadth(ctx, opts.date())
}

// Institutional retrieves the whole-market institutional breakdown.
func (s *MarketService) Institutional(ctx context.Context, opts Options) (*models.MarketInstitutional, error) {
	ex, _ := opts.venue()
	return s.client.equityFor(ex).MarketInstitutional(ctx, opts.date())
}

// MarginTrades retrieves the whole-market margin summary.
func (s *MarketService) MarginTrades(ctx context.Context, opts Options) (*models.MarketMarginTrades, error) {
	ex, _ := opts.venue()
	return s.client.equityFor(ex).MarketMarginTrades(ctx, opts.date())
}
