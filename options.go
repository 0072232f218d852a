package twmarket

import (
	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Options selects what an operation fetches. Fields are recognized
// per operation; unrecognized fields are ignored.
type Options struct {
	// Date scopes single-day operations, ISO yyyy-MM-dd. Defaults to
	// today in Taipei time.
	Date string

	// StartDate and EndDate scope range operations. Each defaults to
	// Date when empty.
	StartDate string
	EndDate   string

	// Symbol selects one instrument. Per-symbol operations resolve it
	// first and dispatch on the resolved venue.
	Symbol string

	// Exchange and Market select a venue for operations called without
	// a symbol.
	Exchange models.Exchange
	Market   models.Market

	// Type and Industry narrow directory listings by security type
	// ("ETF", "期貨", ...) and industry code.
	Type     string
	Industry string

	// Disclosure period selectors. Year is Gregorian.
	Year    int
	Quarter int
	Month   int

	// Foreign selects the foreign-issuer revenue listing.
	Foreign bool

	// Odd selects the odd-lot session for realtime equity quotes.
	Odd bool

	// AfterHours selects the after-hours derivatives session.
	AfterHours bool

	// AvailableContracts restricts the contract listing to products
	// currently open for trading.
	AvailableContracts bool
}

// date returns the effective single-day scope.
func (o Options) date() string {
	if o.Date == "" {
		return common.Today()
	}
	return o.Date
}

// dateRange returns the effective [start, end] scope.
func (o Options) dateRange() (string, string) {
	start, end := o.StartDate, o.EndDate
	if start == "" {
		start = o.date()
	}
	if end == "" {
		end = start
	}
	return start, end
}

// venue returns the explicit venue selection, defaulting to the listed
// market.
func (o Options) venue() (models.Exchange, models.Market) {
	ex, market := o.Exchange, o.Market
	if ex == models.ExchangeNone && market != models.MarketNone {
		switch market {
		case models.MarketTSE:
			ex = models.ExchangeTWSE
		case models.MarketOTC:
			ex = models.ExchangeTPEx
		case models.MarketFutOpt:
			ex = models.ExchangeTAIFEX
		}
	}
	if ex == models.ExchangeNone {
		ex = models.ExchangeTWSE
	}
	if market == models.MarketNone {
		market = models.MarketFor(ex)
	}
	return ex, market
}
