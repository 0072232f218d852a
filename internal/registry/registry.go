// Package registry constructs and memoizes the source clients. Each
// upstream source gets exactly one client instance per Registry, built
// lazily from the shared configuration on first use.
package registry

import (
	"sync"

	"github.com/twmarket/twmarket/internal/clients/isin"
	"github.com/twmarket/twmarket/internal/clients/mistaifex"
	"github.com/twmarket/twmarket/internal/clients/mistwse"
	"github.com/twmarket/twmarket/internal/clients/mops"
	"github.com/twmarket/twmarket/internal/clients/taifex"
	"github.com/twmarket/twmarket/internal/clients/tdcc"
	"github.com/twmarket/twmarket/internal/clients/tpex"
	"github.com/twmarket/twmarket/internal/clients/twse"
	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/internal/interfaces"
	"github.com/twmarket/twmarket/models"
)

// Registry hands out the per-source clients. Construction is memoized
// with sync.Once so concurrent callers share a single instance and its
// rate limiter.
type Registry struct {
	config *common.Config
	logger *common.Logger

	isinOnce   sync.Once
	isinClient interfaces.TickerDirectory

	twseOnce   sync.Once
	twseClient interfaces.EquityClient

	tpexOnce   sync.Once
	tpexClient interfaces.EquityClient

	taifexOnce   sync.Once
	taifexClient interfaces.FutOptClient

	tdccOnce   sync.Once
	tdccClient interfaces.DepositoryClient

	mopsOnce   sync.Once
	mopsClient interfaces.DisclosureClient

	misTWSEOnce   sync.Once
	misTWSEClient interfaces.RealtimeEquityClient

	misTAIFEXOnce   sync.Once
	misTAIFEXClient interfaces.RealtimeFutOptClient
}

// New creates a registry over the given configuration. A nil config
// falls back to the defaults.
func New(config *common.Config, logger *common.Logger) *Registry {
	if config == nil {
		config = common.NewDefaultConfig()
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Registry{config: config, logger: logger}
}

// ISIN returns the securities registry client.
func (r *Registry) ISIN() interfaces.TickerDirectory {
	r.isinOnce.Do(func() {
		cfg := r.config.Sources.ISIN
		r.isinClient = isin.NewClient(
			isin.WithBaseURL(cfg.BaseURL),
			isin.WithLogger(r.logger),
			isin.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			isin.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.isinClient
}

// TWSE returns the listed-market data client.
func (r *Registry) TWSE() interfaces.EquityClient {
	r.twseOnce.Do(func() {
		cfg := r.config.Sources.TWSE
		r.twseClient = twse.NewClient(
			twse.WithBaseURL(cfg.BaseURL),
			twse.WithLogger(r.logger),
			twse.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			twse.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.twseClient
}

// TPEx returns the over-the-counter market data client.
func (r *Registry) TPEx() interfaces.EquityClient {
	r.tpexOnce.Do(func() {
		cfg := r.config.Sources.TPEx
		r.tpexClient = tpex.NewClient(
			tpex.WithBaseURL(cfg.BaseURL),
			tpex.WithLogger(r.logger),
			tpex.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			tpex.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.tpexClient
}

// Equity returns the venue client for a market. The over-the-counter
// market maps to TPEx and everything else to TWSE.
func (r *Registry) Equity(market models.Market) interfaces.EquityClient {
	if market == models.MarketOTC {
		return r.TPEx()
	}
	return r.TWSE()
}

// TAIFEX returns the futures exchange data client.
func (r *Registry) TAIFEX() interfaces.FutOptClient {
	r.taifexOnce.Do(func() {
		cfg := r.config.Sources.TAIFEX
		r.taifexClient = taifex.NewClient(
			taifex.WithBaseURL(cfg.BaseURL),
			taifex.WithLogger(r.logger),
			taifex.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			taifex.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.taifexClient
}

// TDCC returns the depository client.
func (r *Registry) TDCC() interfaces.DepositoryClient {
	r.tdccOnce.Do(func() {
		cfg := r.config.Sources.TDCC
		r.tdccClient = tdcc.NewClient(
			tdcc.WithBaseURL(cfg.BaseURL),
			tdcc.WithLogger(r.logger),
			tdcc.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			tdcc.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.tdccClient
}

// MOPS returns the filing portal client.
func (r *Registry) MOPS() interfaces.DisclosureClient {
	r.mopsOnce.Do(func() {
		cfg := r.config.Sources.MOPS
		r.mopsClient = mops.NewClient(
			mops.WithBaseURL(cfg.BaseURL),
			mops.WithLogger(r.logger),
			mops.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			mops.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.mopsClient
}

// MisTWSE returns the realtime equity feed client.
func (r *Registry) MisTWSE() interfaces.RealtimeEquityClient {
	r.misTWSEOnce.Do(func() {
		cfg := r.config.Sources.MisTWSE
		r.misTWSEClient = mistwse.NewClient(
			mistwse.WithBaseURL(cfg.BaseURL),
			mistwse.WithLogger(r.logger),
			mistwse.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			mistwse.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.misTWSEClient
}

// MisTAIFEX returns the realtime derivatives feed client.
func (r *Registry) MisTAIFEX() interfaces.RealtimeFutOptClient {
	r.misTAIFEXOnce.Do(func() {
		cfg := r.config.Sources.MisTAIFEX
		r.misTAIFEXClient = mistaifex.NewClient(
			mistaifex.WithBaseURL(cfg.BaseURL),
			mistaifex.WithLogger(r.logger),
			mistaifex.WithRateLimit(cfg.RateLimit, cfg.GetRateWindow()),
			mistaifex.WithTimeout(cfg.GetTimeout()),
		)
	})
	return r.misTAIFEXClient
}
