// Package twmarket retrieves public Taiwan securities and derivatives
// market data. Heterogeneous upstream payloads (Big5 HTML tables,
// positional CSV/JSON arrays, ROC-dated query strings) are normalized
// into the typed records of the models package and exposed through one
// client grouped by asset class.
//
//	client, err := twmarket.New()
//	if err != nil { ... }
//	quote, err := client.Stocks().Quote(ctx, twmarket.Options{Symbol: "2330"})
package twmarket

import (
	"io"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/internal/registry"
	"github.com/twmarket/twmarket/internal/tickers"
)

// Client is the facade over every upstream source. One Client holds one
// instance of each source client and one resolver cache; construct it
// once and share it.
type Client struct {
	registry *registry.Registry
	tickers  *tickers.Cache
	logger   *common.Logger

	stocks  *StocksService
	indices *IndicesService
	market  *MarketService
	futopt  *FutOptService
}

type clientSettings struct {
	configPaths []string
	logLevel    string
	logOutput   io.Writer
}

// Option configures the client
type Option func(*clientSettings)

// WithConfigFile adds a TOML configuration file. Files are merged in
// the order given; missing files are skipped.
func WithConfigFile(path string) Option {
	return func(s *clientSettings) {
		s.configPaths = append(s.configPaths, path)
	}
}

// WithLogLevel enables logging at the given level ("debug", "info", ...).
// The default client is silent.
func WithLogLevel(level string) Option {
	return func(s *clientSettings) {
		s.logLevel = level
	}
}

// WithLogOutput redirects log output. Implies WithLogLevel if none set.
func WithLogOutput(w io.Writer) Option {
	return func(s *clientSettings) {
		s.logOutput = w
	}
}

// New creates a client from the default configuration plus any given
// config files and environment overrides.
func New(opts ...Option) (*Client, error) {
	var settings clientSettings
	for _, opt := range opts {
		opt(&settings)
	}

	config, err := common.LoadConfig(settings.configPaths...)
	if err != nil {
		return nil, err
	}

	logger := common.NewSilentLogger()
	switch {
	case settings.logOutput != nil:
		level := settings.logLevel
		if level == "" {
			level = config.Logging.Level
		}
		logger = common.NewLoggerWithOutput(level, settings.logOutput)
	case settings.logLevel != "":
		logger = common.NewLogger(settings.logLevel)
	}

	reg := registry.New(config, logger)
	cache := tickers.NewCache(reg.ISIN(), reg.MisTWSE(), reg.TAIFEX())

	c := &Client{
		registry: reg,
		tickers:  cache,
		logger:   logger,
	}
	c.stocks = &StocksService{client: c}
	c.indices = &IndicesService{client: c}
	c.market = &MarketService{client: c}
	c.futopt = &FutOptService{client: c}
	return c, nil
}

// Stocks returns the equity operations.
func (c *Client) Stocks() *StocksService { return c.stocks }

// Indices returns the index operations.
func (c *Client) Indices() *IndicesService { return c.indices }

// Market returns the whole-market operations.
func (c *Client) Market() *MarketService { return c.market }

// FutOpt returns the derivatives operations.
func (c *Client) FutOpt() *FutOptService { return c.futopt }
