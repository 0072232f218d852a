// Package tickers memoizes symbol resolution. Resolution is the gate in
// front of every per-symbol operation: directory loads are batched and
// cached so repeated lookups never touch the network twice.
package tickers

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/twmarket/twmarket/internal/interfaces"
	"github.com/twmarket/twmarket/models"
)

// ErrSymbolNotFound is returned when a symbol cannot be resolved in any
// directory the cache knows about.
var ErrSymbolNotFound = errors.New("symbol not found")

// Filter narrows a List call. Zero-value fields match everything.
type Filter struct {
	Exchange models.Exchange
	Market   models.Market
	Type     string
	Industry string
}

func (f Filter) matches(t *models.Ticker) bool {
	if f.Exchange != models.ExchangeNone && t.Exchange != f.Exchange {
		return false
	}
	if f.Market != models.MarketNone && t.Market != f.Market {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Industry != "" && t.Industry != f.Industry {
		return false
	}
	return true
}

// Cache resolves symbols against three independent namespaces: listed
// securities, indices, and derivatives contracts. Each namespace is
// filled in bulk on first use and guarded by a read-write mutex.
// Concurrent first resolutions may race to load the same directory;
// the loads are idempotent so the duplicate work is harmless.
type Cache struct {
	directory interfaces.TickerDirectory
	realtime  interfaces.RealtimeEquityClient
	futopt    interfaces.FutOptClient

	mu sync.RWMutex

	stocks       map[string]*models.Ticker
	stocksOrder  []string
	stocksLoaded bool

	indices       map[string]*models.Ticker
	indicesOrder  []string
	indicesLoaded bool

	contracts       map[string]*models.Ticker
	contractsOrder  []string
	contractsLoaded bool
}

// NewCache creates a resolver cache over the given directory sources.
func NewCache(directory interfaces.TickerDirectory, realtime interfaces.RealtimeEquityClient, futopt interfaces.FutOptClient) *Cache {
	return &Cache{
		directory: directory,
		realtime:  realtime,
		futopt:    futopt,
		stocks:    make(map[string]*models.Ticker),
		indices:   make(map[string]*models.Ticker),
		contracts: make(map[string]*models.Ticker),
	}
}

func (c *Cache) lookup(m map[string]*models.Ticker, symbol string) (*models.Ticker, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := m[symbol]
	return t, ok
}

func (c *Cache) store(m map[string]*models.Ticker, order *[]string, batch []*models.Ticker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range batch {
		if _, seen := m[t.Symbol]; !seen {
			*order = append(*order, t.Symbol)
		}
		m[t.Symbol] = t
	}
}

// loadStocks fills the securities namespace from both trading venues.
// The two directory loads run concurrently.
func (c *Cache) loadStocks(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.stocksLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	var listed, otc []*models.Ticker
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listed, err = c.directory.ListTickers(gctx, models.MarketTSE)
		return err
	})
	g.Go(func() error {
		var err error
		otc, err = c.directory.ListTickers(gctx, models.MarketOTC)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.store(c.stocks, &c.stocksOrder, listed)
	c.store(c.stocks, &c.stocksOrder, otc)

	c.mu.Lock()
	c.stocksLoaded = true
	c.mu.Unlock()
	return nil
}

func (c *Cache) loadIndices(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.indicesLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	batch, err := c.realtime.ListIndices(ctx)
	if err != nil {
		return err
	}
	c.store(c.indices, &c.indicesOrder, batch)

	c.mu.Lock()
	c.indicesLoaded = true
	c.mu.Unlock()
	return nil
}

func (c *Cache) loadContracts(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.contractsLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	batch, err := c.futopt.ListContracts(ctx, false)
	if err != nil {
		return err
	}
	c.store(c.contracts, &c.contractsOrder, batch)

	c.mu.Lock()
	c.contractsLoaded = true
	c.mu.Unlock()
	return nil
}

// ResolveStock resolves a listed security. A symbol missing from the
// bulk directory gets one point lookup before ErrSymbolNotFound.
func (c *Cache) ResolveStock(ctx context.Context, symbol string) (*models.Ticker, error) {
	if t, ok := c.lookup(c.stocks, symbol); ok {
		return t, nil
	}
	if err := c.loadStocks(ctx); err != nil {
		return nil, err
	}
	if t, ok := c.lookup(c.stocks, symbol); ok {
		return t, nil
	}

	t, err := c.directory.LookupTicker(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrSymbolNotFound
	}
	c.store(c.stocks, &c.stocksOrder, []*models.Ticker{t})
	return t, nil
}

// ResolveIndex resolves an index by its feed symbol.
func (c *Cache) ResolveIndex(ctx context.Context, symbol string) (*models.Ticker, error) {
	if t, ok := c.lookup(c.indices, symbol); ok {
		return t, nil
	}
	if err := c.loadIndices(ctx); err != nil {
		return nil, err
	}
	if t, ok := c.lookup(c.indices, symbol); ok {
		return t, nil
	}
	return nil, ErrSymbolNotFound
}

// ResolveIndexByName resolves an index by its display name.
func (c *Cache) ResolveIndexByName(ctx context.Context, name string) (*models.Ticker, error) {
	find := func() *models.Ticker {
		c.mu.RLock()
		defer c.mu.RUnlock()
		for _, sym := range c.indicesOrder {
			if t := c.indices[sym]; t.Name == name {
				return t
			}
		}
		return nil
	}

	if t := find(); t != nil {
		return t, nil
	}
	if err := c.loadIndices(ctx); err != nil {
		return nil, err
	}
	if t := find(); t != nil {
		return t, nil
	}
	return nil, ErrSymbolNotFound
}

// ResolveContract resolves a derivatives product symbol.
func (c *Cache) ResolveContract(ctx context.Context, symbol string) (*models.Ticker, error) {
	if t, ok := c.lookup(c.contracts, symbol); ok {
		return t, nil
	}
	if err := c.loadContracts(ctx); err != nil {
		return nil, err
	}
	if t, ok := c.lookup(c.contracts, symbol); ok {
		return t, nil
	}
	return nil, ErrSymbolNotFound
}

func (c *Cache) list(m map[string]*models.Ticker, order *[]string, filter Filter) []*models.Ticker {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*models.Ticker
	for _, sym := range *order {
		if t := m[sym]; filter.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// ListStocks returns cached securities matching the filter, loading the
// directory first if needed. Insertion order is preserved.
func (c *Cache) ListStocks(ctx context.Context, filter Filter) ([]*models.Ticker, error) {
	if err := c.loadStocks(ctx); err != nil {
		return nil, err
	}
	return c.list(c.stocks, &c.stocksOrder, filter), nil
}

// ListIndices returns cached indices matching the filter.
func (c *Cache) ListIndices(ctx context.Context, filter Filter) ([]*models.Ticker, error) {
	if err := c.loadIndices(ctx); err != nil {
		return nil, err
	}
	return c.list(c.indices, &c.indicesOrder, filter), nil
}

// ListContracts returns cached derivatives products matching the filter.
func (c *Cache) ListContracts(ctx context.Context, filter Filter) ([]*models.Ticker, error) {
	if err := c.loadContracts(ctx); err != nil {
		return nil, err
	}
	return c.list(c.contracts, &c.contractsOrder, filter), nil
}
