// Package isin provides a client for the TWSE ISIN securities registry
package isin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

const (
	DefaultBaseURL   = "https://isin.twse.com.tw/isin"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 3 // requests per second
)

// Column layout of the registry listing table. The parser's correctness
// depends entirely on this index contract.
const (
	colCode       = 0 // security code
	colName       = 1
	colISIN       = 2
	colListedDate = 3 // Gregorian yyyy/MM/dd
	colMarket     = 4 // "上市" / "上櫃"
	colType       = 5 // security type
	colIndustry   = 6 // industry code, equities only
)

const listingColumns = 7

// Client implements the TickerDirectory interface against the ISIN registry.
// Responses are Big5-encoded HTML tables.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit as requests per window
func WithRateLimit(requests int, window time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(requests)/window.Seconds()), requests)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient swaps the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new ISIN registry client. The registry is a public
// endpoint and needs no API key.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// getDocument performs a rate-limited GET and parses the Big5 response body.
func (c *Client) getDocument(ctx context.Context, path string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("ISIN registry request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ISIN registry error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(common.Big5Reader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return doc, nil
}

// ListTickers retrieves the full securities directory for one market.
func (c *Client) ListTickers(ctx context.Context, market models.Market) ([]*models.Ticker, error) {
	var marketCode string
	switch market {
	case models.MarketTSE:
		marketCode = "1"
	case models.MarketOTC:
		marketCode = "2"
	default:
		return nil, fmt.Errorf("unsupported market: %q", market)
	}

	path := fmt.Sprintf("/class_main.jsp?market=%s&issuetype=1&Page=1&chklike=Y", marketCode)
	doc, err := c.getDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	tickers := parseListing(doc)
	c.logger.Debug().Str("market", string(market)).Int("count", len(tickers)).Msg("ISIN directory loaded")
	return tickers, nil
}

// LookupTicker performs a single-symbol point lookup. Returns nil when the
// registry has no matching security.
func (c *Client) LookupTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	path := fmt.Sprintf("/single_main.jsp?owncode=%s", symbol)
	doc, err := c.getDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	for _, t := range parseListing(doc) {
		if t.Symbol == symbol {
			return t, nil
		}
	}
	return nil, nil
}

func parseListing(doc *goquery.Document) []*models.Ticker {
	var tickers []*models.Ticker

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})
		if len(cells) < listingColumns {
			return
		}
		// Header rows repeat the column captions.
		if cells[colCode] == "" || strings.Contains(cells[colCode], "代號") {
			return
		}

		exchange := models.ExchangeNone
		switch models.ParseMarket(cells[colMarket]) {
		case models.MarketTSE:
			exchange = models.ExchangeTWSE
		case models.MarketOTC:
			exchange = models.ExchangeTPEx
		}

		t := &models.Ticker{
			Symbol:   cells[colCode],
			Name:     cells[colName],
			Exchange: exchange,
			Market:   models.ParseMarket(cells[colMarket]),
			Type:     cells[colType],
			Industry: cells[colIndustry],
		}
		if d, err := time.ParseInLocation("2006/01/02", cells[colListedDate], common.Taipei); err == nil {
			t.ListedDate = d
		}
		switch t.Market {
		case models.MarketTSE:
			t.ChannelKey = "tse_" + t.Symbol + ".tw"
		case models.MarketOTC:
			t.ChannelKey = "otc_" + t.Symbol + ".tw"
		}
		tickers = append(tickers, t)
	})

	return tickers
}
