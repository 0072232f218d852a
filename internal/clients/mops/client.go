// Package mops provides a client for the Market Observation Post System
// financial disclosure portal
package mops

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

const (
	DefaultBaseURL   = "https://mops.twse.com.tw"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 3 // requests per second
)

// Column layout of the EPS summary tables (t163sb04). The portal renders
// one table per industry, all sharing this layout.
const (
	epsColSymbol = 0
	epsColName   = 1
	epsColEPS    = 21 // 基本每股盈餘, last column of the income statement row
)

// Column layout of the monthly revenue tables (t21sc03).
const (
	revColSymbol  = 0
	revColName    = 1
	revColRevenue = 2 // 當月營收
)

// typeK maps a market to the portal's TYPEK selector.
func typeK(market models.Market) (string, error) {
	switch market {
	case models.MarketTSE:
		return "sii", nil
	case models.MarketOTC:
		return "otc", nil
	}
	return "", fmt.Errorf("unsupported market: %q", market)
}

// Client implements the DisclosureClient interface.
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

// NewClient creates a new disclosure portal client.
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

// postDocument performs a rate-limited form POST and parses the HTML body.
func (c *Client) postDocument(ctx context.Context, path string, form url.Values) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug().Str("path", path).Msg("MOPS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MOPS error: status %d (path: %s)", resp.StatusCode, path)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return doc, nil
}

// getBig5Document performs a rate-limited GET against a legacy static page
// and parses the Big5 HTML body. A 404 is the no-data outcome; monthly
// pages only exist once the month has been published.
func (c *Client) getBig5Document(ctx context.Context, path string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("MOPS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("MOPS error: status %d (path: %s)", resp.StatusCode, path)
	}

	doc, err := goquery.NewDocumentFromReader(common.Big5Reader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return doc, nil
}

// EPS retrieves quarterly earnings per share for every company in one market.
func (c *Client) EPS(ctx context.Context, market models.Market, year, quarter int) ([]*models.EPS, error) {
	tk, err := typeK(market)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("encodeURIComponent", "1")
	form.Set("step", "1")
	form.Set("firstin", "1")
	form.Set("off", "1")
	form.Set("isQuery", "Y")
	form.Set("TYPEK", tk)
	form.Set("year", fmt.Sprintf("%d", year-1911))
	form.Set("season", fmt.Sprintf("%02d", quarter))

	doc, err := c.postDocument(ctx, "/mops/web/t163sb04", form)
	if err != nil {
		return nil, err
	}

	exchange := models.ExchangeTWSE
	if market == models.MarketOTC {
		exchange = models.ExchangeTPEx
	}

	var records []*models.EPS
	doc.Find("table.hasBorder tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})
		if len(cells) <= epsColEPS {
			return
		}
		eps, found := common.ParseNumber(cells[epsColEPS])
		if !found {
			return
		}
		records = append(records, &models.EPS{
			Exchange: string(exchange),
			Symbol:   cells[epsColSymbol],
			Name:     cells[epsColName],
			EPS:      eps,
			Year:     year,
			Quarter:  quarter,
		})
	})

	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}

// Revenue retrieves monthly revenue for every company in one market.
// foreign selects the page covering foreign-domiciled listings.
func (c *Client) Revenue(ctx context.Context, market models.Market, year, month int, foreign bool) ([]*models.Revenue, error) {
	tk, err := typeK(market)
	if err != nil {
		return nil, err
	}

	domicile := 0
	if foreign {
		domicile = 1
	}
	path := fmt.Sprintf("/nas/t21/%s/t21sc03_%d_%d_%d.html", tk, year-1911, month, domicile)

	doc, err := c.getBig5Document(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	exchange := models.ExchangeTWSE
	if market == models.MarketOTC {
		exchange = models.ExchangeTPEx
	}

	var records []*models.Revenue
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})
		if len(cells) <= revColRevenue {
			return
		}
		// Industry subtotal and caption rows carry no symbol.
		symbol := cells[revColSymbol]
		if symbol == "" || symbol == "合計" || strings.Contains(symbol, "公司代號") {
			return
		}
		revenue, found := common.ParseNumber(cells[revColRevenue])
		if !found {
			return
		}
		records = append(records, &models.Revenue{
			Exchange: string(exchange),
			Symbol:   symbol,
			Name:     cells[revColName],
			Revenue:  revenue,
			Year:     year,
			Month:    month,
		})
	})

	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}
