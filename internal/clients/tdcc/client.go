// Package tdcc provides a client for the Taiwan Depository & Clearing
// Corporation shareholder distribution data
package tdcc

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
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
	DefaultBaseURL   = "https://www.tdcc.com.tw"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 3 // requests per second
)

const (
	queryPath    = "/portal/zh/smWeb/qryStock"
	openDataPath = "/opendata/getOD.ashx?id=1-5"
)

// noDataMarker is the exact string the query page renders when the
// symbol/date pair matches nothing.
const noDataMarker = "查無此資料"

// Column layout of the open-data weekly feed rows.
const (
	odColDate       = 0 // yyyyMMdd
	odColSymbol     = 1
	odColLevel      = 2
	odColHolders    = 3
	odColShares     = 4
	odColProportion = 5
)

// Client implements the DepositoryClient interface. The interactive query
// needs a synchronizer token and session cookie harvested from a prior GET.
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

// NewClient creates a new depository client.
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

// session holds the synchronizer token pair and cookies from the query page.
type session struct {
	token   string
	uri     string
	cookies []*http.Cookie
}

// openSession GETs the query page and harvests the hidden-field token pair
// plus the session cookie for the follow-up POST.
func (c *Client) openSession(ctx context.Context) (*session, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+queryPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TDCC query page error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query page: %w", err)
	}

	s := &session{cookies: resp.Cookies()}
	s.token, _ = doc.Find(`input[name="SYNCHRONIZER_TOKEN"]`).Attr("value")
	s.uri, _ = doc.Find(`input[name="SYNCHRONIZER_URI"]`).Attr("value")
	if s.token == "" || s.uri == "" {
		return nil, fmt.Errorf("TDCC query page did not carry a synchronizer token")
	}
	return s, nil
}

// QueryDistribution runs the interactive query for one symbol and date.
// The date must be one of the weekly publication dates; anything else is
// the no-data outcome.
func (c *Client) QueryDistribution(ctx context.Context, symbol, date string) (*models.ShareholderDistribution, error) {
	s, err := c.openSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	form := url.Values{}
	form.Set("SYNCHRONIZER_TOKEN", s.token)
	form.Set("SYNCHRONIZER_URI", s.uri)
	form.Set("method", "submit")
	form.Set("firDate", common.ToCompact(date))
	form.Set("scaDate", common.ToCompact(date))
	form.Set("sqlMethod", "StockNo")
	form.Set("stockNo", symbol)
	form.Set("stockName", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+queryPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	c.logger.Debug().Str("symbol", symbol).Str("date", date).Msg("TDCC distribution query")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TDCC query error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if strings.Contains(doc.Text(), noDataMarker) {
		return nil, nil
	}

	dist := &models.ShareholderDistribution{Date: date, Symbol: symbol}
	doc.Find("table.table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return strings.TrimSpace(cell.Text())
		})
		// [level index, holding range, holders, shares, proportion]
		if len(cells) < 5 {
			return
		}
		level, found := common.ParseNumber(cells[0])
		if !found {
			return
		}
		dist.Tiers = append(dist.Tiers, models.ShareholderTier{
			Level:      int(level),
			Holders:    common.Num(cells[2]),
			Shares:     common.Num(cells[3]),
			Proportion: common.Num(cells[4]),
		})
	})

	if len(dist.Tiers) == 0 {
		return nil, nil
	}
	return dist, nil
}

// LatestDistributions retrieves the standing weekly open-data feed
// covering every listed security.
func (c *Client) LatestDistributions(ctx context.Context) ([]*models.ShareholderDistribution, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+openDataPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Msg("TDCC open data request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TDCC open data error: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	bySymbol := make(map[string]*models.ShareholderDistribution)
	var order []string
	for _, row := range rows[1:] {
		if len(row) <= odColProportion {
			continue
		}
		symbol := strings.TrimSpace(row[odColSymbol])
		dist, seen := bySymbol[symbol]
		if !seen {
			dist = &models.ShareholderDistribution{
				Date:   common.FromCompact(strings.TrimSpace(row[odColDate])),
				Symbol: symbol,
			}
			bySymbol[symbol] = dist
			order = append(order, symbol)
		}
		dist.Tiers = append(dist.Tiers, models.ShareholderTier{
			Level:      common.Int(row[odColLevel]),
			Holders:    common.Num(row[odColHolders]),
			Shares:     common.Num(row[odColShares]),
			Proportion: common.Num(row[odColProportion]),
		})
	}

	records := make([]*models.ShareholderDistribution, 0, len(order))
	for _, symbol := range order {
		records = append(records, bySymbol[symbol])
	}
	return records, nil
}
