// Package taifex provides a client for the Taiwan Futures Exchange
// downloadable data endpoints
package taifex

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/twmarket/twmarket/internal/common"
)

const (
	DefaultBaseURL   = "https://www.taifex.com.tw/cht"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// noDataMarker is the exact sentinel the exchange renders when a query
// matches nothing. Its presence is the no-data outcome, not a failure.
const noDataMarker = "查無資料"

// Client implements the FutOptClient interface. Downloads are
// Big5-encoded CSV retrieved by form POST.
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

// NewClient creates a new futures exchange client.
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

// slashDate converts an ISO date to the exchange's yyyy/MM/dd query form.
func slashDate(iso string) string {
	return strings.ReplaceAll(iso, "-", "/")
}

// postCSV performs a rate-limited form POST, decodes the Big5 body, and
// returns the CSV data rows with the header row stripped. A nil row set
// with a nil error is the no-data outcome.
func (c *Client) postCSV(ctx context.Context, path string, form url.Values) ([][]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug().Str("path", path).Msg("TAIFEX download request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TAIFEX download error: status %d (path: %s)", resp.StatusCode, path)
	}

	raw, err := io.ReadAll(common.Big5Reader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" || strings.Contains(text, noDataMarker) {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		data = append(data, row)
	}
	return data, nil
}
