// Package tpex provides a client for the Taipei Exchange (OTC market)
// after-trading data API
package tpex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/twmarket/twmarket/internal/common"
)

const (
	DefaultBaseURL   = "https://www.tpex.org.tw/web"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the EquityClient interface for the OTC market.
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

// NewClient creates a new OTC market API client.
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

// apiResponse is the DataTables-style envelope used by the OTC endpoints.
// A zero record count is the no-data outcome.
type apiResponse struct {
	ReportDate    string     `json:"reportDate"`
	ITotalRecords int        `json:"iTotalRecords"`
	AaData        [][]string `json:"aaData"`
	TfootData     []string   `json:"tfootData"`
}

func (r *apiResponse) ok() bool {
	return r.ITotalRecords > 0 || len(r.AaData) > 0
}

// getJSON performs a rate-limited GET for a ROC-dated endpoint and decodes
// the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("l", "zh-tw")
	query.Set("o", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("TPEx API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TPEx API error: status %d (path: %s)", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func dateQuery(date string) url.Values {
	query := url.Values{}
	query.Set("d", common.ToROC(date))
	return query
}

// Structured warrants listed on the OTC market carry 7-prefixed codes.
// They appear in the daily close quote listing but are not common equity
// and are excluded from the historical parser.
var warrantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^7[0-9]{5}$`),          // call warrants
	regexp.MustCompile(`^7[0-9]{4}[PFQCBXY]$`), // put/special-form warrants
}

func isWarrant(symbol string) bool {
	for _, p := range warrantPatterns {
		if p.MatchString(symbol) {
			return true
		}
	}
	return false
}

// declineStyleToken marks a falling price in the venue's markup. The venue
// renders declines green, the reverse of the red-down convention, so the
// sign must come from this token, never from the rendered color's usual
// meaning. Fragile external contract: revise here if the upstream changes
// its styling.
const declineStyleToken = "green"

// signFromStyle derives the change sign from the style/class token
// accompanying a price-change cell.
func signFromStyle(token string) float64 {
	if strings.Contains(strings.ToLower(token), declineStyleToken) {
		return -1
	}
	return 1
}
