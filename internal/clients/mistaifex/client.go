// Package mistaifex provides a client for the futures exchange's realtime
// market information system
package mistaifex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

const (
	DefaultBaseURL   = "https://mis.taifex.com.tw/futures/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// rtOK is the success marker of the realtime feed.
const rtOK = "0"

// Session suffixes appended to the product symbol to form the feed's
// quote identifier.
const (
	regularSuffix    = "-F"
	afterHoursSuffix = "-M"
)

// Client implements the RealtimeFutOptClient interface.
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

// NewClient creates a new realtime derivatives feed client.
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

// quoteRequest is the feed's POST body.
type quoteRequest struct {
	SymbolID []string `json:"SymbolID"`
}

// quoteResponse is the feed envelope.
type quoteResponse struct {
	RtCode string    `json:"RtCode"`
	RtMsg  string    `json:"RtMsg"`
	RtData quoteData `json:"RtData"`
}

type quoteData struct {
	QuoteList []quoteEntry `json:"QuoteList"`
}

// quoteEntry is one contract's snapshot. Field names follow the feed.
type quoteEntry struct {
	SymbolID      string `json:"SymbolID"`
	DispCName     string `json:"DispCName"`
	CRefPrice     string `json:"CRefPrice"`
	CCeilPrice    string `json:"CCeilPrice"`
	CFloorPrice   string `json:"CFloorPrice"`
	COpenPrice    string `json:"COpenPrice"`
	CHighPrice    string `json:"CHighPrice"`
	CLowPrice     string `json:"CLowPrice"`
	CLastPrice    string `json:"CLastPrice"`
	CSingleVolume string `json:"CSingleVolume"`
	CTotalVolume  string `json:"CTotalVolume"`
	COpenInterest string `json:"COpenInterest"`
	CBidPrice1    string `json:"CBidPrice1"`
	CBidPrice2    string `json:"CBidPrice2"`
	CBidPrice3    string `json:"CBidPrice3"`
	CBidPrice4    string `json:"CBidPrice4"`
	CBidPrice5    string `json:"CBidPrice5"`
	CBidSize1     string `json:"CBidSize1"`
	CBidSize2     string `json:"CBidSize2"`
	CBidSize3     string `json:"CBidSize3"`
	CBidSize4     string `json:"CBidSize4"`
	CBidSize5     string `json:"CBidSize5"`
	CAskPrice1    string `json:"CAskPrice1"`
	CAskPrice2    string `json:"CAskPrice2"`
	CAskPrice3    string `json:"CAskPrice3"`
	CAskPrice4    string `json:"CAskPrice4"`
	CAskPrice5    string `json:"CAskPrice5"`
	CAskSize1     string `json:"CAskSize1"`
	CAskSize2     string `json:"CAskSize2"`
	CAskSize3     string `json:"CAskSize3"`
	CAskSize4     string `json:"CAskSize4"`
	CAskSize5     string `json:"CAskSize5"`
	CTestPrice    string `json:"CTestPrice"`
	CTime         string `json:"CTime"` // HHmmss
	CDate         string `json:"CDate"` // yyyyMMdd
}

// postJSON performs a rate-limited JSON POST and decodes the envelope.
func (c *Client) postJSON(ctx context.Context, path string, reqBody, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("path", path).Msg("MIS derivatives feed request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("MIS derivatives feed error: status %d (path: %s)", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func clock(compact string) string {
	if len(compact) != 6 {
		return compact
	}
	return compact[:2] + ":" + compact[2:4] + ":" + compact[4:]
}

func buildQuote(e *quoteEntry, afterhours bool) *models.FutOptQuote {
	return &models.FutOptQuote{
		Symbol:         e.SymbolID,
		Name:           e.DispCName,
		ReferencePrice: common.Num(e.CRefPrice),
		LimitUpPrice:   common.Num(e.CCeilPrice),
		LimitDownPrice: common.Num(e.CFloorPrice),
		OpenPrice:      common.Num(e.COpenPrice),
		HighPrice:      common.Num(e.CHighPrice),
		LowPrice:       common.Num(e.CLowPrice),
		LastPrice:      common.Num(e.CLastPrice),
		LastSize:       common.Num(e.CSingleVolume),
		TotalVolume:    common.Num(e.CTotalVolume),
		OpenInterest:   common.Num(e.COpenInterest),
		BidPrice: []float64{
			common.Num(e.CBidPrice1), common.Num(e.CBidPrice2), common.Num(e.CBidPrice3),
			common.Num(e.CBidPrice4), common.Num(e.CBidPrice5),
		},
		BidSize: []float64{
			common.Num(e.CBidSize1), common.Num(e.CBidSize2), common.Num(e.CBidSize3),
			common.Num(e.CBidSize4), common.Num(e.CBidSize5),
		},
		AskPrice: []float64{
			common.Num(e.CAskPrice1), common.Num(e.CAskPrice2), common.Num(e.CAskPrice3),
			common.Num(e.CAskPrice4), common.Num(e.CAskPrice5),
		},
		AskSize: []float64{
			common.Num(e.CAskSize1), common.Num(e.CAskSize2), common.Num(e.CAskSize3),
			common.Num(e.CAskSize4), common.Num(e.CAskSize5),
		},
		TestPrice:   common.Num(e.CTestPrice),
		AfterHours:  afterhours,
		LastUpdated: common.EpochMillis(common.FromCompact(e.CDate), clock(e.CTime)),
	}
}

// Quote retrieves a live snapshot for one contract. afterhours selects
// the after-hours session channel.
func (c *Client) Quote(ctx context.Context, ticker *models.Ticker, afterhours bool) (*models.FutOptQuote, error) {
	suffix := regularSuffix
	if afterhours {
		suffix = afterHoursSuffix
	}

	var body quoteResponse
	req := quoteRequest{SymbolID: []string{ticker.Symbol + suffix}}
	if err := c.postJSON(ctx, "/getQuoteDetail", req, &body); err != nil {
		return nil, err
	}
	if body.RtCode != rtOK || len(body.RtData.QuoteList) == 0 {
		return nil, nil
	}

	q := buildQuote(&body.RtData.QuoteList[0], afterhours)
	q.Symbol = ticker.Symbol
	if q.Name == "" {
		q.Name = ticker.Name
	}
	return q, nil
}
