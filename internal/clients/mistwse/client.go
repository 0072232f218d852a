// Package mistwse provides a client for the exchange's realtime market
// information system (equities and indices)
package mistwse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

const (
	DefaultBaseURL   = "https://mis.twse.com.tw/stock/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// rtOK is the success marker of the realtime feed.
const rtOK = "0000"

// Client implements the RealtimeEquityClient interface.
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

// NewClient creates a new realtime feed client.
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

// stockInfoResponse is the realtime quote envelope.
type stockInfoResponse struct {
	MsgArray []stockInfoMsg `json:"msgArray"`
	RtCode   string         `json:"rtcode"`
}

// stockInfoMsg is one instrument's snapshot. Field names follow the feed's
// single-letter convention.
type stockInfoMsg struct {
	C     string `json:"c"`     // symbol
	N     string `json:"n"`     // name
	Y     string `json:"y"`     // reference (previous close)
	U     string `json:"u"`     // limit up
	W     string `json:"w"`     // limit down
	O     string `json:"o"`     // open
	H     string `json:"h"`     // high
	L     string `json:"l"`     // low
	Z     string `json:"z"`     // last price
	TV    string `json:"tv"`    // last size
	V     string `json:"v"`     // accumulated volume
	A     string `json:"a"`     // ask price ladder, "_"-joined
	F     string `json:"f"`     // ask size ladder
	B     string `json:"b"`     // bid price ladder
	G     string `json:"g"`     // bid size ladder
	D     string `json:"d"`     // trading date, yyyyMMdd
	T     string `json:"t"`     // last trade time, HH:mm:ss
	TLong string `json:"tlong"` // epoch milliseconds
	Ex    string `json:"ex"`    // venue channel ("tse"/"otc")
}

// categoryResponse is the index directory envelope.
type categoryResponse struct {
	MsgArray []categoryMsg `json:"msgArray"`
	RtCode   string        `json:"rtcode"`
}

type categoryMsg struct {
	Key string `json:"key"` // channel key, e.g. "tse_t00.tw"
	C   string `json:"c"`   // index symbol
	N   string `json:"n"`   // index name
}

// getJSON performs a rate-limited GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("path", path).Msg("MIS feed request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("MIS feed error: status %d (path: %s)", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// splitLadder parses a "_"-joined price or size ladder.
func splitLadder(s string) []float64 {
	var out []float64
	for _, part := range strings.Split(s, "_") {
		if n, found := common.ParseNumber(part); found {
			out = append(out, n)
		}
	}
	return out
}

func buildQuote(msg *stockInfoMsg) *models.Quote {
	q := &models.Quote{
		Date:           common.FromCompact(msg.D),
		Symbol:         msg.C,
		Name:           msg.N,
		ReferencePrice: common.Num(msg.Y),
		LimitUpPrice:   common.Num(msg.U),
		LimitDownPrice: common.Num(msg.W),
		OpenPrice:      common.Num(msg.O),
		HighPrice:      common.Num(msg.H),
		LowPrice:       common.Num(msg.L),
		LastPrice:      common.Num(msg.Z),
		LastSize:       common.Num(msg.TV),
		TotalVolume:    common.Num(msg.V),
		AskPrice:       splitLadder(msg.A),
		AskSize:        splitLadder(msg.F),
		BidPrice:       splitLadder(msg.B),
		BidSize:        splitLadder(msg.G),
	}
	if ms, err := strconv.ParseInt(msg.TLong, 10, 64); err == nil {
		q.LastUpdated = ms
	} else {
		q.LastUpdated = common.EpochMillis(q.Date, msg.T)
	}
	return q
}

// quoteByChannel retrieves one instrument's snapshot by channel key.
func (c *Client) quoteByChannel(ctx context.Context, path, channel string) (*models.Quote, error) {
	query := url.Values{}
	query.Set("ex_ch", channel)
	query.Set("json", "1")
	query.Set("delay", "0")

	var body stockInfoResponse
	if err := c.getJSON(ctx, path, query, &body); err != nil {
		return nil, err
	}
	if body.RtCode != rtOK || len(body.MsgArray) == 0 {
		return nil, nil
	}
	return buildQuote(&body.MsgArray[0]), nil
}

// StockQuote retrieves a live snapshot for one equity. odd selects the
// odd-lot session feed.
func (c *Client) StockQuote(ctx context.Context, ticker *models.Ticker, odd bool) (*models.Quote, error) {
	path := "/getStockInfo.jsp"
	if odd {
		path = "/getOddInfo.jsp"
	}
	return c.quoteByChannel(ctx, path, ticker.ChannelKey)
}

// IndexQuote retrieves a live snapshot for one index.
func (c *Client) IndexQuote(ctx context.Context, ticker *models.Ticker) (*models.Quote, error) {
	return c.quoteByChannel(ctx, "/getStockInfo.jsp", ticker.ChannelKey)
}

// ListIndices retrieves the index directory for both markets. The two
// venue loads run concurrently and are concatenated.
func (c *Client) ListIndices(ctx context.Context) ([]*models.Ticker, error) {
	load := func(ctx context.Context, ex string) ([]*models.Ticker, error) {
		query := url.Values{}
		query.Set("ex", ex)
		query.Set("i", "TIDX")

		var body categoryResponse
		if err := c.getJSON(ctx, "/getCategory.jsp", query, &body); err != nil {
			return nil, err
		}
		if body.RtCode != rtOK {
			return nil, nil
		}

		exchange, market := models.ExchangeTWSE, models.MarketTSE
		if ex == "otc" {
			exchange, market = models.ExchangeTPEx, models.MarketOTC
		}

		tickers := make([]*models.Ticker, 0, len(body.MsgArray))
		for _, msg := range body.MsgArray {
			tickers = append(tickers, &models.Ticker{
				Symbol:     msg.C,
				Name:       msg.N,
				Exchange:   exchange,
				Market:     market,
				Type:       "INDEX",
				ChannelKey: msg.Key,
			})
		}
		return tickers, nil
	}

	var tse, otc []*models.Ticker
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tse, err = load(gctx, "tse")
		return err
	})
	g.Go(func() error {
		var err error
		otc, err = load(gctx, "otc")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(tse, otc...), nil
}
