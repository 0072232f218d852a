package mistwse

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twmarket/twmarket/models"
)

const stockInfoBody = `{
  "msgArray": [{
    "c": "2330", "n": "台積電", "ex": "tse",
    "y": "530.00", "u": "583.00", "w": "477.00",
    "o": "535.00", "h": "542.00", "l": "533.00",
    "z": "540.00", "tv": "1500", "v": "32547",
    "a": "540.00_541.00_542.00_543.00_544.00",
    "f": "100_200_300_400_500",
    "b": "539.00_538.00_537.00_536.00_535.00",
    "g": "150_250_350_450_550",
    "d": "20210105", "t": "13:30:00", "tlong": "1609824600000"
  }],
  "rtcode": "0000"
}`

func TestStockQuote(t *testing.T) {
	var path, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.RawQuery
		fmt.Fprint(w, stockInfoBody)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	ticker := &models.Ticker{Symbol: "2330", ChannelKey: "tse_2330.tw"}

	quote, err := client.StockQuote(context.Background(), ticker, false)
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "/getStockInfo.jsp", path)
	assert.Contains(t, query, "ex_ch=tse_2330.tw")
	assert.Contains(t, query, "json=1")
	assert.Contains(t, query, "delay=0")

	assert.Equal(t, "2021-01-05", quote.Date)
	assert.Equal(t, "2330", quote.Symbol)
	assert.Equal(t, 530.0, quote.ReferencePrice)
	assert.Equal(t, 583.0, quote.LimitUpPrice)
	assert.Equal(t, 540.0, quote.LastPrice)
	assert.Equal(t, 1500.0, quote.LastSize)
	assert.Equal(t, int64(1609824600000), quote.LastUpdated)

	assert.Equal(t, []float64{540, 541, 542, 543, 544}, quote.AskPrice)
	assert.Equal(t, []float64{100, 200, 300, 400, 500}, quote.AskSize)
	assert.Equal(t, []float64{539, 538, 537, 536, 535}, quote.BidPrice)
	assert.Equal(t, []float64{150, 250, 350, 450, 550}, quote.BidSize)
}

func TestStockQuoteOddLotPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, stockInfoBody)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.StockQuote(context.Background(), &models.Ticker{ChannelKey: "tse_2330.tw"}, true)
	require.NoError(t, err)
	assert.Equal(t, "/getOddInfo.jsp", path)
}

func TestStockQuoteFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"msgArray": [], "rtcode": "5001"}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	quote, err := client.StockQuote(context.Background(), &models.Ticker{ChannelKey: "tse_2330.tw"}, false)
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestBuildQuoteFallsBackToTradeTime(t *testing.T) {
	q := buildQuote(&stockInfoMsg{
		C: "t00", D: "20210105", T: "09:00:00", TLong: "-",
	})
	// 2021-01-05 09:00:00 Taipei.
	assert.Equal(t, int64(1609808400000), q.LastUpdated)
}

func TestSplitLadderSkipsPlaceholders(t *testing.T) {
	assert.Equal(t, []float64{540, 541}, splitLadder("540.00_541.00_-"))
	assert.Nil(t, splitLadder("-"))
	assert.Nil(t, splitLadder(""))
}

func TestListIndices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getCategory.jsp", r.URL.Path)
		require.Equal(t, "TIDX", r.URL.Query().Get("i"))
		switch r.URL.Query().Get("ex") {
		case "tse":
			fmt.Fprint(w, `{"msgArray": [
				{"key": "tse_t00.tw", "c": "t00", "n": "發行量加權股價指數"},
				{"key": "tse_t01.tw", "c": "t01", "n": "未含金融指數"}
			], "rtcode": "0000"}`)
		case "otc":
			fmt.Fprint(w, `{"msgArray": [
				{"key": "otc_o00.tw", "c": "o00", "n": "櫃買指數"}
			], "rtcode": "0000"}`)
		default:
			t.Errorf("unexpected ex parameter %q", r.URL.Query().Get("ex"))
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	tickers, err := client.ListIndices(context.Background())
	require.NoError(t, err)
	require.Len(t, tickers, 3)

	bySymbol := map[string]*models.Ticker{}
	for _, ticker := range tickers {
		assert.Equal(t, "INDEX", ticker.Type)
		bySymbol[ticker.Symbol] = ticker
	}

	taiex := bySymbol["t00"]
	require.NotNil(t, taiex)
	assert.Equal(t, models.ExchangeTWSE, taiex.Exchange)
	assert.Equal(t, "tse_t00.tw", taiex.ChannelKey)

	tpex := bySymbol["o00"]
	require.NotNil(t, tpex)
	assert.Equal(t, models.ExchangeTPEx, tpex.Exchange)
	assert.Equal(t, models.MarketOTC, tpex.Market)
}
