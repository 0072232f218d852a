package isin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/twmarket/twmarket/models"
)

const listingPage = `<html><body><table>
<tr><td>有價證券代號</td><td>有價證券名稱</td><td>國際證券辨識號碼</td><td>上市日</td><td>市場別</td><td>有價證券別</td><td>產業別</td></tr>
<tr><td>2330</td><td>台積電</td><td>TW0002330008</td><td>1994/09/05</td><td>上市</td><td>股票</td><td>24</td></tr>
<tr><td>0050</td><td>元大台灣50</td><td>TW0000050004</td><td>2003/06/30</td><td>上市</td><td>ETF</td><td></td></tr>
</table></body></html>`

// serveBig5 re-encodes the fixture the way the registry serves it.
func serveBig5(t *testing.T, page string, capturePath *string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if capturePath != nil {
			*capturePath = r.URL.RequestURI()
		}
		out, _, err := transform.Bytes(traditionalchinese.Big5.NewEncoder(), []byte(page))
		require.NoError(t, err)
		w.Write(out)
	}
}

func TestListTickers(t *testing.T) {
	var path string
	srv := httptest.NewServer(serveBig5(t, listingPage, &path))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	tickers, err := client.ListTickers(context.Background(), models.MarketTSE)
	require.NoError(t, err)

	assert.Equal(t, "/class_main.jsp?market=1&issuetype=1&Page=1&chklike=Y", path)

	// The caption row is dropped.
	require.Len(t, tickers, 2)
	tsmc := tickers[0]
	assert.Equal(t, "2330", tsmc.Symbol)
	assert.Equal(t, "台積電", tsmc.Name)
	assert.Equal(t, models.ExchangeTWSE, tsmc.Exchange)
	assert.Equal(t, models.MarketTSE, tsmc.Market)
	assert.Equal(t, "24", tsmc.Industry)
	assert.Equal(t, "tse_2330.tw", tsmc.ChannelKey)
	assert.Equal(t, 1994, tsmc.ListedDate.Year())

	etf := tickers[1]
	assert.Equal(t, "ETF", etf.Type)
	assert.Empty(t, etf.Industry)
}

func TestListTickersOTCMarketCode(t *testing.T) {
	var path string
	srv := httptest.NewServer(serveBig5(t, listingPage, &path))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.ListTickers(context.Background(), models.MarketOTC)
	require.NoError(t, err)
	assert.Equal(t, "/class_main.jsp?market=2&issuetype=1&Page=1&chklike=Y", path)
}

func TestListTickersUnsupportedMarket(t *testing.T) {
	client := NewClient()
	_, err := client.ListTickers(context.Background(), models.MarketFutOpt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported market")
}

func TestLookupTicker(t *testing.T) {
	page := `<html><body><table>
<tr><td>有價證券代號</td><td>有價證券名稱</td><td>國際證券辨識號碼</td><td>上市日</td><td>市場別</td><td>有價證券別</td><td>產業別</td></tr>
<tr><td>6488</td><td>環球晶</td><td>TW0006488000</td><td>2015/09/25</td><td>上櫃</td><td>股票</td><td>28</td></tr>
</table></body></html>`
	var path string
	srv := httptest.NewServer(serveBig5(t, page, &path))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	ticker, err := client.LookupTicker(context.Background(), "6488")
	require.NoError(t, err)
	require.NotNil(t, ticker)

	assert.Equal(t, "/single_main.jsp?owncode=6488", path)
	assert.Equal(t, models.ExchangeTPEx, ticker.Exchange)
	assert.Equal(t, models.MarketOTC, ticker.Market)
	assert.Equal(t, "otc_6488.tw", ticker.ChannelKey)
}

func TestLookupTickerNotFound(t *testing.T) {
	page := `<html><body><table>
<tr><td>有價證券代號</td><td>有價證券名稱</td><td>國際證券辨識號碼</td><td>上市日</td><td>市場別</td><td>有價證券別</td><td>產業別</td></tr>
</table></body></html>`
	srv := httptest.NewServer(serveBig5(t, page, nil))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	ticker, err := client.LookupTicker(context.Background(), "9999")
	require.NoError(t, err)
	assert.Nil(t, ticker)
}
