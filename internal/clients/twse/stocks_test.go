package twse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func serveResponse(t *testing.T, body apiResponse, captureQuery *map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if captureQuery != nil {
			q := map[string]string{}
			for k := range r.URL.Query() {
				q[k] = r.URL.Query().Get(k)
			}
			*captureQuery = q
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}
}

func TestStocksHistoricalSelectsQuoteTable(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Tables: []apiTable{
			{Title: "價格指數(臺灣證券交易所)", Data: [][]string{{"ignored"}}},
			{
				Title: "每日收盤行情(全部(不含權證、牛熊證))",
				Data: [][]string{
					{"2330", "台積電", "30,000,000", "25,000", "18,000,000,000", "600.00", "605.00", "595.00", "601.00", "<p style='color:green'>-</p>", "4.00"},
					{"2317", "鴻海", "20,000,000", "18,000", "2,100,000,000", "104.00", "106.00", "103.50", "105.50", "<p style='color:red'>+</p>", "1.50"},
				},
			},
		},
	}

	var query map[string]string
	client := newTestClient(t, serveResponse(t, body, &query))

	records, err := client.StocksHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "20210105", query["date"])
	assert.Equal(t, "ALLBUT0999", query["type"])
	assert.Equal(t, "json", query["response"])

	assert.Equal(t, "2330", records[0].Symbol)
	assert.Equal(t, 601.0, records[0].Close)
	assert.Equal(t, -4.0, records[0].Change) // direction markup carries "-"
	assert.Equal(t, 1.5, records[1].Change)
}

func TestStocksHistoricalNoData(t *testing.T) {
	client := newTestClient(t, serveResponse(t, apiResponse{Stat: "很抱歉，沒有符合條件的資料!"}, nil))

	records, err := client.StocksHistorical(context.Background(), "2021-01-03")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStocksInstitutionalAggregation(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Data: [][]string{
			{"2330", "台積電",
				"1,000", "400", "600", // fini without dealers
				"50", "20", "30", // fini dealers
				"300", "100", "200", // sitc
				"50",             // dealers net (reported, recomputed)
				"80", "60", "20", // dealers proprietary
				"40", "10", "30", // dealers hedging
			},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	records, err := client.StocksInstitutional(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1050.0, rec.FiniBuy)
	assert.Equal(t, 120.0, rec.DealersBuy)
	assert.Equal(t, 50.0, rec.DealersNetBuySell)
	assert.Equal(t, 1470.0, rec.TotalInstInvestorsBuy)
	assert.Equal(t, rec.FiniNetBuySell+rec.SitcNetBuySell+rec.DealersNetBuySell, rec.TotalInstInvestorsNetBuySell)
}

func TestStocksValuesColumnPlacement(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Data: [][]string{
			{"2330", "台積電", "1.76", "110", "27.83", "7.19"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	records, err := client.StocksValues(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1.76, rec.DividendYield)
	assert.Equal(t, 2021, rec.DividendYear) // ROC 110
	assert.Equal(t, 27.83, rec.PeRatio)
	assert.Equal(t, 7.19, rec.PbRatio)
}

func TestChangeSign(t *testing.T) {
	assert.Equal(t, -1.0, changeSign("<p style='color:green'>-</p>"))
	assert.Equal(t, 1.0, changeSign("<p style='color:red'>+</p>"))
	assert.Equal(t, 1.0, changeSign("<p> </p>")) // unchanged
}
