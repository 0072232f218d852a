package twse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStocksDividendsEnrichesBySymbol(t *testing.T) {
	// Detail responses are keyed by the STK_NO parameter, so the merge must
	// hold regardless of which detail fetch completes first.
	details := map[string][]string{
		"2330": {"2.75", "0"},
		"2317": {"4.00", "120"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "Detail") {
			symbol := r.URL.Query().Get("STK_NO")
			json.NewEncoder(w).Encode(apiResponse{Stat: "OK", Data: [][]string{details[symbol]}})
			return
		}
		json.NewEncoder(w).Encode(apiResponse{
			Stat: "OK",
			Data: [][]string{
				{"110/01/05", "2330", "台積電", "600.00", "597.25", "2.75", "息", "656.00", "538.00", "597.25", "597.25"},
				{"110/01/05", "2317", "鴻海", "104.00", "100.00", "4.00", "權息", "110.00", "90.00", "100.00", "100.00"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.StocksDividends(context.Background(), "2021-01-05", "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	bySymbol := map[string]float64{}
	for _, r := range records {
		bySymbol[r.Symbol] = r.CashDividend
	}
	assert.Equal(t, 2.75, bySymbol["2330"])
	assert.Equal(t, 4.00, bySymbol["2317"])
	assert.Equal(t, "2021-01-05", records[0].Date)
	assert.Equal(t, 120.0, records[1].StockDividendShares)
}

func TestStocksCapitalReductionsNoData(t *testing.T) {
	client := newTestClient(t, serveResponse(t, apiResponse{Stat: "沒有符合條件的資料"}, nil))

	records, err := client.StocksCapitalReductions(context.Background(), "2021-01-01", "2021-01-31")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStocksSplitsEnrichesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(r.URL.Path, "Detail") {
			json.NewEncoder(w).Encode(apiResponse{Stat: "OK", Data: [][]string{{"109/12/28", "5.0", "2.0"}}})
			return
		}
		json.NewEncoder(w).Encode(apiResponse{
			Stat: "OK",
			Data: [][]string{
				{"110/01/05", "6415", "矽力", "3000.00", "1500.00", "1650.00", "1350.00"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.StocksSplits(context.Background(), "2021-01-01", "2021-01-31")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "2020-12-28", rec.HaltDate)
	assert.Equal(t, 5.0, rec.NewParValue)
	assert.Equal(t, 2.0, rec.SplitRatio)
}
