package tpex

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

func serveQuotes(t *testing.T, rows [][]string, capture *string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = r.URL.Query().Get("d")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(apiResponse{
			ReportDate:    "110/01/05",
			ITotalRecords: len(rows),
			AaData:        rows,
		})
	}
}

func TestStocksHistoricalSignFromStyle(t *testing.T) {
	// A positive magnitude flagged with the decline style token must come
	// back negative; the usual red-up style stays positive.
	rows := [][]string{
		{"6488", "環球晶", "700.00", "15.00", "green", "710.00", "712.00", "698.00", "1,000", "700,000", "500"},
		{"5483", "中美晶", "200.00", "3.00", "red", "198.00", "201.00", "197.00", "2,000", "400,000", "800"},
	}
	var gotDate string
	client := newTestClient(t, serveQuotes(t, rows, &gotDate))

	records, err := client.StocksHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "110/01/05", gotDate)
	assert.Equal(t, -15.0, records[0].Change)
	assert.Equal(t, 3.0, records[1].Change)
}

func TestStocksHistoricalColumnPlacement(t *testing.T) {
	// Sentinel values per column index must land in the matching fields.
	rows := [][]string{
		{"6488", "環球晶", "1002", "1003", "", "1005", "1006", "1007", "1008", "1009", "1010"},
	}
	client := newTestClient(t, serveQuotes(t, rows, nil))

	records, err := client.StocksHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "6488", rec.Symbol)
	assert.Equal(t, 1002.0, rec.Close)
	assert.Equal(t, 1003.0, rec.Change)
	assert.Equal(t, 1005.0, rec.Open)
	assert.Equal(t, 1006.0, rec.High)
	assert.Equal(t, 1007.0, rec.Low)
	assert.Equal(t, 1008.0, rec.Volume)
	assert.Equal(t, 1009.0, rec.Turnover)
	assert.Equal(t, 1010.0, rec.Transaction)
}

func TestStocksHistoricalExcludesWarrants(t *testing.T) {
	rows := [][]string{
		{"712345", "認購權證", "1.00", "0.10", "red", "1.00", "1.10", "0.90", "10", "10", "5"},
		{"71234P", "認售權證", "1.00", "0.10", "red", "1.00", "1.10", "0.90", "10", "10", "5"},
		{"6488", "環球晶", "700.00", "15.00", "red", "710.00", "712.00", "698.00", "1,000", "700,000", "500"},
	}
	client := newTestClient(t, serveQuotes(t, rows, nil))

	records, err := client.StocksHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "6488", records[0].Symbol)
}

func TestStocksHistoricalNoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{ITotalRecords: 0})
	})

	records, err := client.StocksHistorical(context.Background(), "2021-01-03")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestStocksInstitutionalDerivesTotals(t *testing.T) {
	rows := [][]string{
		{"6488", "環球晶",
			"1,000", "400", "600", // fini without dealers
			"50", "20", "30", // fini dealers
			"300", "100", "200", // sitc
			"80", "60", "20", // dealers proprietary
			"40", "10", "30", // dealers hedging
		},
	}
	client := newTestClient(t, serveQuotes(t, rows, nil))

	records, err := client.StocksInstitutional(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 120.0, rec.DealersBuy)
	assert.Equal(t, rec.FiniBuy+rec.SitcBuy+rec.DealersBuy, rec.TotalInstInvestorsBuy)
	assert.Equal(t, 1470.0, rec.TotalInstInvestorsBuy) // 1050 fini + 300 sitc + 120 dealers
}

func TestIsWarrant(t *testing.T) {
	assert.True(t, isWarrant("712345"))
	assert.True(t, isWarrant("71234P"))
	assert.True(t, isWarrant("71234Y"))
	assert.False(t, isWarrant("6488"))
	assert.False(t, isWarrant("712345P")) // too long
	assert.False(t, isWarrant("81234P"))
}

func TestSignFromStyle(t *testing.T) {
	assert.Equal(t, -1.0, signFromStyle("green"))
	assert.Equal(t, -1.0, signFromStyle("text-green bold"))
	assert.Equal(t, 1.0, signFromStyle("red"))
	assert.Equal(t, 1.0, signFromStyle(""))
}
