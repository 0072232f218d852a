package taifex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// big5 encodes a fixture CSV the way the exchange serves it.
func big5(t *testing.T, s string) []byte {
	t.Helper()
	out, _, err := transform.Bytes(traditionalchinese.Big5.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return out
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func serveCSV(t *testing.T, csv string, captureForm *map[string]string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if captureForm != nil {
			require.NoError(t, r.ParseForm())
			form := map[string]string{}
			for k := range r.PostForm {
				form[k] = r.PostForm.Get(k)
			}
			*captureForm = form
		}
		w.Write(big5(t, csv))
	}
}

func TestListContracts(t *testing.T) {
	csv := "商品代號,商品名稱,商品類別,標的,上市日期,可交易\n" +
		"TXF,臺股期貨,期貨,發行量加權股價指數,1998/07/21,Y\n" +
		"GDF,黃金期貨,期貨,黃金,2006/03/27,N\n"
	client := newTestClient(t, serveCSV(t, csv, nil))

	all, err := client.ListContracts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "TXF", all[0].Symbol)
	assert.Equal(t, "臺股期貨", all[0].Name)
	assert.Equal(t, 1998, all[0].ListedDate.Year())

	available, err := client.ListContracts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "TXF", available[0].Symbol)
}

func TestHistoricalFutures(t *testing.T) {
	csv := "交易日期,契約,到期月份,開盤價,最高價,最低價,收盤價,漲跌價,漲跌%,成交量,結算價,未沖銷契約數,交易時段\n" +
		"2021/01/05,TXF,202101,14862,14928,14827,14902,100,0.67,120000,14902,98000,一般\n"

	var form map[string]string
	client := newTestClient(t, serveCSV(t, csv, &form))

	records, err := client.Historical(context.Background(), "2021-01-05", "TXF", false)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "2021/01/05", form["queryStartDate"])
	assert.Equal(t, "TXF", form["commodity_id"])
	assert.Equal(t, "0", form["marketCode"])

	rec := records[0]
	assert.Equal(t, "TXF", rec.Symbol)
	assert.Equal(t, "202101", rec.ContractMonth)
	assert.Equal(t, 14902.0, rec.Close)
	assert.Equal(t, 98000.0, rec.OpenInterest)
	assert.Equal(t, "一般", rec.Session)
}

func TestHistoricalNoDataSentinel(t *testing.T) {
	client := newTestClient(t, serveCSV(t, "查無資料", nil))

	records, err := client.Historical(context.Background(), "2021-01-03", "TXF", false)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestInstitutionalFoldsIdentityRows(t *testing.T) {
	csv := "日期,商品,商品名稱,身份別,多方交易口數,多方契約金額,空方交易口數,空方契約金額,多空淨額交易口數,多空淨額契約金額,多方未平倉口數,多方未平倉契約金額,空方未平倉口數,空方未平倉契約金額,多空淨額未平倉口數,多空淨額未平倉契約金額\n" +
		"2021/01/05,TXF,臺股期貨,自營商,100,1,200,2,-100,-1,1000,10,500,5,500,5\n" +
		"2021/01/05,TXF,臺股期貨,投信,50,1,20,1,30,0,300,3,100,1,200,2\n" +
		"2021/01/05,TXF,臺股期貨,外資,400,4,300,3,100,1,2000,20,1500,15,500,5\n"
	client := newTestClient(t, serveCSV(t, csv, nil))

	records, err := client.Institutional(context.Background(), "2021-01-05", "TXF")
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1000.0, rec.DealersLongOI)
	assert.Equal(t, 300.0, rec.SitcLongOI)
	assert.Equal(t, 2000.0, rec.FiniLongOI)
	assert.Equal(t, 3300.0, rec.TotalLongOI)
	assert.Equal(t, 2100.0, rec.TotalShortOI)
	assert.Equal(t, 1200.0, rec.TotalNetOI)
}

func TestPutCallRatioMatchesDate(t *testing.T) {
	csv := "日期,賣權成交量,買權成交量,買賣權成交量比率%,賣權未平倉量,買權未平倉量,買賣權未平倉量比率%\n" +
		"2021/01/04,300000,400000,75.00,200000,250000,80.00\n" +
		"2021/01/05,350000,400000,87.50,210000,240000,87.50\n"
	client := newTestClient(t, serveCSV(t, csv, nil))

	rec, err := client.PutCallRatio(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 87.5, rec.PutCallVolumeRatio)
	assert.Equal(t, 350000.0, rec.PutVolume)

	missing, err := client.PutCallRatio(context.Background(), "2021-01-06")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIsOptionProduct(t *testing.T) {
	assert.True(t, isOptionProduct("TXO"))
	assert.False(t, isOptionProduct("TXF"))
	assert.False(t, isOptionProduct("MXF"))
}

func TestHistoricalStripsHeaderAndWhitespace(t *testing.T) {
	csv := "交易日期,契約,到期月份,開盤價,最高價,最低價,收盤價,漲跌價,漲跌%,成交量,結算價,未沖銷契約數,交易時段\n" +
		" 2021/01/05 , TXF ,202101,1,2,1,2,0,0,1,2,3,一般\n"
	client := newTestClient(t, serveCSV(t, csv, nil))

	records, err := client.Historical(context.Background(), "2021-01-05", "TXF", false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "TXF", records[0].Symbol)
}

func TestExchangeRates(t *testing.T) {
	csv := "日期,美元／新台幣,人民幣／新台幣,歐元／美元,美元／日幣,英鎊／美元,澳幣／美元,美元／港幣,美元／人民幣,美元／新幣,紐幣／美元\n" +
		"2021/01/05,28.49,4.38,1.23,102.72,1.36,0.77,7.75,6.46,1.32,0.72\n"
	client := newTestClient(t, serveCSV(t, csv, nil))

	rec, err := client.ExchangeRates(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 28.49, rec.UsdTwd)
	assert.Equal(t, 0.72, rec.NzdUsd)
}

func TestHistoricalAllProductsConcatenates(t *testing.T) {
	// Without a symbol both downloads run; the fixture server answers each
	// path with its own layout.
	futCSV := "交易日期,契約,到期月份,開盤價,最高價,最低價,收盤價,漲跌價,漲跌%,成交量,結算價,未沖銷契約數,交易時段\n" +
		"2021/01/05,TXF,202101,1,2,1,2,0,0,1,2,3,一般\n"
	optCSV := "交易日期,契約,到期月份,履約價,買賣權,開盤價,最高價,最低價,收盤價,漲跌價,漲跌%,成交量,結算價,未沖銷契約數,交易時段\n" +
		"2021/01/05,TXO,202101,14800,買權,1,2,1,2,0,0,1,2,3,一般\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "optDataDown") {
			w.Write(big5(t, optCSV))
			return
		}
		w.Write(big5(t, futCSV))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Historical(context.Background(), "2021-01-05", "", false)
	require.NoError(t, err)
	require.Len(t, records, 2)

	symbols := map[string]bool{}
	for _, r := range records {
		symbols[r.Symbol] = true
	}
	assert.True(t, symbols["TXF"])
	assert.True(t, symbols["TXO"])

	option := records[1]
	if option.Symbol != "TXO" {
		option = records[0]
	}
	assert.Equal(t, 14800.0, option.StrikePrice)
	assert.Equal(t, "買權", option.Type)
}
