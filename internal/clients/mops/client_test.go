package mops

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/twmarket/twmarket/models"
)

// epsRow renders an income statement summary row with the EPS figure in the
// last of its 22 columns.
func epsRow(symbol, name, eps string) string {
	cells := make([]string, 22)
	cells[epsColSymbol] = symbol
	cells[epsColName] = name
	cells[epsColEPS] = eps
	for i, c := range cells {
		cells[i] = "<td>" + c + "</td>"
	}
	return "<tr>" + strings.Join(cells, "") + "</tr>"
}

func TestEPS(t *testing.T) {
	var form map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mops/web/t163sb04", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = map[string]string{}
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		fmt.Fprintf(w, `<html><body><table class="hasBorder">%s%s</table>
<table class="hasBorder">%s</table></body></html>`,
			epsRow("公司代號", "公司名稱", "基本每股盈餘"),
			epsRow("2330", "台積電", "5.30"),
			epsRow("1101", "台泥", "1.15"))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.EPS(context.Background(), models.MarketTSE, 2021, 1)
	require.NoError(t, err)

	// The portal speaks ROC years and zero-padded quarters.
	assert.Equal(t, "110", form["year"])
	assert.Equal(t, "01", form["season"])
	assert.Equal(t, "sii", form["TYPEK"])

	// The caption row carries no numeric EPS and is dropped. Rows from
	// every industry table are collected.
	require.Len(t, records, 2)
	assert.Equal(t, "2330", records[0].Symbol)
	assert.Equal(t, 5.3, records[0].EPS)
	assert.Equal(t, 2021, records[0].Year)
	assert.Equal(t, 1, records[0].Quarter)
	assert.Equal(t, "1101", records[1].Symbol)
}

func TestEPSUnsupportedMarket(t *testing.T) {
	client := NewClient()
	_, err := client.EPS(context.Background(), models.MarketFutOpt, 2021, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported market")
}

func TestRevenue(t *testing.T) {
	page := `<html><body><table>
<tr><td>公司代號</td><td>公司名稱</td><td>當月營收</td><td>上月營收</td></tr>
<tr><td>2330</td><td>台積電</td><td>117,365,397</td><td>124,878,814</td></tr>
<tr><td>合計</td><td></td><td>900,000,000</td><td>910,000,000</td></tr>
</table></body></html>`
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		out, _, err := transform.Bytes(traditionalchinese.Big5.NewEncoder(), []byte(page))
		require.NoError(t, err)
		w.Write(out)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Revenue(context.Background(), models.MarketTSE, 2021, 1, false)
	require.NoError(t, err)

	assert.Equal(t, "/nas/t21/sii/t21sc03_110_1_0.html", path)

	// Caption and subtotal rows are dropped.
	require.Len(t, records, 1)
	assert.Equal(t, "2330", records[0].Symbol)
	assert.Equal(t, 117365397.0, records[0].Revenue)
	assert.Equal(t, 2021, records[0].Year)
	assert.Equal(t, 1, records[0].Month)
}

func TestRevenueForeignPath(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Revenue(context.Background(), models.MarketOTC, 2021, 2, true)
	require.NoError(t, err)
	assert.Nil(t, records)
	assert.Equal(t, "/nas/t21/otc/t21sc03_110_2_1.html", path)
}

func TestRevenueUnpublishedMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	records, err := client.Revenue(context.Background(), models.MarketTSE, 2026, 12, false)
	require.NoError(t, err)
	assert.Nil(t, records)
}
