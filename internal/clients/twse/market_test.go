package twse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketTradesMatchesRequestedDate(t *testing.T) {
	// The endpoint returns the whole month; only the requested day counts.
	body := apiResponse{
		Stat: "OK",
		Data: [][]string{
			{"110/01/04", "6,741,205,962", "263,805,704,185", "1,777,676", "14,902.03", "209.93"},
			{"110/01/05", "8,324,461,142", "326,257,591,133", "2,190,674", "15,000.03", "98.00"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	rec, err := client.MarketTrades(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2021-01-05", rec.Date)
	assert.Equal(t, 8324461142.0, rec.TradeVolume)
	assert.Equal(t, 15000.03, rec.Index)
}

func TestMarketTradesClosedDay(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Data: [][]string{
			{"110/01/04", "1", "1", "1", "1", "1"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	rec, err := client.MarketTrades(context.Background(), "2021-01-03")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMarketBreadth(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Tables: []apiTable{
			{
				Title: "漲跌證券數合計",
				Data: [][]string{
					{"上漲(漲停)", "473(12)"},
					{"下跌(跌停)", "357(4)"},
					{"持平", "112"},
					{"未成交", "35"},
					{"無比價", "14"},
				},
			},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	rec, err := client.MarketBreadth(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 473.0, rec.Up)
	assert.Equal(t, 12.0, rec.LimitUp)
	assert.Equal(t, 357.0, rec.Down)
	assert.Equal(t, 4.0, rec.LimitDown)
	assert.Equal(t, 112.0, rec.Unchanged)
	assert.Equal(t, 35.0, rec.Unmatched)
	assert.Equal(t, 14.0, rec.NoTrades)
}

func TestParseBreadthCount(t *testing.T) {
	count, limit := parseBreadthCount("478(12)")
	assert.Equal(t, 478.0, count)
	assert.Equal(t, 12.0, limit)

	count, limit = parseBreadthCount("112")
	assert.Equal(t, 112.0, count)
	assert.Equal(t, 0.0, limit)
}

func TestMarketInstitutionalLabelKeyedRows(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Data: [][]string{
			{"自營商(自行買賣)", "800", "600", "200"},
			{"自營商(避險)", "400", "100", "300"},
			{"投信", "300", "100", "200"},
			{"外資及陸資(不含外資自營商)", "1,000", "400", "600"},
			{"外資自營商", "50", "20", "30"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	rec, err := client.MarketInstitutional(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, 1200.0, rec.DealersBuy)
	assert.Equal(t, 1050.0, rec.FiniBuy)
	assert.Equal(t, 2550.0, rec.TotalInstInvestorsBuy)
}
