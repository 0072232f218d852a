package twse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicesHistoricalReducesSnapshots(t *testing.T) {
	body := apiResponse{
		Stat:   "OK",
		Fields: []string{"時間", "發行量加權股價指數", "未含金融保險股指數"},
		Data: [][]string{
			{"09:00:00", "100.00", "200.00"},
			{"09:05:00", "105.00", "195.00"},
			{"09:10:00", "95.00", "210.00"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	records, err := client.IndicesHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	taiex := records[0]
	assert.Equal(t, "發行量加權股價指數", taiex.Name)
	assert.Equal(t, 100.0, taiex.Open)
	assert.Equal(t, 105.0, taiex.High)
	assert.Equal(t, 95.0, taiex.Low)
	assert.Equal(t, 95.0, taiex.Close)
	assert.Equal(t, -5.0, taiex.Change)

	exFin := records[1]
	assert.Equal(t, 200.0, exFin.Open)
	assert.Equal(t, 210.0, exFin.Close)
	assert.Equal(t, 10.0, exFin.Change)
}

func TestIndicesHistoricalSkipsEmptyCells(t *testing.T) {
	body := apiResponse{
		Stat:   "OK",
		Fields: []string{"時間", "某指數"},
		Data: [][]string{
			{"09:00:00", "--"},
			{"09:05:00", "105.00"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	records, err := client.IndicesHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 105.0, records[0].Open)
}

func TestIndicesTrades(t *testing.T) {
	body := apiResponse{
		Stat: "OK",
		Data: [][]string{
			{"水泥類指數", "68,173", "2,904,077", "1,208"},
			{"半導體類指數", "1,357,523", "98,233,717", "1,439"},
		},
	}
	client := newTestClient(t, serveResponse(t, body, nil))

	records, err := client.IndicesTrades(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "半導體類指數", records[1].Name)
	assert.Equal(t, 98233717.0, records[1].TradeValue)
	assert.Equal(t, 0.0, records[1].TradeWeight) // derived by the caller
}
