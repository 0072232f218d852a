package tpex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicesHistoricalReducesSnapshots(t *testing.T) {
	client := newTestClient(t, serveRows(t, [][]string{
		{"櫃買指數", "09:00:00", "180.10"},
		{"櫃買指數", "10:30:00", "182.90"},
		{"櫃買指數", "13:30:00", "181.50"},
		{"電子類指數", "09:00:00", "250.00"},
		{"電子類指數", "13:30:00", "249.00"},
		{"電子類指數", "11:00:00", "248.20"},
	}, nil))

	records, err := client.IndicesHistorical(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	tpex := records[0]
	assert.Equal(t, "櫃買指數", tpex.Name)
	assert.Equal(t, 180.1, tpex.Open)
	assert.Equal(t, 182.9, tpex.High)
	assert.Equal(t, 180.1, tpex.Low)
	assert.Equal(t, 181.5, tpex.Close)
	assert.Equal(t, 1.4, tpex.Change)

	// Rows arrive unsorted; the reduction orders by snapshot time.
	electronics := records[1]
	assert.Equal(t, 250.0, electronics.Open)
	assert.Equal(t, 248.2, electronics.Low)
	assert.Equal(t, 249.0, electronics.Close)
}

func TestIndicesHistoricalNoData(t *testing.T) {
	client := newTestClient(t, serveRows(t, nil, nil))

	records, err := client.IndicesHistorical(context.Background(), "2021-01-03")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestIndicesTrades(t *testing.T) {
	client := newTestClient(t, serveRows(t, [][]string{
		{"光電業", "12,000,000", "900,000,000", "18,000"},
		{"半導體業", "98,000,000", "21,000,000,000", "130,000"},
	}, nil))

	records, err := client.IndicesTrades(context.Background(), "2021-01-05")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "半導體業", records[1].Name)
	assert.Equal(t, 21000000000.0, records[1].TradeValue)
	assert.Equal(t, 130000.0, records[1].Transaction)
	// The weight against the whole market is derived by the caller.
	assert.Zero(t, records[1].TradeWeight)
}
