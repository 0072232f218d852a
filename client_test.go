package twmarket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twmarket/twmarket/models"
)

func TestNewDefaults(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	assert.NotNil(t, client.Stocks())
	assert.NotNil(t, client.Indices())
	assert.NotNil(t, client.Market())
	assert.NotNil(t, client.FutOpt())
}

// Selector validation fires before any network call, so a default client
// exercises it offline.

func TestQuoteRequiresSymbol(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	_, err = client.Stocks().Quote(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrSymbolRequired)
	assert.EqualError(t, err, `the option "symbol" must be specified`)
}

func TestShareholdersRequiresSymbol(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	_, err = client.Stocks().Shareholders(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrSymbolRequired)
}

func TestDisclosureSelectorValidation(t *testing.T) {
	client, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Stocks().EPS(ctx, Options{Year: 2021, Quarter: 1})
	assert.ErrorIs(t, err, ErrMissingSelector)
	assert.EqualError(t, err, `one of the options "symbol" or "exchange" must be specified`)

	_, err = client.Stocks().EPS(ctx, Options{
		Symbol: "2330", Exchange: models.ExchangeTWSE, Year: 2021, Quarter: 1,
	})
	assert.ErrorIs(t, err, ErrConflictingSelectors)
	assert.EqualError(t, err, `the options "symbol" and "exchange" cannot both be specified`)

	_, err = client.Stocks().Revenue(ctx, Options{Year: 2021, Month: 1})
	assert.ErrorIs(t, err, ErrMissingSelector)

	_, err = client.Stocks().Revenue(ctx, Options{
		Symbol: "2330", Exchange: models.ExchangeTWSE, Year: 2021, Month: 1,
	})
	assert.ErrorIs(t, err, ErrConflictingSelectors)
}

func TestKeep(t *testing.T) {
	records := []*models.Ticker{
		{Symbol: "1101"},
		{Symbol: "2330"},
		{Symbol: "2454"},
	}
	symbolOf := func(t *models.Ticker) string { return t.Symbol }

	assert.Equal(t, records, keep(records, "", symbolOf))

	one := keep(records, "2330", symbolOf)
	require.Len(t, one, 1)
	assert.Equal(t, "2330", one[0].Symbol)

	assert.Nil(t, keep(records, "9999", symbolOf))
}

func TestOptionsDateRange(t *testing.T) {
	start, end := Options{Date: "2021-01-05"}.dateRange()
	assert.Equal(t, "2021-01-05", start)
	assert.Equal(t, "2021-01-05", end)

	start, end = Options{StartDate: "2021-01-04", EndDate: "2021-01-08"}.dateRange()
	assert.Equal(t, "2021-01-04", start)
	assert.Equal(t, "2021-01-08", end)

	start, end = Options{StartDate: "2021-01-04"}.dateRange()
	assert.Equal(t, "2021-01-04", start)
	assert.Equal(t, "2021-01-04", end)
}

func TestOptionsVenue(t *testing.T) {
	ex, market := Options{}.venue()
	assert.Equal(t, models.ExchangeTWSE, ex)
	assert.Equal(t, models.MarketTSE, market)

	ex, market = Options{Market: models.MarketOTC}.venue()
	assert.Equal(t, models.ExchangeTPEx, ex)
	assert.Equal(t, models.MarketOTC, market)

	ex, market = Options{Exchange: models.ExchangeTAIFEX}.venue()
	assert.Equal(t, models.ExchangeTAIFEX, ex)
	assert.Equal(t, models.MarketFutOpt, market)
}
