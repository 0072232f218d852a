package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTotals(t *testing.T) {
	trades := InstInvestorsTrades{
		FiniWithoutDealersBuy:           1000,
		FiniWithoutDealersSell:          400,
		FiniWithoutDealersNetBuySell:    600,
		FiniDealersBuy:                  50,
		FiniDealersSell:                 20,
		FiniDealersNetBuySell:           30,
		SitcBuy:                         300,
		SitcSell:                        100,
		SitcNetBuySell:                  200,
		DealersForProprietaryBuy:        80,
		DealersForProprietarySell:       60,
		DealersForProprietaryNetBuySell: 20,
		DealersForHedgingBuy:            40,
		DealersForHedgingSell:           10,
		DealersForHedgingNetBuySell:     30,
	}
	trades.DeriveTotals()

	assert.Equal(t, 120.0, trades.DealersBuy)
	assert.Equal(t, 70.0, trades.DealersSell)
	assert.Equal(t, 50.0, trades.DealersNetBuySell)
	assert.Equal(t, 1050.0, trades.FiniBuy)

	// total = fini + sitc + dealers, per venue reporting convention
	assert.Equal(t, trades.FiniBuy+trades.SitcBuy+trades.DealersBuy, trades.TotalInstInvestorsBuy)
	assert.Equal(t, trades.FiniSell+trades.SitcSell+trades.DealersSell, trades.TotalInstInvestorsSell)
	assert.Equal(t, trades.FiniNetBuySell+trades.SitcNetBuySell+trades.DealersNetBuySell, trades.TotalInstInvestorsNetBuySell)
}

func TestParseExchange(t *testing.T) {
	assert.Equal(t, ExchangeTWSE, ParseExchange("上市"))
	assert.Equal(t, ExchangeTPEx, ParseExchange("上櫃"))
	assert.Equal(t, ExchangeNone, ParseExchange("emerging"))
}

func TestMarketFor(t *testing.T) {
	assert.Equal(t, MarketTSE, MarketFor(ExchangeTWSE))
	assert.Equal(t, MarketOTC, MarketFor(ExchangeTPEx))
	assert.Equal(t, MarketFutOpt, MarketFor(ExchangeTAIFEX))
	assert.Equal(t, MarketNone, MarketFor(ExchangeNone))
}
