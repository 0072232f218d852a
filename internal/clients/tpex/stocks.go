package tpex

import (
	"context"
	"strings"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the daily close quote rows (stk_quote_result).
const (
	quoteColSymbol      = 0
	quoteColName        = 1
	quoteColClose       = 2
	quoteColChange      = 3 // magnitude; sign carried by the style token
	quoteColChangeStyle = 4 // css class token, "green" marks a decline
	quoteColOpen        = 5
	quoteColHigh        = 6
	quoteColLow         = 7
	quoteColVolume      = 8
	quoteColTurnover    = 9
	quoteColTransaction = 10
)

// Column layout of the institutional investor rows (3itrade_hedge_result).
const (
	instColSymbol                 = 0
	instColName                   = 1
	instColFiniExDealersBuy       = 2
	instColFiniExDealersSell      = 3
	instColFiniExDealersNet       = 4
	instColFiniDealersBuy         = 5
	instColFiniDealersSell        = 6
	instColFiniDealersNet         = 7
	instColSitcBuy                = 8
	instColSitcSell               = 9
	instColSitcNet                = 10
	instColDealersProprietaryBuy  = 11
	instColDealersProprietarySell = 12
	instColDealersProprietaryNet  = 13
	instColDealersHedgingBuy      = 14
	instColDealersHedgingSell     = 15
	instColDealersHedgingNet      = 16
)

// Column layout of the foreign holdings rows (qfii_result).
const (
	qfiiColSymbol           = 0
	qfiiColName             = 1
	qfiiColIssuedShares     = 2
	qfiiColAvailableShares  = 3
	qfiiColSharesHeld       = 4
	qfiiColAvailablePercent = 5
	qfiiColHeldPercent      = 6
	qfiiColUpperLimit       = 7
)

// Column layout of the margin balance rows (margin_bal_result).
const (
	margColSymbol            = 0
	margColName              = 1
	margColMarginBalancePrev = 2
	margColMarginBuy         = 3
	margColMarginSell        = 4
	margColMarginRedeem      = 5
	margColMarginBalance     = 6
	margColMarginQuota       = 7
	margColShortBalancePrev  = 8
	margColShortSell         = 9
	margColShortBuy          = 10
	margColShortRedeem       = 11
	margColShortBalance      = 12
	margColShortQuota        = 13
	margColOffset            = 14
	margColNote              = 15
)

// Column layout of the short sale rows (margin_sbl_result).
const (
	sblColSymbol                 = 0
	sblColName                   = 1
	sblColMarginShortBalancePrev = 2
	sblColMarginShortSell        = 3
	sblColMarginShortBuy         = 4
	sblColMarginShortRedeem      = 5
	sblColMarginShortBalance     = 6
	sblColMarginShortQuota       = 7
	sblColSBLBalancePrev         = 8
	sblColSBLSale                = 9
	sblColSBLReturn              = 10
	sblColSBLAdjustment          = 11
	sblColSBLBalance             = 12
	sblColSBLQuota               = 13
	sblColNote                   = 14
)

// Column layout of the valuation rows (pera_result).
const (
	peraColSymbol        = 0
	peraColName          = 1
	peraColPeRatio       = 2
	peraColDividend      = 3
	peraColDividendYear  = 4
	peraColDividendYield = 5
	peraColPbRatio       = 6
)

// StocksHistorical retrieves one day of OHLCV rows for every OTC equity.
// Structured warrant rows are excluded.
func (c *Client) StocksHistorical(ctx context.Context, date string) ([]*models.StockHistorical, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/aftertrading/daily_close_quotes/stk_quote_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.StockHistorical, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= quoteColTransaction {
			continue
		}
		symbol := strings.TrimSpace(row[quoteColSymbol])
		if isWarrant(symbol) {
			continue
		}
		records = append(records, &models.StockHistorical{
			Date:        date,
			Exchange:    string(models.ExchangeTPEx),
			Symbol:      symbol,
			Name:        strings.TrimSpace(row[quoteColName]),
			Open:        common.Num(row[quoteColOpen]),
			High:        common.Num(row[quoteColHigh]),
			Low:         common.Num(row[quoteColLow]),
			Close:       common.Num(row[quoteColClose]),
			Volume:      common.Num(row[quoteColVolume]),
			Turnover:    common.Num(row[quoteColTurnover]),
			Transaction: common.Num(row[quoteColTransaction]),
			Change:      signFromStyle(row[quoteColChangeStyle]) * common.Num(row[quoteColChange]),
		})
	}
	return records, nil
}

// StocksInstitutional retrieves the institutional investor breakdown per equity.
func (c *Client) StocksInstitutional(ctx context.Context, date string) ([]*models.StockInstitutional, error) {
	query := dateQuery(date)
	query.Set("se", "EW")
	query.Set("t", "D")

	var body apiResponse
	if err := c.getJSON(ctx, "/stock/3insti/daily_trade/3itrade_hedge_result.php", query, &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.StockInstitutional, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= instColDealersHedgingNet {
			continue
		}
		rec := &models.StockInstitutional{
			Date:     date,
			Exchange: string(models.ExchangeTPEx),
			Symbol:   strings.TrimSpace(row[instColSymbol]),
			Name:     strings.TrimSpace(row[instColName]),
		}
		rec.FiniWithoutDealersBuy = common.Num(row[instColFiniExDealersBuy])
		rec.FiniWithoutDealersSell = common.Num(row[instColFiniExDealersSell])
		rec.FiniWithoutDealersNetBuySell = common.Num(row[instColFiniExDealersNet])
		rec.FiniDealersBuy = common.Num(row[instColFiniDealersBuy])
		rec.FiniDealersSell = common.Num(row[instColFiniDealersSell])
		rec.FiniDealersNetBuySell = common.Num(row[instColFiniDealersNet])
		rec.SitcBuy = common.Num(row[instColSitcBuy])
		rec.SitcSell = common.Num(row[instColSitcSell])
		rec.SitcNetBuySell = common.Num(row[instColSitcNet])
		rec.DealersForProprietaryBuy = common.Num(row[instColDealersProprietaryBuy])
		rec.DealersForProprietarySell = common.Num(row[instColDealersProprietarySell])
		rec.DealersForProprietaryNetBuySell = common.Num(row[instColDealersProprietaryNet])
		rec.DealersForHedgingBuy = common.Num(row[instColDealersHedgingBuy])
		rec.DealersForHedgingSell = common.Num(row[instColDealersHedgingSell])
		rec.DealersForHedgingNetBuySell = common.Num(row[instColDealersHedgingNet])
		rec.DeriveTotals()
		records = append(records, rec)
	}
	return records, nil
}

// StocksFiniHoldings retrieves foreign holdings per equity.
func (c *Client) StocksFiniHoldings(ctx context.Context, date string) ([]*models.FiniHoldings, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/3insti/qfii/qfii_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.FiniHoldings, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= qfiiColUpperLimit {
			continue
		}
		records = append(records, &models.FiniHoldings{
			Date:              date,
			Symbol:            strings.TrimSpace(row[qfiiColSymbol]),
			Name:              strings.TrimSpace(row[qfiiColName]),
			IssuedShares:      common.Num(row[qfiiColIssuedShares]),
			AvailableShares:   common.Num(row[qfiiColAvailableShares]),
			SharesHeld:        common.Num(row[qfiiColSharesHeld]),
			AvailablePercent:  common.Num(row[qfiiColAvailablePercent]),
			HeldPercent:       common.Num(row[qfiiColHeldPercent]),
			UpperLimitPercent: common.Num(row[qfiiColUpperLimit]),
		})
	}
	return records, nil
}

// StocksMarginTrades retrieves margin trading activity per equity.
func (c *Client) StocksMarginTrades(ctx context.Context, date string) ([]*models.MarginTrades, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/margin_trading/margin_balance/margin_bal_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.MarginTrades, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= margColNote {
			continue
		}
		records = append(records, &models.MarginTrades{
			Date:              date,
			Symbol:            strings.TrimSpace(row[margColSymbol]),
			Name:              strings.TrimSpace(row[margColName]),
			MarginBalancePrev: common.Num(row[margColMarginBalancePrev]),
			MarginBuy:         common.Num(row[margColMarginBuy]),
			MarginSell:        common.Num(row[margColMarginSell]),
			MarginRedeem:      common.Num(row[margColMarginRedeem]),
			MarginBalance:     common.Num(row[margColMarginBalance]),
			MarginQuota:       common.Num(row[margColMarginQuota]),
			ShortBalancePrev:  common.Num(row[margColShortBalancePrev]),
			ShortSell:         common.Num(row[margColShortSell]),
			ShortBuy:          common.Num(row[margColShortBuy]),
			ShortRedeem:       common.Num(row[margColShortRedeem]),
			ShortBalance:      common.Num(row[margColShortBalance]),
			ShortQuota:        common.Num(row[margColShortQuota]),
			Offset:            common.Num(row[margColOffset]),
			Note:              strings.TrimSpace(row[margColNote]),
		})
	}
	return records, nil
}

// StocksShortSales retrieves short sale activity per equity.
func (c *Client) StocksShortSales(ctx context.Context, date string) ([]*models.ShortSales, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/margin_trading/margin_sbl/margin_sbl_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.ShortSales, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= sblColNote {
			continue
		}
		records = append(records, &models.ShortSales{
			Date:                   date,
			Symbol:                 strings.TrimSpace(row[sblColSymbol]),
			Name:                   strings.TrimSpace(row[sblColName]),
			MarginShortBalancePrev: common.Num(row[sblColMarginShortBalancePrev]),
			MarginShortSell:        common.Num(row[sblColMarginShortSell]),
			MarginShortBuy:         common.Num(row[sblColMarginShortBuy]),
			MarginShortRedeem:      common.Num(row[sblColMarginShortRedeem]),
			MarginShortBalance:     common.Num(row[sblColMarginShortBalance]),
			MarginShortQuota:       common.Num(row[sblColMarginShortQuota]),
			SBLShortBalancePrev:    common.Num(row[sblColSBLBalancePrev]),
			SBLShortSale:           common.Num(row[sblColSBLSale]),
			SBLShortReturn:         common.Num(row[sblColSBLReturn]),
			SBLShortAdjustment:     common.Num(row[sblColSBLAdjustment]),
			SBLShortBalance:        common.Num(row[sblColSBLBalance]),
			SBLShortQuota:          common.Num(row[sblColSBLQuota]),
			Note:                   strings.TrimSpace(row[sblColNote]),
		})
	}
	return records, nil
}

// StocksValues retrieves valuation ratios per equity.
func (c *Client) StocksValues(ctx context.Context, date string) ([]*models.StockValues, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/aftertrading/peratio_analysis/pera_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.StockValues, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= peraColPbRatio {
			continue
		}
		records = append(records, &models.StockValues{
			Date:          date,
			Symbol:        strings.TrimSpace(row[peraColSymbol]),
			Name:          strings.TrimSpace(row[peraColName]),
			PeRatio:       common.Num(row[peraColPeRatio]),
			DividendYear:  common.Int(row[peraColDividendYear]) + 1911,
			DividendYield: common.Num(row[peraColDividendYield]),
			PbRatio:       common.Num(row[peraColPbRatio]),
		})
	}
	return records, nil
}
