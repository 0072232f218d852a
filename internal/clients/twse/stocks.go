package twse

import (
	"context"
	"net/url"
	"strings"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the daily closing quote rows (MI_INDEX, type ALLBUT0999).
const (
	quoteColSymbol      = 0
	quoteColName        = 1
	quoteColVolume      = 2
	quoteColTransaction = 3
	quoteColTurnover    = 4
	quoteColOpen        = 5
	quoteColHigh        = 6
	quoteColLow         = 7
	quoteColClose       = 8
	quoteColDirection   = 9 // rendered as markup containing "+" or "-"
	quoteColChange      = 10
)

// Column layout of the institutional investor rows (T86).
const (
	t86ColSymbol                 = 0
	t86ColName                   = 1
	t86ColFiniExDealersBuy       = 2
	t86ColFiniExDealersSell      = 3
	t86ColFiniExDealersNet       = 4
	t86ColFiniDealersBuy         = 5
	t86ColFiniDealersSell        = 6
	t86ColFiniDealersNet         = 7
	t86ColSitcBuy                = 8
	t86ColSitcSell               = 9
	t86ColSitcNet                = 10
	t86ColDealersNet             = 11
	t86ColDealersProprietaryBuy  = 12
	t86ColDealersProprietarySell = 13
	t86ColDealersProprietaryNet  = 14
	t86ColDealersHedgingBuy      = 15
	t86ColDealersHedgingSell     = 16
	t86ColDealersHedgingNet      = 17
)

// Column layout of the foreign holdings rows (MI_QFIIS).
const (
	qfiisColSymbol           = 0
	qfiisColName             = 1
	qfiisColISIN             = 2
	qfiisColIssuedShares     = 3
	qfiisColAvailableShares  = 4
	qfiisColSharesHeld       = 5
	qfiisColAvailablePercent = 6
	qfiisColHeldPercent      = 7
	qfiisColUpperLimit       = 8
)

// Column layout of the per-stock margin rows (MI_MARGN, selectType ALL).
const (
	margnColSymbol            = 0
	margnColName              = 1
	margnColMarginBuy         = 2
	margnColMarginSell        = 3
	margnColMarginRedeem      = 4
	margnColMarginBalancePrev = 5
	margnColMarginBalance     = 6
	margnColMarginQuota       = 7
	margnColShortBuy          = 8
	margnColShortSell         = 9
	margnColShortRedeem       = 10
	margnColShortBalancePrev  = 11
	margnColShortBalance      = 12
	margnColShortQuota        = 13
	margnColOffset            = 14
	margnColNote              = 15
)

// Column layout of the short sale rows (TWT93U).
const (
	twt93uColSymbol                 = 0
	twt93uColName                   = 1
	twt93uColMarginShortBalancePrev = 2
	twt93uColMarginShortSell        = 3
	twt93uColMarginShortBuy         = 4
	twt93uColMarginShortRedeem      = 5
	twt93uColMarginShortBalance     = 6
	twt93uColMarginShortQuota       = 7
	twt93uColSBLBalancePrev         = 8
	twt93uColSBLSale                = 9
	twt93uColSBLReturn              = 10
	twt93uColSBLAdjustment          = 11
	twt93uColSBLBalance             = 12
	twt93uColSBLQuota               = 13
	twt93uColNote                   = 14
)

// Column layout of the valuation rows (BWIBBU_d).
const (
	bwibbuColSymbol        = 0
	bwibbuColName          = 1
	bwibbuColDividendYield = 2
	bwibbuColDividendYear  = 3
	bwibbuColPeRatio       = 4
	bwibbuColPbRatio       = 5
)

// changeSign derives the signed direction from the rendered direction cell.
// The exchange emits markup whose text is "+", "-", or "X" (no change).
func changeSign(direction string) float64 {
	if strings.Contains(direction, "-") {
		return -1
	}
	return 1
}

// StocksHistorical retrieves one day of OHLCV rows for every listed equity.
func (c *Client) StocksHistorical(ctx context.Context, date string) ([]*models.StockHistorical, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("type", "ALLBUT0999")

	body, err := c.getJSON(ctx, "/afterTrading/MI_INDEX", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	// The composite response carries several tables; the closing quote
	// table is the one reporting per-security prices.
	var rows [][]string
	for _, tbl := range body.Tables {
		if strings.Contains(tbl.Title, "每日收盤行情") {
			rows = tbl.Data
			break
		}
	}
	if rows == nil && len(body.Tables) > 0 {
		rows = body.Tables[len(body.Tables)-1].Data
	}
	if rows == nil {
		rows = body.Data
	}

	records := make([]*models.StockHistorical, 0, len(rows))
	for _, row := range rows {
		if len(row) <= quoteColChange {
			continue
		}
		records = append(records, &models.StockHistorical{
			Date:        date,
			Exchange:    string(models.ExchangeTWSE),
			Symbol:      strings.TrimSpace(row[quoteColSymbol]),
			Name:        strings.TrimSpace(row[quoteColName]),
			Open:        common.Num(row[quoteColOpen]),
			High:        common.Num(row[quoteColHigh]),
			Low:         common.Num(row[quoteColLow]),
			Close:       common.Num(row[quoteColClose]),
			Volume:      common.Num(row[quoteColVolume]),
			Turnover:    common.Num(row[quoteColTurnover]),
			Transaction: common.Num(row[quoteColTransaction]),
			Change:      changeSign(row[quoteColDirection]) * common.Num(row[quoteColChange]),
		})
	}
	return records, nil
}

// StocksInstitutional retrieves the institutional investor breakdown per equity.
func (c *Client) StocksInstitutional(ctx context.Context, date string) ([]*models.StockInstitutional, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("selectType", "ALLBUT0999")

	body, err := c.getJSON(ctx, "/fund/T86", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.StockInstitutional, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= t86ColDealersHedgingNet {
			continue
		}
		rec := &models.StockInstitutional{
			Date:     date,
			Exchange: string(models.ExchangeTWSE),
			Symbol:   strings.TrimSpace(row[t86ColSymbol]),
			Name:     strings.TrimSpace(row[t86ColName]),
		}
		rec.FiniWithoutDealersBuy = common.Num(row[t86ColFiniExDealersBuy])
		rec.FiniWithoutDealersSell = common.Num(row[t86ColFiniExDealersSell])
		rec.FiniWithoutDealersNetBuySell = common.Num(row[t86ColFiniExDealersNet])
		rec.FiniDealersBuy = common.Num(row[t86ColFiniDealersBuy])
		rec.FiniDealersSell = common.Num(row[t86ColFiniDealersSell])
		rec.FiniDealersNetBuySell = common.Num(row[t86ColFiniDealersNet])
		rec.SitcBuy = common.Num(row[t86ColSitcBuy])
		rec.SitcSell = common.Num(row[t86ColSitcSell])
		rec.SitcNetBuySell = common.Num(row[t86ColSitcNet])
		rec.DealersForProprietaryBuy = common.Num(row[t86ColDealersProprietaryBuy])
		rec.DealersForProprietarySell = common.Num(row[t86ColDealersProprietarySell])
		rec.DealersForProprietaryNetBuySell = common.Num(row[t86ColDealersProprietaryNet])
		rec.DealersForHedgingBuy = common.Num(row[t86ColDealersHedgingBuy])
		rec.DealersForHedgingSell = common.Num(row[t86ColDealersHedgingSell])
		rec.DealersForHedgingNetBuySell = common.Num(row[t86ColDealersHedgingNet])
		rec.DeriveTotals()
		records = append(records, rec)
	}
	return records, nil
}

// StocksFiniHoldings retrieves foreign holdings per equity.
func (c *Client) StocksFiniHoldings(ctx context.Context, date string) ([]*models.FiniHoldings, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("selectType", "ALLBUT0999")

	body, err := c.getJSON(ctx, "/fund/MI_QFIIS", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.FiniHoldings, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= qfiisColUpperLimit {
			continue
		}
		records = append(records, &models.FiniHoldings{
			Date:              date,
			Symbol:            strings.TrimSpace(row[qfiisColSymbol]),
			Name:              strings.TrimSpace(row[qfiisColName]),
			IssuedShares:      common.Num(row[qfiisColIssuedShares]),
			AvailableShares:   common.Num(row[qfiisColAvailableShares]),
			SharesHeld:        common.Num(row[qfiisColSharesHeld]),
			AvailablePercent:  common.Num(row[qfiisColAvailablePercent]),
			HeldPercent:       common.Num(row[qfiisColHeldPercent]),
			UpperLimitPercent: common.Num(row[qfiisColUpperLimit]),
		})
	}
	return records, nil
}

// StocksMarginTrades retrieves margin trading activity per equity.
func (c *Client) StocksMarginTrades(ctx context.Context, date string) ([]*models.MarginTrades, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("selectType", "ALL")

	body, err := c.getJSON(ctx, "/marginTrading/MI_MARGN", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	// The per-security table is the last one; the first carries market totals.
	rows := body.Data
	if len(body.Tables) > 0 {
		rows = body.Tables[len(body.Tables)-1].Data
	}

	records := make([]*models.MarginTrades, 0, len(rows))
	for _, row := range rows {
		if len(row) <= margnColNote {
			continue
		}
		records = append(records, &models.MarginTrades{
			Date:              date,
			Symbol:            strings.TrimSpace(row[margnColSymbol]),
			Name:              strings.TrimSpace(row[margnColName]),
			MarginBuy:         common.Num(row[margnColMarginBuy]),
			MarginSell:        common.Num(row[margnColMarginSell]),
			MarginRedeem:      common.Num(row[margnColMarginRedeem]),
			MarginBalancePrev: common.Num(row[margnColMarginBalancePrev]),
			MarginBalance:     common.Num(row[margnColMarginBalance]),
			MarginQuota:       common.Num(row[margnColMarginQuota]),
			ShortBuy:          common.Num(row[margnColShortBuy]),
			ShortSell:         common.Num(row[margnColShortSell]),
			ShortRedeem:       common.Num(row[margnColShortRedeem]),
			ShortBalancePrev:  common.Num(row[margnColShortBalancePrev]),
			ShortBalance:      common.Num(row[margnColShortBalance]),
			ShortQuota:        common.Num(row[margnColShortQuota]),
			Offset:            common.Num(row[margnColOffset]),
			Note:              strings.TrimSpace(row[margnColNote]),
		})
	}
	return records, nil
}

// StocksShortSales retrieves short sale activity per equity.
func (c *Client) StocksShortSales(ctx context.Context, date string) ([]*models.ShortSales, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))

	body, err := c.getJSON(ctx, "/marginTrading/TWT93U", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.ShortSales, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= twt93uColNote {
			continue
		}
		records = append(records, &models.ShortSales{
			Date:                   date,
			Symbol:                 strings.TrimSpace(row[twt93uColSymbol]),
			Name:                   strings.TrimSpace(row[twt93uColName]),
			MarginShortBalancePrev: common.Num(row[twt93uColMarginShortBalancePrev]),
			MarginShortSell:        common.Num(row[twt93uColMarginShortSell]),
			MarginShortBuy:         common.Num(row[twt93uColMarginShortBuy]),
			MarginShortRedeem:      common.Num(row[twt93uColMarginShortRedeem]),
			MarginShortBalance:     common.Num(row[twt93uColMarginShortBalance]),
			MarginShortQuota:       common.Num(row[twt93uColMarginShortQuota]),
			SBLShortBalancePrev:    common.Num(row[twt93uColSBLBalancePrev]),
			SBLShortSale:           common.Num(row[twt93uColSBLSale]),
			SBLShortReturn:         common.Num(row[twt93uColSBLReturn]),
			SBLShortAdjustment:     common.Num(row[twt93uColSBLAdjustment]),
			SBLShortBalance:        common.Num(row[twt93uColSBLBalance]),
			SBLShortQuota:          common.Num(row[twt93uColSBLQuota]),
			Note:                   strings.TrimSpace(row[twt93uColNote]),
		})
	}
	return records, nil
}

// StocksValues retrieves valuation ratios per equity.
func (c *Client) StocksValues(ctx context.Context, date string) ([]*models.StockValues, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("selectType", "ALL")

	body, err := c.getJSON(ctx, "/afterTrading/BWIBBU_d", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.StockValues, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= bwibbuColPbRatio {
			continue
		}
		records = append(records, &models.StockValues{
			Date:          date,
			Symbol:        strings.TrimSpace(row[bwibbuColSymbol]),
			Name:          strings.TrimSpace(row[bwibbuColName]),
			DividendYield: common.Num(row[bwibbuColDividendYield]),
			DividendYear:  common.Int(row[bwibbuColDividendYear]) + 1911,
			PeRatio:       common.Num(row[bwibbuColPeRatio]),
			PbRatio:       common.Num(row[bwibbuColPbRatio]),
		})
	}
	return records, nil
}
