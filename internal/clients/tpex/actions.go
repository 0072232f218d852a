package tpex

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

const detailFanOutLimit = 4

// Column layout of the ex-dividend summary rows (exDailyQ_result).
const (
	exdColDate           = 0 // resumption date, ROC
	exdColSymbol         = 1
	exdColName           = 2
	exdColPreviousClose  = 3
	exdColReferencePrice = 4
	exdColDividend       = 5
	exdColDividendType   = 6
	exdColLimitUp        = 7
	exdColLimitDown      = 8
	exdColOpeningRef     = 9
	exdColExDividendRef  = 10
)

// Column layout of the per-symbol ex-dividend detail row.
const (
	exdDetailColCashDividend  = 0
	exdDetailColStockDividend = 1
)

// Column layout of the capital reduction summary rows (revivt_result).
const (
	revColDate           = 0
	revColSymbol         = 1
	revColName           = 2
	revColPreviousClose  = 3
	revColReferencePrice = 4
	revColLimitUp        = 5
	revColLimitDown      = 6
	revColOpeningRef     = 7
	revColExRightRef     = 8
	revColReason         = 9
)

// Column layout of the per-symbol capital reduction detail row.
const (
	revDetailColHaltDate          = 0
	revDetailColSharesPerThousand = 1
	revDetailColRefundPerShare    = 2
)

// Column layout of the par-value change summary rows (pvchg_result).
const (
	pvColDate           = 0
	pvColSymbol         = 1
	pvColName           = 2
	pvColPreviousClose  = 3
	pvColReferencePrice = 4
	pvColLimitUp        = 5
	pvColLimitDown      = 6
)

// Column layout of the per-symbol par-value change detail row.
const (
	pvDetailColHaltDate    = 0
	pvDetailColNewParValue = 1
	pvDetailColSplitRatio  = 2
)

func rangeQuery(startDate, endDate string) url.Values {
	query := url.Values{}
	query.Set("sd", common.ToROC(startDate))
	query.Set("ed", common.ToROC(endDate))
	return query
}

// fetchDetails issues one detail request per symbol, concurrently, and
// keys the first data row of each response by symbol.
func (c *Client) fetchDetails(ctx context.Context, path string, symbols []string) (map[string][]string, error) {
	details := make(map[string][]string, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFanOutLimit)

	for _, symbol := range symbols {
		g.Go(func() error {
			query := url.Values{}
			query.Set("code", symbol)
			var body apiResponse
			if err := c.getJSON(ctx, path, query, &body); err != nil {
				return err
			}
			if !body.ok() || len(body.AaData) == 0 {
				return nil
			}
			mu.Lock()
			details[symbol] = body.AaData[0]
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

// StocksDividends retrieves ex-dividend rows within a date range, enriched
// with per-symbol detail.
func (c *Client) StocksDividends(ctx context.Context, startDate, endDate string) ([]*models.Dividend, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/exright/dailyquo/exDailyQ_result.php", rangeQuery(startDate, endDate), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.Dividend, 0, len(body.AaData))
	symbols := make([]string, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= exdColExDividendRef {
			continue
		}
		records = append(records, &models.Dividend{
			Date:                     common.FromROC(row[exdColDate]),
			Symbol:                   strings.TrimSpace(row[exdColSymbol]),
			Name:                     strings.TrimSpace(row[exdColName]),
			PreviousClose:            common.Num(row[exdColPreviousClose]),
			ReferencePrice:           common.Num(row[exdColReferencePrice]),
			Dividend:                 common.Num(row[exdColDividend]),
			DividendType:             strings.TrimSpace(row[exdColDividendType]),
			LimitUpPrice:             common.Num(row[exdColLimitUp]),
			LimitDownPrice:           common.Num(row[exdColLimitDown]),
			OpeningReferencePrice:    common.Num(row[exdColOpeningRef]),
			ExDividendReferencePrice: common.Num(row[exdColExDividendRef]),
		})
		symbols = append(symbols, strings.TrimSpace(row[exdColSymbol]))
	}

	details, err := c.fetchDetails(ctx, "/stock/exright/dailyquo/exDailyQ_detail.php", symbols)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail, found := details[rec.Symbol]
		if !found || len(detail) <= exdDetailColStockDividend {
			continue
		}
		rec.CashDividend = common.Num(detail[exdDetailColCashDividend])
		rec.StockDividendShares = common.Num(detail[exdDetailColStockDividend])
	}
	return records, nil
}

// StocksCapitalReductions retrieves capital reduction resumptions within a
// date range, enriched with per-symbol detail.
func (c *Client) StocksCapitalReductions(ctx context.Context, startDate, endDate string) ([]*models.CapitalReduction, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/exright/revivt/revivt_result.php", rangeQuery(startDate, endDate), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.CapitalReduction, 0, len(body.AaData))
	symbols := make([]string, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= revColReason {
			continue
		}
		records = append(records, &models.CapitalReduction{
			Date:                  common.FromROC(row[revColDate]),
			Symbol:                strings.TrimSpace(row[revColSymbol]),
			Name:                  strings.TrimSpace(row[revColName]),
			PreviousClose:         common.Num(row[revColPreviousClose]),
			ReferencePrice:        common.Num(row[revColReferencePrice]),
			LimitUpPrice:          common.Num(row[revColLimitUp]),
			LimitDownPrice:        common.Num(row[revColLimitDown]),
			OpeningReferencePrice: common.Num(row[revColOpeningRef]),
			ExRightReferencePrice: common.Num(row[revColExRightRef]),
			Reason:                strings.TrimSpace(row[revColReason]),
		})
		symbols = append(symbols, strings.TrimSpace(row[revColSymbol]))
	}

	details, err := c.fetchDetails(ctx, "/stock/exright/revivt/revivt_detail.php", symbols)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail, found := details[rec.Symbol]
		if !found || len(detail) <= revDetailColRefundPerShare {
			continue
		}
		rec.HaltDate = common.FromROC(detail[revDetailColHaltDate])
		rec.SharesPerThousand = common.Num(detail[revDetailColSharesPerThousand])
		rec.RefundPerShare = common.Num(detail[revDetailColRefundPerShare])
	}
	return records, nil
}

// StocksSplits retrieves par-value change resumptions within a date range,
// enriched with per-symbol detail.
func (c *Client) StocksSplits(ctx context.Context, startDate, endDate string) ([]*models.Split, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/exright/pvchg/pvchg_result.php", rangeQuery(startDate, endDate), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.Split, 0, len(body.AaData))
	symbols := make([]string, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= pvColLimitDown {
			continue
		}
		records = append(records, &models.Split{
			Date:           common.FromROC(row[pvColDate]),
			Symbol:         strings.TrimSpace(row[pvColSymbol]),
			Name:           strings.TrimSpace(row[pvColName]),
			PreviousClose:  common.Num(row[pvColPreviousClose]),
			ReferencePrice: common.Num(row[pvColReferencePrice]),
			LimitUpPrice:   common.Num(row[pvColLimitUp]),
			LimitDownPrice: common.Num(row[pvColLimitDown]),
		})
		symbols = append(symbols, strings.TrimSpace(row[pvColSymbol]))
	}

	details, err := c.fetchDetails(ctx, "/stock/exright/pvchg/pvchg_detail.php", symbols)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail, found := details[rec.Symbol]
		if !found || len(detail) <= pvDetailColSplitRatio {
			continue
		}
		rec.HaltDate = common.FromROC(detail[pvDetailColHaltDate])
		rec.NewParValue = common.Num(detail[pvDetailColNewParValue])
		rec.SplitRatio = common.Num(detail[pvDetailColSplitRatio])
	}
	return records, nil
}
