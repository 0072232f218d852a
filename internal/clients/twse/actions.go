package twse

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// detailFanOutLimit caps concurrent per-symbol detail fetches. The shared
// rate limiter still governs the outbound request rate.
const detailFanOutLimit = 4

// Column layout of the ex-dividend summary rows (TWT49U).
const (
	twt49uColDate           = 0 // resumption date, ROC
	twt49uColSymbol         = 1
	twt49uColName           = 2
	twt49uColPreviousClose  = 3
	twt49uColReferencePrice = 4
	twt49uColDividend       = 5 // combined rights + dividend value
	twt49uColDividendType   = 6
	twt49uColLimitUp        = 7
	twt49uColLimitDown      = 8
	twt49uColOpeningRef     = 9
	twt49uColExDividendRef  = 10
)

// Column layout of the per-symbol ex-dividend detail row (TWT49UDetail).
const (
	twt49uDetailColCashDividend  = 0
	twt49uDetailColStockDividend = 1 // shares per thousand held
)

// Column layout of the capital reduction summary rows (TWT55U).
const (
	twt55uColDate           = 0
	twt55uColSymbol         = 1
	twt55uColName           = 2
	twt55uColPreviousClose  = 3
	twt55uColReferencePrice = 4
	twt55uColLimitUp        = 5
	twt55uColLimitDown      = 6
	twt55uColOpeningRef     = 7
	twt55uColExRightRef     = 8
	twt55uColReason         = 9
)

// Column layout of the per-symbol capital reduction detail row (TWT55UDetail).
const (
	twt55uDetailColHaltDate          = 0
	twt55uDetailColSharesPerThousand = 1
	twt55uDetailColRefundPerShare    = 2
)

// Column layout of the par-value change summary rows (TWTAWU).
const (
	twtawuColDate           = 0
	twtawuColSymbol         = 1
	twtawuColName           = 2
	twtawuColPreviousClose  = 3
	twtawuColReferencePrice = 4
	twtawuColLimitUp        = 5
	twtawuColLimitDown      = 6
)

// Column layout of the per-symbol par-value change detail row (TWTAWUDetail).
const (
	twtawuDetailColHaltDate    = 0
	twtawuDetailColNewParValue = 1
	twtawuDetailColSplitRatio  = 2
)

func (c *Client) rangeQuery(startDate, endDate string) url.Values {
	query := url.Values{}
	query.Set("startDate", common.ToCompact(startDate))
	query.Set("endDate", common.ToCompact(endDate))
	return query
}

// fetchDetails issues one detail request per symbol and returns the first
// data row of each, keyed by symbol. Fetches run concurrently; association
// is by key, never by completion order.
func (c *Client) fetchDetails(ctx context.Context, path string, symbols []string) (map[string][]string, error) {
	details := make(map[string][]string, len(symbols))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFanOutLimit)

	for _, symbol := range symbols {
		g.Go(func() error {
			query := url.Values{}
			query.Set("STK_NO", symbol)
			body, err := c.getJSON(ctx, path, query)
			if err != nil {
				return err
			}
			if !body.ok() || len(body.Data) == 0 {
				return nil
			}
			mu.Lock()
			details[symbol] = body.Data[0]
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

// StocksDividends retrieves ex-dividend rows within a date range. Each
// summary row is enriched with the per-symbol detail fetch.
func (c *Client) StocksDividends(ctx context.Context, startDate, endDate string) ([]*models.Dividend, error) {
	body, err := c.getJSON(ctx, "/exRight/TWT49U", c.rangeQuery(startDate, endDate))
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.Dividend, 0, len(body.Data))
	symbols := make([]string, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= twt49uColExDividendRef {
			continue
		}
		records = append(records, &models.Dividend{
			Date:                     common.FromROC(row[twt49uColDate]),
			Symbol:                   strings.TrimSpace(row[twt49uColSymbol]),
			Name:                     strings.TrimSpace(row[twt49uColName]),
			PreviousClose:            common.Num(row[twt49uColPreviousClose]),
			ReferencePrice:           common.Num(row[twt49uColReferencePrice]),
			Dividend:                 common.Num(row[twt49uColDividend]),
			DividendType:             strings.TrimSpace(row[twt49uColDividendType]),
			LimitUpPrice:             common.Num(row[twt49uColLimitUp]),
			LimitDownPrice:           common.Num(row[twt49uColLimitDown]),
			OpeningReferencePrice:    common.Num(row[twt49uColOpeningRef]),
			ExDividendReferencePrice: common.Num(row[twt49uColExDividendRef]),
		})
		symbols = append(symbols, strings.TrimSpace(row[twt49uColSymbol]))
	}

	details, err := c.fetchDetails(ctx, "/exRight/TWT49UDetail", symbols)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail, found := details[rec.Symbol]
		if !found || len(detail) <= twt49uDetailColStockDividend {
			continue
		}
		rec.CashDividend = common.Num(detail[twt49uDetailColCashDividend])
		rec.StockDividendShares = common.Num(detail[twt49uDetailColStockDividend])
	}
	return records, nil
}

// StocksCapitalReductions retrieves capital reduction resumptions within a
// date range, enriched with per-symbol detail.
func (c *Client) StocksCapitalReductions(ctx context.Context, startDate, endDate string) ([]*models.CapitalReduction, error) {
	body, err := c.getJSON(ctx, "/announcement/TWT55U", c.rangeQuery(startDate, endDate))
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.CapitalReduction, 0, len(body.Data))
	symbols := make([]string, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= twt55uColReason {
			continue
		}
		records = append(records, &models.CapitalReduction{
			Date:                  common.FromROC(row[twt55uColDate]),
			Symbol:                strings.TrimSpace(row[twt55uColSymbol]),
			Name:                  strings.TrimSpace(row[twt55uColName]),
			PreviousClose:         common.Num(row[twt55uColPreviousClose]),
			ReferencePrice:        common.Num(row[twt55uColReferencePrice]),
			LimitUpPrice:          common.Num(row[twt55uColLimitUp]),
			LimitDownPrice:        common.Num(row[twt55uColLimitDown]),
			OpeningReferencePrice: common.Num(row[twt55uColOpeningRef]),
			ExRightReferencePrice: common.Num(row[twt55uColExRightRef]),
			Reason:                strings.TrimSpace(row[twt55uColReason]),
		})
		symbols = append(symbols, strings.TrimSpace(row[twt55uColSymbol]))
	}

	details, err := c.fetchDetails(ctx, "/announcement/TWT55UDetail", symbols)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail, found := details[rec.Symbol]
		if !found || len(detail) <= twt55uDetailColRefundPerShare {
			continue
		}
		rec.HaltDate = common.FromROC(detail[twt55uDetailColHaltDate])
		rec.SharesPerThousand = common.Num(detail[twt55uDetailColSharesPerThousand])
		rec.RefundPerShare = common.Num(detail[twt55uDetailColRefundPerShare])
	}
	return records, nil
}

// StocksSplits retrieves par-value change resumptions within a date range,
// enriched with per-symbol detail.
func (c *Client) StocksSplits(ctx context.Context, startDate, endDate string) ([]*models.Split, error) {
	body, err := c.getJSON(ctx, "/change/TWTAWU", c.rangeQuery(startDate, endDate))
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.Split, 0, len(body.Data))
	symbols := make([]string, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= twtawuColLimitDown {
			continue
		}
		records = append(records, &models.Split{
			Date:           common.FromROC(row[twtawuColDate]),
			Symbol:         strings.TrimSpace(row[twtawuColSymbol]),
			Name:           strings.TrimSpace(row[twtawuColName]),
			PreviousClose:  common.Num(row[twtawuColPreviousClose]),
			ReferencePrice: common.Num(row[twtawuColReferencePrice]),
			LimitUpPrice:   common.Num(row[twtawuColLimitUp]),
			LimitDownPrice: common.Num(row[twtawuColLimitDown]),
		})
		symbols = append(symbols, strings.TrimSpace(row[twtawuColSymbol]))
	}

	details, err := c.fetchDetails(ctx, "/change/TWTAWUDetail", symbols)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		detail, found := details[rec.Symbol]
		if !found || len(detail) <= twtawuDetailColSplitRatio {
			continue
		}
		rec.HaltDate = common.FromROC(detail[twtawuDetailColHaltDate])
		rec.NewParValue = common.Num(detail[twtawuDetailColNewParValue])
		rec.SplitRatio = common.Num(detail[twtawuDetailColSplitRatio])
	}
	return records, nil
}
