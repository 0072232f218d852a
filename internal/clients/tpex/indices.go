package tpex

import (
	"context"
	"math"
	"strings"

	"github.com/twmarket/twmarket/internal/clients/intraday"
	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the intraday index snapshot rows (1MIN_result). Unlike
// the listed market, the OTC feed emits one row per index per snapshot.
const (
	minColName  = 0
	minColTime  = 1 // "HH:mm:ss"
	minColPrice = 2
)

// Column layout of the sector trading value rows (sectr_result).
const (
	sectrColName        = 0
	sectrColVolume      = 1
	sectrColValue       = 2
	sectrColTransaction = 3
)

// IndicesHistorical derives daily index OHLC from the intraday snapshot
// rows, grouped by index and reduced by time/price ordering.
func (c *Client) IndicesHistorical(ctx context.Context, date string) ([]*models.IndexHistorical, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/iNdex_info/minute_index/1MIN_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	groups := make(map[string][]intraday.Tick)
	var order []string
	for _, row := range body.AaData {
		if len(row) <= minColPrice {
			continue
		}
		name := strings.TrimSpace(row[minColName])
		price, found := common.ParseNumber(row[minColPrice])
		if !found {
			continue
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], intraday.Tick{
			Time:  strings.TrimSpace(row[minColTime]),
			Price: price,
		})
	}

	records := make([]*models.IndexHistorical, 0, len(order))
	for _, name := range order {
		ohlc := intraday.Reduce(groups[name])
		records = append(records, &models.IndexHistorical{
			Date:   date,
			Name:   name,
			Open:   ohlc.Open,
			High:   ohlc.High,
			Low:    ohlc.Low,
			Close:  ohlc.Close,
			Change: math.Round((ohlc.Close-ohlc.Open)*100) / 100,
		})
	}
	return records, nil
}

// IndicesTrades retrieves per-sector trading value. TradeWeight is left
// for the caller to derive against the whole-market trade value.
func (c *Client) IndicesTrades(ctx context.Context, date string) ([]*models.IndexTrades, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/historical/trading_vol_ratio/sectr_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.IndexTrades, 0, len(body.AaData))
	for _, row := range body.AaData {
		if len(row) <= sectrColTransaction {
			continue
		}
		records = append(records, &models.IndexTrades{
			Date:        date,
			Name:        strings.TrimSpace(row[sectrColName]),
			TradeVolume: common.Num(row[sectrColVolume]),
			TradeValue:  common.Num(row[sectrColValue]),
			Transaction: common.Num(row[sectrColTransaction]),
		})
	}
	return records, nil
}
