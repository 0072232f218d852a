package twse

import (
	"context"
	"math"
	"net/url"
	"strings"

	"github.com/twmarket/twmarket/internal/clients/intraday"
	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the sector trading value rows (BFIAMU).
const (
	bfiamuColName        = 0
	bfiamuColVolume      = 1
	bfiamuColValue       = 2
	bfiamuColTransaction = 3
)

// IndicesHistorical derives daily index OHLC from the five-minute snapshot
// table (MI_5MINS_INDEX). The table is one row per snapshot time with one
// column per index; each column is grouped into a tick series and reduced.
func (c *Client) IndicesHistorical(ctx context.Context, date string) ([]*models.IndexHistorical, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))

	body, err := c.getJSON(ctx, "/afterTrading/MI_5MINS_INDEX", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() || len(body.Fields) < 2 {
		return nil, nil
	}

	// fields[0] is the snapshot time; every further field names an index.
	series := make([][]intraday.Tick, len(body.Fields)-1)
	for _, row := range body.Data {
		if len(row) != len(body.Fields) {
			continue
		}
		at := strings.TrimSpace(row[0])
		for i, cell := range row[1:] {
			if price, found := common.ParseNumber(cell); found {
				series[i] = append(series[i], intraday.Tick{Time: at, Price: price})
			}
		}
	}

	records := make([]*models.IndexHistorical, 0, len(series))
	for i, ticks := range series {
		if len(ticks) == 0 {
			continue
		}
		ohlc := intraday.Reduce(ticks)
		records = append(records, &models.IndexHistorical{
			Date:   date,
			Name:   strings.TrimSpace(body.Fields[i+1]),
			Open:   ohlc.Open,
			High:   ohlc.High,
			Low:    ohlc.Low,
			Close:  ohlc.Close,
			Change: math.Round((ohlc.Close-ohlc.Open)*100) / 100,
		})
	}
	return records, nil
}

// IndicesTrades retrieves per-sector trading value (BFIAMU). TradeWeight is
// left for the caller to derive against the whole-market trade value.
func (c *Client) IndicesTrades(ctx context.Context, date string) ([]*models.IndexTrades, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))

	body, err := c.getJSON(ctx, "/afterTrading/BFIAMU", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	records := make([]*models.IndexTrades, 0, len(body.Data))
	for _, row := range body.Data {
		if len(row) <= bfiamuColTransaction {
			continue
		}
		records = append(records, &models.IndexTrades{
			Date:        date,
			Name:        strings.TrimSpace(row[bfiamuColName]),
			TradeVolume: common.Num(row[bfiamuColVolume]),
			TradeValue:  common.Num(row[bfiamuColValue]),
			Transaction: common.Num(row[bfiamuColTransaction]),
		})
	}
	return records, nil
}
