package twse

import (
	"context"
	"net/url"
	"strings"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the daily market summary rows (FMTQIK).
const (
	fmtqikColDate        = 0 // ROC
	fmtqikColVolume      = 1
	fmtqikColValue       = 2
	fmtqikColTransaction = 3
	fmtqikColIndex       = 4
	fmtqikColChange      = 5
)

// Column layout of the institutional totals rows (BFI82U). Rows are keyed
// by investor label, not position.
const (
	bfi82uColLabel = 0
	bfi82uColBuy   = 1
	bfi82uColSell  = 2
	bfi82uColNet   = 3
)

// Investor labels in the BFI82U table.
const (
	labelDealersProprietary = "自營商(自行買賣)"
	labelDealersHedging     = "自營商(避險)"
	labelSitc               = "投信"
	labelFiniExDealers      = "外資及陸資(不含外資自營商)"
	labelFiniDealers        = "外資自營商"
)

// MarketTrades retrieves the whole-market trading summary for one date.
// The endpoint returns the full month; the requested day is selected here.
// Returns nil when the market was closed that day.
func (c *Client) MarketTrades(ctx context.Context, date string) (*models.MarketTrades, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))

	body, err := c.getJSON(ctx, "/afterTrading/FMTQIK", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	want := common.ToROC(date)
	for _, row := range body.Data {
		if len(row) <= fmtqikColChange {
			continue
		}
		if strings.TrimSpace(row[fmtqikColDate]) != want {
			continue
		}
		return &models.MarketTrades{
			Date:        date,
			Market:      string(models.MarketTSE),
			TradeVolume: common.Num(row[fmtqikColVolume]),
			TradeValue:  common.Num(row[fmtqikColValue]),
			Transaction: common.Num(row[fmtqikColTransaction]),
			Index:       common.Num(row[fmtqikColIndex]),
			Change:      common.Num(row[fmtqikColChange]),
		}, nil
	}
	return nil, nil
}

// parseBreadthCount splits the "count(limit)" cell form, e.g. "478(12)".
func parseBreadthCount(s string) (count, limit float64) {
	s = strings.TrimSpace(s)
	open := strings.Index(s, "(")
	if open < 0 {
		return common.Num(s), 0
	}
	count = common.Num(s[:open])
	limit = common.Num(strings.TrimSuffix(s[open+1:], ")"))
	return count, limit
}

// MarketBreadth retrieves the advance/decline summary from the market
// statistics table of MI_INDEX.
func (c *Client) MarketBreadth(ctx context.Context, date string) (*models.MarketBreadth, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("type", "MS")

	body, err := c.getJSON(ctx, "/afterTrading/MI_INDEX", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	rows := body.Data
	for _, tbl := range body.Tables {
		if strings.Contains(tbl.Title, "漲跌證券數") {
			rows = tbl.Data
			break
		}
	}

	breadth := &models.MarketBreadth{Date: date, Market: string(models.MarketTSE)}
	matched := false
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		label := strings.TrimSpace(row[0])
		switch {
		case strings.HasPrefix(label, "上漲"):
			breadth.Up, breadth.LimitUp = parseBreadthCount(row[1])
			matched = true
		case strings.HasPrefix(label, "下跌"):
			breadth.Down, breadth.LimitDown = parseBreadthCount(row[1])
			matched = true
		case strings.HasPrefix(label, "持平"):
			breadth.Unchanged, _ = parseBreadthCount(row[1])
			matched = true
		case strings.HasPrefix(label, "未成交"):
			breadth.Unmatched, _ = parseBreadthCount(row[1])
			matched = true
		case strings.HasPrefix(label, "無比價"):
			breadth.NoTrades, _ = parseBreadthCount(row[1])
			matched = true
		}
	}
	if !matched {
		return nil, nil
	}
	return breadth, nil
}

// MarketInstitutional retrieves the whole-market institutional breakdown
// by trade value (BFI82U).
func (c *Client) MarketInstitutional(ctx context.Context, date string) (*models.MarketInstitutional, error) {
	query := url.Values{}
	query.Set("dayDate", common.ToCompact(date))
	query.Set("type", "day")

	body, err := c.getJSON(ctx, "/fund/BFI82U", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() || len(body.Data) == 0 {
		return nil, nil
	}

	rec := &models.MarketInstitutional{Date: date, Market: string(models.MarketTSE)}
	for _, row := range body.Data {
		if len(row) <= bfi82uColNet {
			continue
		}
		buy := common.Num(row[bfi82uColBuy])
		sell := common.Num(row[bfi82uColSell])
		net := common.Num(row[bfi82uColNet])
		switch strings.TrimSpace(row[bfi82uColLabel]) {
		case labelDealersProprietary:
			rec.DealersForProprietaryBuy = buy
			rec.DealersForProprietarySell = sell
			rec.DealersForProprietaryNetBuySell = net
		case labelDealersHedging:
			rec.DealersForHedgingBuy = buy
			rec.DealersForHedgingSell = sell
			rec.DealersForHedgingNetBuySell = net
		case labelSitc:
			rec.SitcBuy = buy
			rec.SitcSell = sell
			rec.SitcNetBuySell = net
		case labelFiniExDealers:
			rec.FiniWithoutDealersBuy = buy
			rec.FiniWithoutDealersSell = sell
			rec.FiniWithoutDealersNetBuySell = net
		case labelFiniDealers:
			rec.FiniDealersBuy = buy
			rec.FiniDealersSell = sell
			rec.FiniDealersNetBuySell = net
		}
	}
	rec.DeriveTotals()
	return rec, nil
}

// Row labels in the margin totals table (MI_MARGN, selectType MS).
const (
	labelMarginUnits = "融資(交易單位)"
	labelShortUnits  = "融券(交易單位)"
	labelMarginValue = "融資金額(仟元)"
)

// Column layout of the margin totals rows.
const (
	margnTotalColLabel       = 0
	margnTotalColBuy         = 1
	margnTotalColSell        = 2
	margnTotalColRedeem      = 3
	margnTotalColBalancePrev = 4
	margnTotalColBalance     = 5
)

// MarketMarginTrades retrieves the whole-market margin summary.
func (c *Client) MarketMarginTrades(ctx context.Context, date string) (*models.MarketMarginTrades, error) {
	query := url.Values{}
	query.Set("date", common.ToCompact(date))
	query.Set("selectType", "MS")

	body, err := c.getJSON(ctx, "/marginTrading/MI_MARGN", query)
	if err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	rows := body.Data
	if len(body.Tables) > 0 {
		rows = body.Tables[0].Data
	}

	rec := &models.MarketMarginTrades{Date: date, Market: string(models.MarketTSE)}
	matched := false
	for _, row := range rows {
		if len(row) <= margnTotalColBalance {
			continue
		}
		switch strings.TrimSpace(row[margnTotalColLabel]) {
		case labelMarginUnits:
			rec.MarginBuy = common.Num(row[margnTotalColBuy])
			rec.MarginSell = common.Num(row[margnTotalColSell])
			rec.MarginRedeem = common.Num(row[margnTotalColRedeem])
			rec.MarginBalancePrev = common.Num(row[margnTotalColBalancePrev])
			rec.MarginBalance = common.Num(row[margnTotalColBalance])
			matched = true
		case labelShortUnits:
			rec.ShortBuy = common.Num(row[margnTotalColBuy])
			rec.ShortSell = common.Num(row[margnTotalColSell])
			rec.ShortRedeem = common.Num(row[margnTotalColRedeem])
			rec.ShortBalancePrev = common.Num(row[margnTotalColBalancePrev])
			rec.ShortBalance = common.Num(row[margnTotalColBalance])
			matched = true
		case labelMarginValue:
			rec.MarginBuyValue = common.Num(row[margnTotalColBuy])
			rec.MarginSellValue = common.Num(row[margnTotalColSell])
			rec.MarginRedeemValue = common.Num(row[margnTotalColRedeem])
			rec.MarginBalanceValuePrev = common.Num(row[margnTotalColBalancePrev])
			rec.MarginBalanceValue = common.Num(row[margnTotalColBalance])
			matched = true
		}
	}
	if !matched {
		return nil, nil
	}
	return rec, nil
}
