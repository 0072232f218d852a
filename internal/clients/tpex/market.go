package tpex

import (
	"context"
	"strings"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the daily trading index rows (st41_result).
const (
	st41ColDate        = 0 // ROC
	st41ColVolume      = 1
	st41ColValue       = 2
	st41ColTransaction = 3
	st41ColIndex       = 4
	st41ColChange      = 5
)

// Investor labels in the institutional summary table.
const (
	labelFini               = "外資及陸資"
	labelFiniExDealers      = "外資及陸資(不含外資自營商)"
	labelFiniDealers        = "外資自營商"
	labelSitc               = "投信"
	labelDealersProprietary = "自營商(自行買賣)"
	labelDealersHedging     = "自營商(避險)"
)

// Column layout of the institutional summary rows.
const (
	instSumColLabel = 0
	instSumColBuy   = 1
	instSumColSell  = 2
	instSumColNet   = 3
)

// highlightResponse is the market highlight envelope; unlike the listing
// endpoints it reports named fields rather than positional rows.
type highlightResponse struct {
	ReportDate    string `json:"reportDate"`
	ITotalRecords int    `json:"iTotalRecords"`
	UpNum         string `json:"upNum"`
	UpStopNum     string `json:"upStopNum"`
	DownNum       string `json:"downNum"`
	DownStopNum   string `json:"downStopNum"`
	NoChangeNum   string `json:"noChangeNum"`
	NoTradeNum    string `json:"noTradeNum"`
}

// MarketTrades retrieves the whole-market trading summary for one date.
// The endpoint returns the surrounding month; the requested day is
// selected here. Returns nil when the market was closed that day.
func (c *Client) MarketTrades(ctx context.Context, date string) (*models.MarketTrades, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/aftertrading/daily_trading_index/st41_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	want := common.ToROC(date)
	for _, row := range body.AaData {
		if len(row) <= st41ColChange {
			continue
		}
		if strings.TrimSpace(row[st41ColDate]) != want {
			continue
		}
		return &models.MarketTrades{
			Date:        date,
			Market:      string(models.MarketOTC),
			TradeVolume: common.Num(row[st41ColVolume]),
			TradeValue:  common.Num(row[st41ColValue]),
			Transaction: common.Num(row[st41ColTransaction]),
			Index:       common.Num(row[st41ColIndex]),
			Change:      common.Num(row[st41ColChange]),
		}, nil
	}
	return nil, nil
}

// MarketBreadth retrieves the advance/decline summary from the market
// highlight endpoint.
func (c *Client) MarketBreadth(ctx context.Context, date string) (*models.MarketBreadth, error) {
	var body highlightResponse
	if err := c.getJSON(ctx, "/stock/aftertrading/market_highlight/highlight_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if body.ITotalRecords == 0 && body.UpNum == "" {
		return nil, nil
	}

	return &models.MarketBreadth{
		Date:      date,
		Market:    string(models.MarketOTC),
		Up:        common.Num(body.UpNum),
		LimitUp:   common.Num(body.UpStopNum),
		Down:      common.Num(body.DownNum),
		LimitDown: common.Num(body.DownStopNum),
		Unchanged: common.Num(body.NoChangeNum),
		Unmatched: common.Num(body.NoTradeNum),
	}, nil
}

// MarketInstitutional retrieves the whole-market institutional breakdown
// by trade value.
func (c *Client) MarketInstitutional(ctx context.Context, date string) (*models.MarketInstitutional, error) {
	query := dateQuery(date)
	query.Set("t", "D")

	var body apiResponse
	if err := c.getJSON(ctx, "/stock/3insti/3insti_summary/3itrdsum_result.php", query, &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	rec := &models.MarketInstitutional{Date: date, Market: string(models.MarketOTC)}
	for _, row := range body.AaData {
		if len(row) <= instSumColNet {
			continue
		}
		buy := common.Num(row[instSumColBuy])
		sell := common.Num(row[instSumColSell])
		net := common.Num(row[instSumColNet])
		switch strings.TrimSpace(row[instSumColLabel]) {
		case labelFiniExDealers, labelFini:
			rec.FiniWithoutDealersBuy = buy
			rec.FiniWithoutDealersSell = sell
			rec.FiniWithoutDealersNetBuySell = net
		case labelFiniDealers:
			rec.FiniDealersBuy = buy
			rec.FiniDealersSell = sell
			rec.FiniDealersNetBuySell = net
		case labelSitc:
			rec.SitcBuy = buy
			rec.SitcSell = sell
			rec.SitcNetBuySell = net
		case labelDealersProprietary:
			rec.DealersForProprietaryBuy = buy
			rec.DealersForProprietarySell = sell
			rec.DealersForProprietaryNetBuySell = net
		case labelDealersHedging:
			rec.DealersForHedgingBuy = buy
			rec.DealersForHedgingSell = sell
			rec.DealersForHedgingNetBuySell = net
		}
	}
	rec.DeriveTotals()
	return rec, nil
}

// Row labels in the margin summary table.
const (
	labelMarginUnits = "融資(交易單位)"
	labelShortUnits  = "融券(交易單位)"
	labelMarginValue = "融資金額(仟元)"
)

// Column layout of the margin summary rows.
const (
	margSumColLabel       = 0
	margSumColBalancePrev = 1
	margSumColBuy         = 2
	margSumColSell        = 3
	margSumColRedeem      = 4
	margSumColBalance     = 5
)

// MarketMarginTrades retrieves the whole-market margin summary.
func (c *Client) MarketMarginTrades(ctx context.Context, date string) (*models.MarketMarginTrades, error) {
	var body apiResponse
	if err := c.getJSON(ctx, "/stock/margin_trading/margin_summary/margin_sum_result.php", dateQuery(date), &body); err != nil {
		return nil, err
	}
	if !body.ok() {
		return nil, nil
	}

	rec := &models.MarketMarginTrades{Date: date, Market: string(models.MarketOTC)}
	matched := false
	for _, row := range body.AaData {
		if len(row) <= margSumColBalance {
			continue
		}
		switch strings.TrimSpace(row[margSumColLabel]) {
		case labelMarginUnits:
			rec.MarginBalancePrev = common.Num(row[margSumColBalancePrev])
			rec.MarginBuy = common.Num(row[margSumColBuy])
			rec.MarginSell = common.Num(row[margSumColSell])
			rec.MarginRedeem = common.Num(row[margSumColRedeem])
			rec.MarginBalance = common.Num(row[margSumColBalance])
			matched = true
		case labelShortUnits:
			rec.ShortBalancePrev = common.Num(row[margSumColBalancePrev])
			rec.ShortBuy = common.Num(row[margSumColBuy])
			rec.ShortSell = common.Num(row[margSumColSell])
			rec.ShortRedeem = common.Num(row[margSumColRedeem])
			rec.ShortBalance = common.Num(row[margSumColBalance])
			matched = true
		case labelMarginValue:
			rec.MarginBalanceValuePrev = common.Num(row[margSumColBalancePrev])
			rec.MarginBuyValue = common.Num(row[margSumColBuy])
			rec.MarginSellValue = common.Num(row[margSumColSell])
			rec.MarginRedeemValue = common.Num(row[margSumColRedeem])
			rec.MarginBalanceValue = common.Num(row[margSumColBalance])
			matched = true
		}
	}
	if !matched {
		return nil, nil
	}
	return rec, nil
}
