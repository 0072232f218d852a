package taifex

import (
	"context"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/twmarket/twmarket/internal/common"
	"github.com/twmarket/twmarket/models"
)

// Column layout of the contract directory rows (futContractsDown).
const (
	contractColCode       = 0
	contractColName       = 1
	contractColType       = 2 // "期貨" / "選擇權"
	contractColUnderlying = 3
	contractColListedDate = 4 // yyyy/MM/dd
	contractColAvailable  = 5 // "Y" while tradable
)

// Column layout of the daily futures rows (futDataDown). The options
// download carries the same layout with strike and call/put inserted
// after the contract month.
const (
	futColDate          = 0 // yyyy/MM/dd
	futColContract      = 1 // product code
	futColContractMonth = 2
	futColOpen          = 3
	futColHigh          = 4
	futColLow           = 5
	futColClose         = 6
	futColChange        = 7
	futColChangePercent = 8
	futColVolume        = 9
	futColSettlement    = 10
	futColOpenInterest  = 11
	futColSession       = 12 // "一般" / "盤後"
)

const (
	optColDate          = 0
	optColContract      = 1
	optColContractMonth = 2
	optColStrike        = 3
	optColType          = 4 // "買權" / "賣權"
	optColOpen          = 5
	optColHigh          = 6
	optColLow           = 7
	optColClose         = 8
	optColChange        = 9
	optColChangePercent = 10
	optColVolume        = 11
	optColSettlement    = 12
	optColOpenInterest  = 13
	optColSession       = 14
)

// Column layout of the institutional rows (futContractsDate).
const (
	instColDate        = 0
	instColSymbol      = 1
	instColName        = 2
	instColIdentity    = 3 // "自營商" / "投信" / "外資"
	instColLongVolume  = 4
	instColLongValue   = 5
	instColShortVolume = 6
	instColShortValue  = 7
	instColNetVolume   = 8
	instColNetValue    = 9
	instColLongOI      = 10
	instColShortOI     = 12
	instColNetOI       = 14
)

// Identity labels in the institutional download.
const (
	identityDealers = "自營商"
	identitySitc    = "投信"
	identityFini    = "外資"
)

// Column layout of the large trader rows (largeTraderFutQry).
const (
	ltColDate           = 0
	ltColSymbol         = 1
	ltColName           = 2
	ltColContractMonth  = 3
	ltColTop5Long       = 4
	ltColTop5Short      = 5
	ltColTop10Long      = 6
	ltColTop10Short     = 7
	ltColTop5SpecLong   = 8
	ltColTop5SpecShort  = 9
	ltColTop10SpecLong  = 10
	ltColTop10SpecShort = 11
	ltColTotalOI        = 12
)

// Column layout of the put/call ratio rows (pcRatioDown).
const (
	pcrColDate        = 0
	pcrColPutVolume   = 1
	pcrColCallVolume  = 2
	pcrColVolumeRatio = 3
	pcrColPutOI       = 4
	pcrColCallOI      = 5
	pcrColOIRatio     = 6
)

// Column layout of the FX fixing rows (dailyFXRate).
const (
	fxColDate   = 0
	fxColUsdTwd = 1
	fxColCnyTwd = 2
	fxColEurUsd = 3
	fxColUsdJpy = 4
	fxColGbpUsd = 5
	fxColAudUsd = 6
	fxColUsdHkd = 7
	fxColUsdCny = 8
	fxColUsdSgd = 9
	fxColNzdUsd = 10
)

// optionSuffix marks option products; their codes end in "O" (TXO, TEO...).
func isOptionProduct(symbol string) bool {
	return strings.HasSuffix(symbol, "O")
}

// ListContracts retrieves the tradable product directory.
func (c *Client) ListContracts(ctx context.Context, availableOnly bool) ([]*models.Ticker, error) {
	rows, err := c.postCSV(ctx, "/2/futContractsDown", url.Values{})
	if err != nil {
		return nil, err
	}

	tickers := make([]*models.Ticker, 0, len(rows))
	for _, row := range rows {
		if len(row) <= contractColAvailable {
			continue
		}
		if availableOnly && row[contractColAvailable] != "Y" {
			continue
		}
		t := &models.Ticker{
			Symbol:   row[contractColCode],
			Name:     row[contractColName],
			Exchange: models.ExchangeTAIFEX,
			Market:   models.MarketFutOpt,
			Type:     row[contractColType],
		}
		if d, err := time.ParseInLocation("2006/01/02", row[contractColListedDate], common.Taipei); err == nil {
			t.ListedDate = d
		}
		tickers = append(tickers, t)
	}
	return tickers, nil
}

func dataForm(date, symbol string, afterhours bool) url.Values {
	form := url.Values{}
	form.Set("queryStartDate", slashDate(date))
	form.Set("queryEndDate", slashDate(date))
	if symbol != "" {
		form.Set("commodity_id", symbol)
	}
	if afterhours {
		form.Set("marketCode", "1")
	} else {
		form.Set("marketCode", "0")
	}
	form.Set("down_type", "1")
	return form
}

func (c *Client) futuresHistorical(ctx context.Context, date, symbol string, afterhours bool) ([]*models.FutOptHistorical, error) {
	rows, err := c.postCSV(ctx, "/3/futDataDown", dataForm(date, symbol, afterhours))
	if err != nil {
		return nil, err
	}

	records := make([]*models.FutOptHistorical, 0, len(rows))
	for _, row := range rows {
		if len(row) <= futColSession {
			continue
		}
		records = append(records, &models.FutOptHistorical{
			Date:            date,
			Symbol:          row[futColContract],
			ContractMonth:   row[futColContractMonth],
			Open:            common.Num(row[futColOpen]),
			High:            common.Num(row[futColHigh]),
			Low:             common.Num(row[futColLow]),
			Close:           common.Num(row[futColClose]),
			Change:          common.Num(row[futColChange]),
			ChangePercent:   common.Num(row[futColChangePercent]),
			Volume:          common.Num(row[futColVolume]),
			SettlementPrice: common.Num(row[futColSettlement]),
			OpenInterest:    common.Num(row[futColOpenInterest]),
			Session:         row[futColSession],
		})
	}
	return records, nil
}

func (c *Client) optionsHistorical(ctx context.Context, date, symbol string, afterhours bool) ([]*models.FutOptHistorical, error) {
	rows, err := c.postCSV(ctx, "/3/optDataDown", dataForm(date, symbol, afterhours))
	if err != nil {
		return nil, err
	}

	records := make([]*models.FutOptHistorical, 0, len(rows))
	for _, row := range rows {
		if len(row) <= optColSession {
			continue
		}
		records = append(records, &models.FutOptHistorical{
			Date:            date,
			Symbol:          row[optColContract],
			ContractMonth:   row[optColContractMonth],
			StrikePrice:     common.Num(row[optColStrike]),
			Type:            row[optColType],
			Open:            common.Num(row[optColOpen]),
			High:            common.Num(row[optColHigh]),
			Low:             common.Num(row[optColLow]),
			Close:           common.Num(row[optColClose]),
			Change:          common.Num(row[optColChange]),
			ChangePercent:   common.Num(row[optColChangePercent]),
			Volume:          common.Num(row[optColVolume]),
			SettlementPrice: common.Num(row[optColSettlement]),
			OpenInterest:    common.Num(row[optColOpenInterest]),
			Session:         row[optColSession],
		})
	}
	return records, nil
}

// Historical retrieves one day of per-contract rows. With a symbol the
// product class selects the futures or options download; without one both
// downloads run concurrently and are concatenated.
func (c *Client) Historical(ctx context.Context, date, symbol string, afterhours bool) ([]*models.FutOptHistorical, error) {
	if symbol != "" {
		if isOptionProduct(symbol) {
			return c.optionsHistorical(ctx, date, symbol, afterhours)
		}
		return c.futuresHistorical(ctx, date, symbol, afterhours)
	}

	var futures, options []*models.FutOptHistorical
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		futures, err = c.futuresHistorical(gctx, date, "", afterhours)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = c.optionsHistorical(gctx, date, "", afterhours)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(futures, options...), nil
}

// Institutional retrieves the institutional breakdown per product. The
// download reports one row per product and investor identity; the three
// identity rows are folded into one record keyed by product code.
func (c *Client) Institutional(ctx context.Context, date, symbol string) ([]*models.FutOptInstitutional, error) {
	form := url.Values{}
	form.Set("queryDate", slashDate(date))
	if symbol != "" {
		form.Set("commodityId", symbol)
	}

	rows, err := c.postCSV(ctx, "/3/futContractsDateDown", form)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]*models.FutOptInstitutional)
	var order []string
	for _, row := range rows {
		if len(row) <= instColNetOI {
			continue
		}
		code := row[instColSymbol]
		if symbol != "" && code != symbol {
			continue
		}
		rec, seen := byProduct[code]
		if !seen {
			rec = &models.FutOptInstitutional{
				Date:   date,
				Symbol: code,
				Name:   row[instColName],
			}
			byProduct[code] = rec
			order = append(order, code)
		}
		longOI := common.Num(row[instColLongOI])
		shortOI := common.Num(row[instColShortOI])
		netOI := common.Num(row[instColNetOI])
		switch row[instColIdentity] {
		case identityDealers:
			rec.DealersLongVolume = common.Num(row[instColLongVolume])
			rec.DealersShortVolume = common.Num(row[instColShortVolume])
			rec.DealersNetVolume = common.Num(row[instColNetVolume])
			rec.DealersLongOI = longOI
			rec.DealersShortOI = shortOI
			rec.DealersNetOI = netOI
		case identitySitc:
			rec.SitcLongVolume = common.Num(row[instColLongVolume])
			rec.SitcShortVolume = common.Num(row[instColShortVolume])
			rec.SitcNetVolume = common.Num(row[instColNetVolume])
			rec.SitcLongOI = longOI
			rec.SitcShortOI = shortOI
			rec.SitcNetOI = netOI
		case identityFini:
			rec.FiniLongVolume = common.Num(row[instColLongVolume])
			rec.FiniShortVolume = common.Num(row[instColShortVolume])
			rec.FiniNetVolume = common.Num(row[instColNetVolume])
			rec.FiniLongOI = longOI
			rec.FiniShortOI = shortOI
			rec.FiniNetOI = netOI
		}
	}

	records := make([]*models.FutOptInstitutional, 0, len(order))
	for _, code := range order {
		rec := byProduct[code]
		rec.TotalLongOI = rec.DealersLongOI + rec.SitcLongOI + rec.FiniLongOI
		rec.TotalShortOI = rec.DealersShortOI + rec.SitcShortOI + rec.FiniShortOI
		rec.TotalNetOI = rec.DealersNetOI + rec.SitcNetOI + rec.FiniNetOI
		records = append(records, rec)
	}
	return records, nil
}

// LargeTraders retrieves large trader concentration per product.
func (c *Client) LargeTraders(ctx context.Context, date, symbol string) ([]*models.LargeTraders, error) {
	form := url.Values{}
	form.Set("queryDate", slashDate(date))

	rows, err := c.postCSV(ctx, "/3/largeTraderFutDown", form)
	if err != nil {
		return nil, err
	}

	records := make([]*models.LargeTraders, 0, len(rows))
	for _, row := range rows {
		if len(row) <= ltColTotalOI {
			continue
		}
		if symbol != "" && row[ltColSymbol] != symbol {
			continue
		}
		records = append(records, &models.LargeTraders{
			Date:                 date,
			Symbol:               row[ltColSymbol],
			Name:                 row[ltColName],
			ContractMonth:        row[ltColContractMonth],
			Top5LongOI:           common.Num(row[ltColTop5Long]),
			Top5ShortOI:          common.Num(row[ltColTop5Short]),
			Top10LongOI:          common.Num(row[ltColTop10Long]),
			Top10ShortOI:         common.Num(row[ltColTop10Short]),
			Top5SpecificLongOI:   common.Num(row[ltColTop5SpecLong]),
			Top5SpecificShortOI:  common.Num(row[ltColTop5SpecShort]),
			Top10SpecificLongOI:  common.Num(row[ltColTop10SpecLong]),
			Top10SpecificShortOI: common.Num(row[ltColTop10SpecShort]),
			TotalOI:              common.Num(row[ltColTotalOI]),
		})
	}
	return records, nil
}

// PutCallRatio retrieves the TXO put/call ratio for one date.
func (c *Client) PutCallRatio(ctx context.Context, date string) (*models.PutCallRatio, error) {
	form := url.Values{}
	form.Set("queryStartDate", slashDate(date))
	form.Set("queryEndDate", slashDate(date))

	rows, err := c.postCSV(ctx, "/3/pcRatioDown", form)
	if err != nil {
		return nil, err
	}

	want := slashDate(date)
	for _, row := range rows {
		if len(row) <= pcrColOIRatio {
			continue
		}
		if row[pcrColDate] != want {
			continue
		}
		return &models.PutCallRatio{
			Date:               date,
			PutVolume:          common.Num(row[pcrColPutVolume]),
			CallVolume:         common.Num(row[pcrColCallVolume]),
			PutCallVolumeRatio: common.Num(row[pcrColVolumeRatio]),
			PutOI:              common.Num(row[pcrColPutOI]),
			CallOI:             common.Num(row[pcrColCallOI]),
			PutCallOIRatio:     common.Num(row[pcrColOIRatio]),
		}, nil
	}
	return nil, nil
}

// ExchangeRates retrieves the daily FX fixing for one date.
func (c *Client) ExchangeRates(ctx context.Context, date string) (*models.ExchangeRates, error) {
	form := url.Values{}
	form.Set("queryStartDate", slashDate(date))
	form.Set("queryEndDate", slashDate(date))

	rows, err := c.postCSV(ctx, "/3/dailyFXRateDown", form)
	if err != nil {
		return nil, err
	}

	want := slashDate(date)
	for _, row := range rows {
		if len(row) <= fxColNzdUsd {
			continue
		}
		if row[fxColDate] != want {
			continue
		}
		return &models.ExchangeRates{
			Date:   date,
			UsdTwd: common.Num(row[fxColUsdTwd]),
			CnyTwd: common.Num(row[fxColCnyTwd]),
			EurUsd: common.Num(row[fxColEurUsd]),
			UsdJpy: common.Num(row[fxColUsdJpy]),
			GbpUsd: common.Num(row[fxColGbpUsd]),
			AudUsd: common.Num(row[fxColAudUsd]),
			UsdHkd: common.Num(row[fxColUsdHkd]),
			UsdCny: common.Num(row[fxColUsdCny]),
			UsdSgd: common.Num(row[fxColUsdSgd]),
			NzdUsd: common.Num(row[fxColNzdUsd]),
		}, nil
	}
	return nil, nil
}
