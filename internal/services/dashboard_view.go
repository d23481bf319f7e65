package services

import (
	"crypto/md5"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"watchboard/internal/marketdata"
	"watchboard/internal/models"
)

// Filter values accepted by the dashboard.
const (
	FilterNoTag   = "NO_TAG"
	FilterHeld    = "HELD"
	FilterNotHeld = "NOT_HELD"
)

// SortKey selects the dashboard item order.
type SortKey string

const (
	// SortManual is the default: items keep the order they were saved in.
	SortManual       SortKey = "manual"
	SortType         SortKey = "type"
	SortRating       SortKey = "rating"
	SortChange1DDesc SortKey = "change_1d_desc"
	SortChange1DAsc  SortKey = "change_1d_asc"
	SortChange1MDesc SortKey = "change_1m_desc"
	SortChange1MAsc  SortKey = "change_1m_asc"
	SortValue        SortKey = "value"
)

// SortKeys lists every accepted sort key.
var SortKeys = []SortKey{
	SortManual, SortType, SortRating,
	SortChange1DDesc, SortChange1DAsc, SortChange1MDesc, SortChange1MAsc,
	SortValue,
}

// Valid reports whether k is a known sort key. The empty key means manual.
func (k SortKey) Valid() bool {
	if k == "" {
		return true
	}
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// changePeriod returns the history window a change sort compares against.
func (k SortKey) changePeriod() (period models.Period, desc, ok bool) {
	switch k {
	case SortChange1DDesc:
		return models.Period1D, true, true
	case SortChange1DAsc:
		return models.Period1D, false, true
	case SortChange1MDesc:
		return models.Period1M, true, true
	case SortChange1MAsc:
		return models.Period1M, false, true
	}
	return "", false, false
}

// Holding is the value of a position in the ticker's own currency.
type Holding struct {
	Cost      float64 `json:"cost"`
	Value     float64 `json:"value"`
	Profit    float64 `json:"profit"`
	ProfitPct float64 `json:"profit_pct"`
}

// HoldingProfit values item at price. It returns nil unless the item is a
// holding and a price is known.
func HoldingProfit(item models.WatchlistItem, price float64, hasPrice bool) *Holding {
	if !item.IsHolding() || !hasPrice {
		return nil
	}
	shares := decimal.NewFromFloat(item.Shares)
	cost := decimal.NewFromFloat(item.AvgCost).Mul(shares)
	value := decimal.NewFromFloat(price).Mul(shares)
	profit := value.Sub(cost)

	return &Holding{
		Cost:      cost.InexactFloat64(),
		Value:     value.InexactFloat64(),
		Profit:    profit.InexactFloat64(),
		ProfitPct: profit.Div(cost).Mul(decimal.NewFromInt(100)).InexactFloat64(),
	}
}

// Change is a price move against the first close of a window.
type Change struct {
	Amount float64 `json:"amount"`
	Pct    float64 `json:"pct"`
}

// PriceChange compares price with the first bar's close. It returns nil when
// either side is missing.
func PriceChange(price float64, hasPrice bool, bars []marketdata.Bar) *Change {
	if !hasPrice || len(bars) == 0 {
		return nil
	}
	prev := bars[0].Close
	c := &Change{Amount: price - prev}
	if prev > 0 {
		c.Pct = c.Amount / prev * 100
	}
	return c
}

// TagColor returns the custom colour for tag, or a dark hue derived from the
// md5 of the tag name.
func TagColor(tag string, custom map[string]string) string {
	if c, ok := custom[tag]; ok && c != "" {
		return c
	}
	sum := md5.Sum([]byte(tag))
	hue := new(big.Int).Mod(new(big.Int).SetBytes(sum[:]), big.NewInt(360)).Int64()
	return fmt.Sprintf("hsl(%d, 60%%, 25%%)", hue)
}

// Links are the external chart pages for a ticker.
type Links struct {
	Yahoo       string `json:"yahoo"`
	TradingView string `json:"tradingview"`
}

// DefaultLinks builds the Yahoo Taiwan and TradingView pages for ticker.
func DefaultLinks(ticker string) Links {
	yahoo := ticker
	tv := ticker
	switch models.MarketTypeOf(ticker) {
	case models.MarketTW:
		code := models.TaiwanCode(ticker)
		yahoo = code
		if strings.HasSuffix(ticker, ".TWO") {
			tv = "TPEX-" + code
		} else {
			tv = "TWSE-" + code
		}
	case models.MarketCrypto:
		tv = strings.ReplaceAll(ticker, "-", "")
	}
	return Links{
		Yahoo:       "https://tw.stock.yahoo.com/quote/" + yahoo,
		TradingView: "https://tw.tradingview.com/symbols/" + tv + "/",
	}
}

// ItemLinks prefers the item's own URLs over the defaults.
func ItemLinks(item models.WatchlistItem) Links {
	links := DefaultLinks(item.Ticker)
	if item.YahooURL != "" {
		links.Yahoo = item.YahooURL
	}
	if item.TradingViewURL != "" {
		links.TradingView = item.TradingViewURL
	}
	return links
}

// ISO 4217 codes of the quote currencies.
const (
	currencyTWD = "TWD"
	currencyUSD = "USD"
)

func currencyOf(m models.MarketType) string {
	if m == models.MarketTW {
		return currencyTWD
	}
	return currencyUSD
}

// formatMoney renders amount in currency's display format, e.g. "NT$1,234.00".
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	return money.New(amount.Mul(factor).Round(0).IntPart(), currency).Display()
}

// sortItems orders views in place according to key. Items without data go
// last in change and value sorts.
func sortItems(views []ItemView, key SortKey) {
	if period, desc, ok := key.changePeriod(); ok {
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i].changeFor(period), views[j].changeFor(period)
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			case desc:
				return a.Pct > b.Pct
			default:
				return a.Pct < b.Pct
			}
		})
		return
	}

	switch key {
	case SortType:
		sort.SliceStable(views, func(i, j int) bool {
			return models.MarketRank(views[i].Market) < models.MarketRank(views[j].Market)
		})
	case SortRating:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].Rating > views[j].Rating
		})
	case SortValue:
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i].valueTWD, views[j].valueTWD
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.GreaterThan(*b)
			}
		})
	}
}

// ItemFilter narrows the dashboard. Values within one field are ORed, fields
// are ANDed; an empty field matches everything.
type ItemFilter struct {
	Tags    []string
	Holding []string
	Ratings []int
}

func (f ItemFilter) matches(item models.WatchlistItem) bool {
	if len(f.Tags) > 0 && !matchesTags(item, f.Tags) {
		return false
	}
	if len(f.Holding) > 0 && !matchesHolding(item, f.Holding) {
		return false
	}
	if len(f.Ratings) > 0 && !matchesRating(item, f.Ratings) {
		return false
	}
	return true
}

func matchesTags(item models.WatchlistItem, tags []string) bool {
	for _, t := range tags {
		if t == FilterNoTag && len(item.Tags) == 0 {
			return true
		}
		if item.HasTag(t) {
			return true
		}
	}
	return false
}

func matchesHolding(item models.WatchlistItem, states []string) bool {
	for _, s := range states {
		switch {
		case s == FilterHeld && item.IsHolding():
			return true
		case s == FilterNotHeld && !item.IsHolding():
			return true
		}
	}
	return false
}

func matchesRating(item models.WatchlistItem, ratings []int) bool {
	for _, r := range ratings {
		if item.Rating == r {
			return true
		}
	}
	return false
}
