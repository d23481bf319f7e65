package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/logger"
	"watchboard/internal/marketdata"
	"watchboard/internal/models"
	"watchboard/internal/store"
)

// DefaultFXFallbackRate is used for USD/TWD when no rate can be fetched.
const DefaultFXFallbackRate = 32.0

// DashboardQuery selects the chart period, order and filters of a dashboard.
type DashboardQuery struct {
	Period models.Period
	Sort   SortKey
	Filter ItemFilter
}

// TagView is a tag with its resolved colour.
type TagView struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ItemView is a watchlist item with everything computed for display.
type ItemView struct {
	models.WatchlistItem
	DisplayName string            `json:"display_name"`
	Market      models.MarketType `json:"market"`
	Currency    string            `json:"currency"`
	Symbol      string            `json:"symbol,omitempty"`
	Price       *float64          `json:"price"`
	Change      *Change           `json:"change"`
	Change1D    *Change           `json:"change_1d"`
	Closes      []float64         `json:"closes"`
	Holding     *Holding          `json:"holding"`
	TagViews    []TagView         `json:"tag_views"`
	Links       Links             `json:"links"`
	NoData      bool              `json:"no_data"`

	changes  map[models.Period]*Change
	valueTWD *decimal.Decimal
}

func (v ItemView) changeFor(p models.Period) *Change {
	return v.changes[p]
}

// Summary is the portfolio total in TWD.
type Summary struct {
	TotalCost    float64 `json:"total_cost"`
	TotalValue   float64 `json:"total_value"`
	TotalProfit  float64 `json:"total_profit"`
	ProfitPct    float64 `json:"profit_pct"`
	FXRate       float64 `json:"fx_rate"`
	FXFallback   bool    `json:"fx_fallback"`
	CostText     string  `json:"cost_text"`
	ValueText    string  `json:"value_text"`
	ProfitText   string  `json:"profit_text"`
	HoldingCount int     `json:"holding_count"`
}

// TagCount is the number of items carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Counts are computed over the whole watchlist, before filtering.
type Counts struct {
	Tags     []TagCount  `json:"tags"`
	Untagged int         `json:"untagged"`
	Held     int         `json:"held"`
	NotHeld  int         `json:"not_held"`
	Ratings  map[int]int `json:"ratings"`
}

// Dashboard is the complete computed view.
type Dashboard struct {
	Period          models.Period `json:"period"`
	Sort            SortKey       `json:"sort"`
	RefreshInterval int           `json:"refresh_interval"`
	Items           []ItemView    `json:"items"`
	Total           int           `json:"total"`
	Summary         Summary       `json:"summary"`
	Counts          Counts        `json:"counts"`
}

// DashboardOptions configures FX conversion.
type DashboardOptions struct {
	FXPair         string
	FXFallbackRate float64
}

type dashboardService struct {
	store    store.WatchlistStore
	market   MarketData
	names    SymbolNamer
	settings SettingsServicer
	opts     DashboardOptions
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(s store.WatchlistStore, market MarketData, names SymbolNamer, settings SettingsServicer, opts DashboardOptions) DashboardServicer {
	if opts.FXPair == "" {
		opts.FXPair = "USDTWD=X"
	}
	if opts.FXFallbackRate <= 0 {
		opts.FXFallbackRate = DefaultFXFallbackRate
	}
	return &dashboardService{store: s, market: market, names: names, settings: settings, opts: opts}
}

// Build loads the watchlist, prefetches its market data and computes the view.
// Items are sorted first and filtered second. An empty Sort keeps the stored
// manual order; type order must be asked for with SortType.
func (s *dashboardService) Build(ctx context.Context, q DashboardQuery) (*Dashboard, error) {
	if q.Period == "" {
		q.Period = models.DefaultPeriod
	}
	if !q.Period.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown period")
	}
	if q.Sort == "" {
		q.Sort = SortManual
	}
	if !q.Sort.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown sort")
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	settings := s.settings.Get()

	periods := s.periodsFor(q)
	reqs := make([]marketdata.PrefetchRequest, len(items))
	for i, item := range items {
		reqs[i] = marketdata.PrefetchRequest{Ticker: item.Ticker, Periods: periods}
	}
	s.market.Prefetch(ctx, reqs, s.opts.FXPair)

	fx, fxFallback := s.fxRate(ctx)

	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = s.itemView(ctx, item, q.Period, periods, settings.TagColors, fx)
	}

	dash := &Dashboard{
		Period:          q.Period,
		Sort:            q.Sort,
		RefreshInterval: settings.RefreshInterval,
		Summary:         summarize(views, fx, fxFallback),
		Counts:          countItems(items, settings.TagColors),
	}

	sortItems(views, q.Sort)
	dash.Items = make([]ItemView, 0, len(views))
	for _, v := range views {
		if q.Filter.matches(v.WatchlistItem) {
			dash.Items = append(dash.Items, v)
		}
	}
	dash.Total = len(dash.Items)

	logger.Get().Debugw("dashboard built", "items", len(items), "shown", dash.Total, "period", q.Period, "sort", q.Sort)
	return dash, nil
}

// periodsFor lists the history windows a query needs: the selected period,
// 1D for the daily change, and the window of a change sort.
func (s *dashboardService) periodsFor(q DashboardQuery) []models.Period {
	periods := []models.Period{q.Period}
	add := func(p models.Period) {
		for _, existing := range periods {
			if existing == p {
				return
			}
		}
		periods = append(periods, p)
	}
	add(models.Period1D)
	if p, _, ok := q.Sort.changePeriod(); ok {
		add(p)
	}
	return periods
}

func (s *dashboardService) fxRate(ctx context.Context) (float64, bool) {
	if rate, ok := s.market.FXRate(ctx, s.opts.FXPair); ok && rate > 0 {
		return rate, false
	}
	logger.Get().Warnw("fx rate unavailable, using fallback", "pair", s.opts.FXPair, "rate", s.opts.FXFallbackRate)
	return s.opts.FXFallbackRate, true
}

func (s *dashboardService) itemView(ctx context.Context, item models.WatchlistItem, period models.Period, periods []models.Period, tagColors map[string]string, fx float64) ItemView {
	market := models.MarketTypeOf(item.Ticker)
	v := ItemView{
		WatchlistItem: item,
		Market:        market,
		Currency:      currencyOf(market),
		Links:         ItemLinks(item),
		TagViews:      make([]TagView, len(item.Tags)),
		Closes:        []float64{},
		changes:       make(map[models.Period]*Change, len(periods)),
	}
	for i, tag := range item.Tags {
		v.TagViews[i] = TagView{Name: tag, Color: TagColor(tag, tagColors)}
	}

	var shortName, longName string
	q, hasPrice := s.market.Quote(ctx, item.Ticker)
	var price float64
	if hasPrice {
		price = q.Price
		v.Price = &price
		v.Symbol = q.Symbol
		shortName, longName = q.ShortName, q.LongName
	}
	v.DisplayName = s.names.DisplayName(item, shortName, longName)

	for _, p := range periods {
		bars := s.market.History(ctx, item.Ticker, p)
		v.changes[p] = PriceChange(price, hasPrice, bars)
		if p == period {
			for _, b := range bars {
				v.Closes = append(v.Closes, b.Close)
			}
		}
	}
	v.Change = v.changes[period]
	v.Change1D = v.changes[models.Period1D]
	v.NoData = v.Change == nil

	v.Holding = HoldingProfit(item, price, hasPrice)
	if v.Holding != nil {
		value := toTWD(decimal.NewFromFloat(v.Holding.Value), market, fx)
		v.valueTWD = &value
	}
	return v
}

func toTWD(amount decimal.Decimal, market models.MarketType, fx float64) decimal.Decimal {
	if market == models.MarketTW {
		return amount
	}
	return amount.Mul(decimal.NewFromFloat(fx))
}

func summarize(views []ItemView, fx float64, fxFallback bool) Summary {
	totalCost := decimal.Zero
	totalValue := decimal.Zero
	held := 0
	for _, v := range views {
		if v.Holding == nil {
			continue
		}
		held++
		totalCost = totalCost.Add(toTWD(decimal.NewFromFloat(v.Holding.Cost), v.Market, fx))
		totalValue = totalValue.Add(toTWD(decimal.NewFromFloat(v.Holding.Value), v.Market, fx))
	}
	profit := totalValue.Sub(totalCost)

	pct := decimal.Zero
	if totalCost.IsPositive() {
		pct = profit.Div(totalCost).Mul(decimal.NewFromInt(100))
	}

	return Summary{
		TotalCost:    totalCost.InexactFloat64(),
		TotalValue:   totalValue.InexactFloat64(),
		TotalProfit:  profit.InexactFloat64(),
		ProfitPct:    pct.Round(2).InexactFloat64(),
		FXRate:       fx,
		FXFallback:   fxFallback,
		CostText:     formatMoney(totalCost, currencyTWD),
		ValueText:    formatMoney(totalValue, currencyTWD),
		ProfitText:   formatMoney(profit, currencyTWD),
		HoldingCount: held,
	}
}

func countItems(items []models.WatchlistItem, tagColors map[string]string) Counts {
	c := Counts{Ratings: make(map[int]int, models.MaxRating+1)}
	for r := 0; r <= models.MaxRating; r++ {
		c.Ratings[r] = 0
	}

	byTag := make(map[string]int)
	var order []string
	for _, item := range items {
		if len(item.Tags) == 0 {
			c.Untagged++
		}
		for _, t := range item.Tags {
			if byTag[t] == 0 {
				order = append(order, t)
			}
			byTag[t]++
		}
		if item.IsHolding() {
			c.Held++
		} else {
			c.NotHeld++
		}
		if item.Rating >= 0 && item.Rating <= models.MaxRating {
			c.Ratings[item.Rating]++
		} else {
			c.Ratings[0]++
		}
	}

	c.Tags = make([]TagCount, len(order))
	for i, t := range order {
		c.Tags[i] = TagCount{Tag: t, Count: byTag[t], Color: TagColor(t, tagColors)}
	}
	sort.SliceStable(c.Tags, func(i, j int) bool { return c.Tags[i].Count > c.Tags[j].Count })
	return c
}
