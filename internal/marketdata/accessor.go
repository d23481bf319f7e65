package marketdata

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"watchboard/internal/logger"
	"watchboard/internal/models"
)

// Default cache lifetimes.
const (
	DefaultPriceTTL = 60 * time.Second
	DefaultFXTTL    = time.Hour
)

// MaxWorkers caps the prefetch pool.
const MaxWorkers = 30

// Fetcher is the remote market data source behind an Accessor.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (*Quote, error)
	FetchHistory(ctx context.Context, symbol string, period models.Period) ([]Bar, error)
}

// Options tunes an Accessor. Zero values select the defaults.
type Options struct {
	PriceTTL time.Duration
	FXTTL    time.Duration
	Workers  int
}

// Accessor serves quotes, history and FX rates from a TTL cache in front of a
// Fetcher. Remote failures are swallowed: callers only see "no data". A .TW
// symbol without data is retried once as .TWO.
type Accessor struct {
	fetcher Fetcher
	workers int
	flight  singleflight.Group

	quotes  *ttlcache.Cache[string, *Quote]
	history *ttlcache.Cache[string, []Bar]
	fx      *ttlcache.Cache[string, *Quote]

	listings *ttlcache.Cache[string, string]
}

// NewAccessor creates an Accessor over fetcher.
func NewAccessor(fetcher Fetcher, opts Options) *Accessor {
	if opts.PriceTTL <= 0 {
		opts.PriceTTL = DefaultPriceTTL
	}
	if opts.FXTTL <= 0 {
		opts.FXTTL = DefaultFXTTL
	}
	if opts.Workers <= 0 || opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}

	return &Accessor{
		fetcher: fetcher,
		workers: opts.Workers,
		quotes: ttlcache.New[string, *Quote](
			ttlcache.WithTTL[string, *Quote](opts.PriceTTL),
			ttlcache.WithDisableTouchOnHit[string, *Quote](),
		),
		history: ttlcache.New[string, []Bar](
			ttlcache.WithTTL[string, []Bar](opts.PriceTTL),
			ttlcache.WithDisableTouchOnHit[string, []Bar](),
		),
		fx: ttlcache.New[string, *Quote](
			ttlcache.WithTTL[string, *Quote](opts.FXTTL),
			ttlcache.WithDisableTouchOnHit[string, *Quote](),
		),
		listings: ttlcache.New[string, string](
			ttlcache.WithTTL[string, string](opts.PriceTTL),
			ttlcache.WithDisableTouchOnHit[string, string](),
		),
	}
}

// Start runs the caches' expired-item cleanup until Stop is called.
func (a *Accessor) Start() {
	go a.quotes.Start()
	go a.history.Start()
	go a.fx.Start()
	go a.listings.Start()
}

// Stop ends the cleanup started by Start.
func (a *Accessor) Stop() {
	a.quotes.Stop()
	a.history.Stop()
	a.fx.Stop()
	a.listings.Stop()
}

// Flush drops every cached entry.
func (a *Accessor) Flush() {
	a.quotes.DeleteAll()
	a.history.DeleteAll()
	a.fx.DeleteAll()
	a.listings.DeleteAll()
}

// Quote returns the latest quote for ticker. Quote.Symbol is the symbol that
// actually served the data, which is the .TWO form after a fallback.
func (a *Accessor) Quote(ctx context.Context, ticker string) (*Quote, bool) {
	q := cached(ctx, a, a.quotes, "quote:"+ticker, ticker, func() *Quote {
		return withFallback(ticker, func(symbol string) *Quote {
			q, err := a.fetcher.FetchQuote(ctx, symbol)
			if err != nil {
				logger.Get().Debugw("quote fetch failed", "symbol", symbol, "error", err)
				return nil
			}
			return q
		})
	})
	return q, q != nil
}

// Price returns the last price for ticker.
func (a *Accessor) Price(ctx context.Context, ticker string) (float64, bool) {
	q, ok := a.Quote(ctx, ticker)
	if !ok {
		return 0, false
	}
	return q.Price, true
}

// History returns the bars for ticker over period, or nil when there is no
// data.
func (a *Accessor) History(ctx context.Context, ticker string, period models.Period) []Bar {
	key := ticker + "|" + string(period)
	return cached(ctx, a, a.history, "history:"+key, key, func() []Bar {
		return withFallback(ticker, func(symbol string) []Bar {
			bars, err := a.fetcher.FetchHistory(ctx, symbol, period)
			if err != nil {
				logger.Get().Debugw("history fetch failed", "symbol", symbol, "period", period, "error", err)
				return nil
			}
			return bars
		})
	})
}

// FXRate returns the rate for a Yahoo FX pair such as "USDTWD=X".
func (a *Accessor) FXRate(ctx context.Context, pair string) (float64, bool) {
	q := cached(ctx, a, a.fx, "fx:"+pair, pair, func() *Quote {
		q, err := a.fetcher.FetchQuote(ctx, pair)
		if err != nil {
			logger.Get().Debugw("fx fetch failed", "pair", pair, "error", err)
			return nil
		}
		return q
	})
	if q == nil {
		return 0, false
	}
	return q.Price, true
}

// PrefetchRequest asks for a ticker's quote and the history of each period.
type PrefetchRequest struct {
	Ticker  string
	Periods []models.Period
}

// Prefetch warms the cache for reqs and fxPairs using at most the configured
// number of concurrent workers. It returns once every fetch has finished.
func (a *Accessor) Prefetch(ctx context.Context, reqs []PrefetchRequest, fxPairs ...string) {
	var g errgroup.Group
	g.SetLimit(a.workers)

	for _, pair := range fxPairs {
		pair := pair
		g.Go(func() error {
			a.FXRate(ctx, pair)
			return nil
		})
	}
	for _, req := range reqs {
		req := req
		g.Go(func() error {
			a.Quote(ctx, req.Ticker)
			for _, p := range req.Periods {
				a.History(ctx, req.Ticker, p)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// cached returns the cached value for key or loads it once, caching empty
// results as well. Concurrent misses on the same key share one load. A load
// made under a cancelled or expired ctx is returned but not cached, since its
// empty result says nothing about the remote data.
func cached[V any](ctx context.Context, a *Accessor, cache *ttlcache.Cache[string, V], flightKey, key string, load func() V) V {
	if item := cache.Get(key); item != nil {
		return item.Value()
	}
	v, _, _ := a.flight.Do(flightKey, func() (interface{}, error) {
		if item := cache.Get(key); item != nil {
			return item.Value(), nil
		}
		val := load()
		if ctx.Err() != nil {
			return val, nil
		}
		cache.Set(key, val, ttlcache.DefaultTTL)
		return val, nil
	})
	return v.(V)
}

// withFallback calls fetch for ticker and, when a .TW ticker yields nothing,
// once more for its .TWO form.
func withFallback[V any](ticker string, fetch func(symbol string) V) V {
	v := fetch(ticker)
	if !isEmpty(v) {
		return v
	}
	if alt, ok := models.TPExFallback(ticker); ok {
		return fetch(alt)
	}
	return v
}

func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case *Quote:
		return x == nil
	case []Bar:
		return len(x) == 0
	default:
		return v == nil
	}
}

// ResolveListing returns the symbol a new Taiwan ticker should be stored
// under: a .TW ticker whose own 1D history is empty moves to .TWO when the
// TPEx symbol has data. Every other ticker is returned unchanged.
func (a *Accessor) ResolveListing(ctx context.Context, ticker string) string {
	alt, ok := models.TPExFallback(ticker)
	if !ok {
		return ticker
	}
	return cached(ctx, a, a.listings, "listing:"+ticker, ticker, func() string {
		if a.hasHistory(ctx, ticker) || !a.hasHistory(ctx, alt) {
			return ticker
		}
		return alt
	})
}

func (a *Accessor) hasHistory(ctx context.Context, symbol string) bool {
	bars, err := a.fetcher.FetchHistory(ctx, symbol, models.Period1D)
	if err != nil {
		logger.Get().Debugw("listing check failed", "symbol", symbol, "error", err)
		return false
	}
	return len(bars) > 0
}
