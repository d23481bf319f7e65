package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"watchboard/internal/logger"
	"watchboard/internal/marketdata"
	"watchboard/internal/models"
	"watchboard/internal/store"
	"watchboard/internal/symbols"
)

func init() {
	logger.Init("test")
}

// fakeMarket is an in-memory MarketData.
type fakeMarket struct {
	mu         sync.Mutex
	quotes     map[string]*marketdata.Quote
	history    map[string]map[models.Period][]marketdata.Bar
	fx         map[string]float64
	listings   map[string]string
	prefetch   []marketdata.PrefetchRequest
	prefetchFX []string
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		quotes:   make(map[string]*marketdata.Quote),
		history:  make(map[string]map[models.Period][]marketdata.Bar),
		fx:       make(map[string]float64),
		listings: make(map[string]string),
	}
}

// withPrice sets ticker's price and gives every period a single bar closing
// at prev.
func (m *fakeMarket) withPrice(ticker string, price, prev float64) *fakeMarket {
	m.quotes[ticker] = &marketdata.Quote{Symbol: ticker, Price: price, ShortName: ticker + " Inc."}
	m.history[ticker] = make(map[models.Period][]marketdata.Bar)
	for _, p := range models.Periods {
		m.history[ticker][p] = []marketdata.Bar{{Close: prev}, {Close: price}}
	}
	return m
}

func (m *fakeMarket) withHistory(ticker string, period models.Period, closes ...float64) *fakeMarket {
	if m.history[ticker] == nil {
		m.history[ticker] = make(map[models.Period][]marketdata.Bar)
	}
	bars := make([]marketdata.Bar, len(closes))
	for i, c := range closes {
		bars[i] = marketdata.Bar{Close: c}
	}
	m.history[ticker][period] = bars
	return m
}

func (m *fakeMarket) Quote(ctx context.Context, ticker string) (*marketdata.Quote, bool) {
	q, ok := m.quotes[ticker]
	return q, ok
}

func (m *fakeMarket) Price(ctx context.Context, ticker string) (float64, bool) {
	q, ok := m.quotes[ticker]
	if !ok {
		return 0, false
	}
	return q.Price, true
}

func (m *fakeMarket) History(ctx context.Context, ticker string, period models.Period) []marketdata.Bar {
	return m.history[ticker][period]
}

func (m *fakeMarket) FXRate(ctx context.Context, pair string) (float64, bool) {
	r, ok := m.fx[pair]
	return r, ok
}

func (m *fakeMarket) Prefetch(ctx context.Context, reqs []marketdata.PrefetchRequest, fxPairs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefetch = append(m.prefetch, reqs...)
	m.prefetchFX = append(m.prefetchFX, fxPairs...)
}

func (m *fakeMarket) ResolveListing(ctx context.Context, ticker string) string {
	if r, ok := m.listings[ticker]; ok {
		return r
	}
	return ticker
}

func newTestStore(t *testing.T) store.WatchlistStore {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), "watchlist.json"))
}

func newTestSettings(t *testing.T) SettingsServicer {
	t.Helper()
	return NewSettingsService(store.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json")))
}

func newTestNames() *symbols.Directory {
	return symbols.New(map[string]string{"2330.TW": "台積電"}, nil)
}

// seedItems stores items in order.
func seedItems(t *testing.T, s store.WatchlistStore, items ...models.WatchlistItem) {
	t.Helper()
	if err := s.ReplaceAll(context.Background(), items); err != nil {
		t.Fatalf("failed to seed items: %v", err)
	}
}
