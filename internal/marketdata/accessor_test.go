package marketdata

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"watchboard/internal/logger"
	"watchboard/internal/models"
)

func init() {
	logger.Init("test")
}

func newTestAccessor(t *testing.T, symbols map[string]mockSymbol, opts Options) (*Accessor, *mockChartServer) {
	t.Helper()
	srv := newMockChartServer(t, symbols)
	return NewAccessor(srv.client(), opts), srv
}

func TestAccessor_Price(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{"AAPL": {price: 190}}, Options{})
	ctx := context.Background()

	price, ok := a.Price(ctx, "AAPL")
	if !ok || price != 190 {
		t.Fatalf("expected 190, got %v (ok=%v)", price, ok)
	}
	if _, ok := a.Price(ctx, "AAPL"); !ok {
		t.Fatal("expected cached price")
	}
	if n := srv.callCount("AAPL"); n != 1 {
		t.Errorf("expected 1 upstream call, got %d", n)
	}
}

func TestAccessor_TaiwanFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("listed_symbol_has_data", func(t *testing.T) {
		a, srv := newTestAccessor(t, map[string]mockSymbol{
			"2330.TW":  {price: 1000},
			"2330.TWO": {price: 1},
		}, Options{})
		q, ok := a.Quote(ctx, "2330.TW")
		if !ok || q.Price != 1000 || q.Symbol != "2330.TW" {
			t.Fatalf("unexpected quote %+v", q)
		}
		if n := srv.callCount("2330.TWO"); n != 0 {
			t.Errorf("fallback should not be tried, got %d calls", n)
		}
	})

	t.Run("falls_back_to_two", func(t *testing.T) {
		a, srv := newTestAccessor(t, map[string]mockSymbol{
			"6488.TWO": {price: 450, closes: []interface{}{440.0, 450.0}},
		}, Options{})
		q, ok := a.Quote(ctx, "6488.TW")
		if !ok || q.Price != 450 || q.Symbol != "6488.TWO" {
			t.Fatalf("unexpected quote %+v", q)
		}
		bars := a.History(ctx, "6488.TW", models.Period1M)
		if len(bars) != 2 {
			t.Errorf("expected fallback history, got %d bars", len(bars))
		}
		if n := srv.callCount("6488.TWO"); n != 2 {
			t.Errorf("expected one quote and one history call to .TWO, got %d", n)
		}
	})

	t.Run("both_missing_reports_no_data", func(t *testing.T) {
		a, srv := newTestAccessor(t, nil, Options{})
		if _, ok := a.Price(ctx, "9999.TW"); ok {
			t.Error("expected no data")
		}
		if bars := a.History(ctx, "9999.TW", models.Period1D); len(bars) != 0 {
			t.Errorf("expected no history, got %d bars", len(bars))
		}
		if n := srv.callCount("9999.TWO"); n != 2 {
			t.Errorf("expected exactly one fallback per lookup, got %d", n)
		}
	})

	t.Run("us_ticker_never_falls_back", func(t *testing.T) {
		a, srv := newTestAccessor(t, nil, Options{})
		if _, ok := a.Price(ctx, "NOPE"); ok {
			t.Error("expected no data")
		}
		if n := srv.callCount("NOPE"); n != 1 {
			t.Errorf("expected 1 call, got %d", n)
		}
	})
}

func TestAccessor_CachesMisses(t *testing.T) {
	a, srv := newTestAccessor(t, nil, Options{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		a.Price(ctx, "GONE")
	}
	if n := srv.callCount("GONE"); n != 1 {
		t.Errorf("expected a miss to be cached, got %d calls", n)
	}
}

func TestAccessor_CancelledLoadNotCached(t *testing.T) {
	a, _ := newTestAccessor(t, map[string]mockSymbol{
		"AAPL":     {price: 190, closes: []interface{}{180.0, 190.0}},
		"USDTWD=X": {price: 31.5},
	}, Options{})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := a.Price(cancelled, "AAPL"); ok {
		t.Fatal("expected no data under a cancelled context")
	}
	if _, ok := a.FXRate(cancelled, "USDTWD=X"); ok {
		t.Fatal("expected no FX rate under a cancelled context")
	}
	if bars := a.History(cancelled, "AAPL", models.Period1M); len(bars) != 0 {
		t.Fatalf("expected no history under a cancelled context, got %d bars", len(bars))
	}

	ctx := context.Background()
	if price, ok := a.Price(ctx, "AAPL"); !ok || price != 190 {
		t.Errorf("expected live price 190 after cancelled request, got %v (ok=%v)", price, ok)
	}
	if rate, ok := a.FXRate(ctx, "USDTWD=X"); !ok || rate != 31.5 {
		t.Errorf("expected live FX rate 31.5 after cancelled request, got %v (ok=%v)", rate, ok)
	}
	if bars := a.History(ctx, "AAPL", models.Period1M); len(bars) != 2 {
		t.Errorf("expected 2 bars after cancelled request, got %d", len(bars))
	}
}

func TestAccessor_CancelledPrefetchLeavesCacheEmpty(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{"MSFT": {price: 400}}, Options{})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	a.Prefetch(cancelled, []PrefetchRequest{{Ticker: "MSFT"}})

	if price, ok := a.Price(context.Background(), "MSFT"); !ok || price != 400 {
		t.Errorf("expected live price 400, got %v (ok=%v)", price, ok)
	}
	if n := srv.callCount("MSFT"); n < 1 {
		t.Errorf("expected an upstream call after the cancelled prefetch, got %d", n)
	}
}

func TestAccessor_TTLExpiry(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{"AAPL": {price: 1}}, Options{PriceTTL: 20 * time.Millisecond})
	ctx := context.Background()

	a.Price(ctx, "AAPL")
	time.Sleep(40 * time.Millisecond)
	a.Price(ctx, "AAPL")

	if n := srv.callCount("AAPL"); n != 2 {
		t.Errorf("expected refetch after expiry, got %d calls", n)
	}
}

func TestAccessor_HistoryKeyedByPeriod(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{
		"AAPL": {price: 2, closes: []interface{}{1.0, 2.0}},
	}, Options{})
	ctx := context.Background()

	a.History(ctx, "AAPL", models.Period1D)
	a.History(ctx, "AAPL", models.Period1M)
	a.History(ctx, "AAPL", models.Period1M)

	if n := srv.callCount("AAPL"); n != 2 {
		t.Errorf("expected one call per period, got %d", n)
	}
}

func TestAccessor_FXRate(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{"USDTWD=X": {price: 31.5}}, Options{})
	ctx := context.Background()

	rate, ok := a.FXRate(ctx, "USDTWD=X")
	if !ok || rate != 31.5 {
		t.Fatalf("expected 31.5, got %v (ok=%v)", rate, ok)
	}
	a.FXRate(ctx, "USDTWD=X")
	if n := srv.callCount("USDTWD=X"); n != 1 {
		t.Errorf("expected cached fx rate, got %d calls", n)
	}

	if _, ok := a.FXRate(ctx, "EURTWD=X"); ok {
		t.Error("expected no data for unknown pair")
	}
}

func TestAccessor_Flush(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{"AAPL": {price: 1}}, Options{})
	ctx := context.Background()

	a.Price(ctx, "AAPL")
	a.Flush()
	a.Price(ctx, "AAPL")
	if n := srv.callCount("AAPL"); n != 2 {
		t.Errorf("expected refetch after flush, got %d calls", n)
	}
}

// countingFetcher tracks the peak number of concurrent fetches.
type countingFetcher struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	calls    atomic.Int64
}

func (f *countingFetcher) enter() {
	f.calls.Add(1)
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *countingFetcher) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	f.enter()
	return &Quote{Symbol: symbol, Price: 1}, nil
}

func (f *countingFetcher) FetchHistory(ctx context.Context, symbol string, period models.Period) ([]Bar, error) {
	f.enter()
	return []Bar{{Close: 1}}, nil
}

func TestAccessor_Prefetch(t *testing.T) {
	f := &countingFetcher{}
	a := NewAccessor(f, Options{Workers: 3})
	ctx := context.Background()

	var reqs []PrefetchRequest
	for _, tk := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		reqs = append(reqs, PrefetchRequest{Ticker: tk, Periods: []models.Period{models.Period1D, models.Period1M}})
	}
	a.Prefetch(ctx, reqs, "USDTWD=X")

	// 8 quotes, 16 histories, 1 fx rate.
	if n := f.calls.Load(); n != 25 {
		t.Errorf("expected 25 fetches, got %d", n)
	}
	if f.peak > 3 {
		t.Errorf("expected at most 3 concurrent fetches, got %d", f.peak)
	}

	a.Prefetch(ctx, reqs, "USDTWD=X")
	if n := f.calls.Load(); n != 25 {
		t.Errorf("second prefetch should be served from cache, got %d fetches", n)
	}
	if _, ok := a.Price(ctx, "H"); !ok {
		t.Error("expected prefetched price")
	}
}

func TestNewAccessor_WorkerBounds(t *testing.T) {
	for _, w := range []int{0, -1, 100} {
		a := NewAccessor(&countingFetcher{}, Options{Workers: w})
		if a.workers != MaxWorkers {
			t.Errorf("workers %d: expected clamp to %d, got %d", w, MaxWorkers, a.workers)
		}
	}
}

func TestAccessor_ResolveListing(t *testing.T) {
	a, srv := newTestAccessor(t, map[string]mockSymbol{
		"2330.TW":  {price: 1000, closes: []interface{}{990.0}},
		"6488.TWO": {price: 450, closes: []interface{}{440.0}},
	}, Options{})
	ctx := context.Background()

	tests := map[string]string{
		"2330.TW": "2330.TW",
		"6488.TW": "6488.TWO",
		"9999.TW": "9999.TW",
		"AAPL":    "AAPL",
	}
	for in, want := range tests {
		if got := a.ResolveListing(ctx, in); got != want {
			t.Errorf("ResolveListing(%q) = %q, want %q", in, got, want)
		}
	}
	if n := srv.callCount("AAPL"); n != 0 {
		t.Errorf("non-Taiwan tickers should not be looked up, got %d calls", n)
	}
	if n := srv.callCount("2330.TWO"); n != 0 {
		t.Errorf("listed ticker with data should not try TPEx, got %d calls", n)
	}
}
