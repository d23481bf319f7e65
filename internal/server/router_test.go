package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"watchboard/internal/logger"
	"watchboard/internal/marketdata"
	"watchboard/internal/middleware"
	"watchboard/internal/models"
	"watchboard/internal/services"
	"watchboard/internal/store"
	"watchboard/internal/symbols"
	"watchboard/internal/validator"
)

const testAPIKey = "secret"

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// stubFetcher serves fixed prices and a two-bar history per symbol.
type stubFetcher struct {
	prices map[string]float64
}

func (f *stubFetcher) FetchQuote(_ context.Context, symbol string) (*marketdata.Quote, error) {
	p, ok := f.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("no data for %s", symbol)
	}
	return &marketdata.Quote{Symbol: symbol, Price: p, ShortName: symbol + " Inc"}, nil
}

func (f *stubFetcher) FetchHistory(_ context.Context, symbol string, _ models.Period) ([]marketdata.Bar, error) {
	p, ok := f.prices[symbol]
	if !ok {
		return nil, nil
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []marketdata.Bar{
		{Time: start, Close: p / 2},
		{Time: start.Add(24 * time.Hour), Close: p},
	}, nil
}

type testApp struct {
	Router *gin.Engine
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	dir := t.TempDir()
	watchlistStore := store.NewFileStore(filepath.Join(dir, "watchlist.json"))
	market := marketdata.NewAccessor(&stubFetcher{prices: map[string]float64{
		"AAPL":     200,
		"6488.TWO": 500,
		"USDTWD=X": 30,
	}}, marketdata.Options{})
	directory := symbols.New(map[string]string{"6488": "環球晶"}, map[string]string{"AAPL": "Apple Inc."})
	settingsService := services.NewSettingsService(store.NewSettingsStore(filepath.Join(dir, "settings.json")))

	svc := Services{
		Watchlist: services.NewWatchlistService(watchlistStore, market),
		Dashboard: services.NewDashboardService(watchlistStore, market, directory, settingsService, services.DashboardOptions{}),
		Quotes:    services.NewQuoteService(market, directory),
		Settings:  settingsService,
		Symbols:   directory,
	}
	return &testApp{Router: NewRouter(svc, Options{APIKey: testAPIKey})}
}

func (app *testApp) request(method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(middleware.APIKeyHeader, apiKey)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	rec := app.request(http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMutatingRoutesRequireAPIKey(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodPost, "/api/v1/watchlist", `{"ticker":"AAPL"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request(http.MethodPost, "/api/v1/watchlist", `{"ticker":"AAPL"}`, "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong key, got %d", rec.Code)
	}

	// Reads stay open.
	rec = app.request(http.MethodGet, "/api/v1/watchlist", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWatchlistFlow(t *testing.T) {
	app := setupApp(t)

	// Step 1: add two tickers; 6488.TW only trades on TPEx.
	for _, ticker := range []string{"AAPL", "6488.tw"} {
		rec := app.request(http.MethodPost, "/api/v1/watchlist", fmt.Sprintf(`{"ticker":%q}`, ticker), testAPIKey)
		if rec.Code != http.StatusCreated {
			t.Fatalf("add %s: expected 201, got %d: %s", ticker, rec.Code, rec.Body.String())
		}
	}

	// Step 2: duplicate add fails
	rec := app.request(http.MethodPost, "/api/v1/watchlist", `{"ticker":"AAPL"}`, testAPIKey)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	// Step 3: record a holding
	rec = app.request(http.MethodPut, "/api/v1/watchlist/AAPL", `{"avg_cost":100,"shares":10,"tags":["tech"],"rating":4}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 4: reorder
	rec = app.request(http.MethodPut, "/api/v1/watchlist/order", `{"tickers":["6488.TWO","AAPL"]}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	items := parseJSON(t, rec)["items"].([]interface{})
	if items[0].(map[string]interface{})["ticker"] != "6488.TWO" {
		t.Fatalf("expected resolved TPEx ticker first, got %v", items)
	}

	// Step 5: dashboard
	rec = app.request(http.MethodGet, "/api/v1/dashboard?period=1M", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	dash := parseJSON(t, rec)["dashboard"].(map[string]interface{})
	if dash["total"] != float64(2) {
		t.Errorf("expected 2 items, got %v", dash["total"])
	}
	views := dash["items"].([]interface{})
	first := views[0].(map[string]interface{})
	if first["display_name"] != "環球晶" {
		t.Errorf("expected TW name from stock map, got %v", first["display_name"])
	}
	aapl := views[1].(map[string]interface{})
	if aapl["price"] != float64(200) {
		t.Errorf("expected AAPL price 200, got %v", aapl["price"])
	}
	change := aapl["change"].(map[string]interface{})
	if change["pct"] != float64(100) {
		t.Errorf("expected 100%% change, got %v", change["pct"])
	}

	// 10 shares: cost 1000 USD, value 2000 USD at 30 TWD/USD.
	summary := dash["summary"].(map[string]interface{})
	if summary["total_cost"] != float64(30000) || summary["total_value"] != float64(60000) {
		t.Errorf("unexpected summary %v", summary)
	}
	if summary["fx_fallback"] != false {
		t.Errorf("expected live FX rate, got fallback")
	}

	// Step 6: filter on holdings
	rec = app.request(http.MethodGet, "/api/v1/dashboard?holding=NOT_HELD", "", "")
	dash = parseJSON(t, rec)["dashboard"].(map[string]interface{})
	if dash["total"] != float64(1) {
		t.Errorf("expected 1 unheld item, got %v", dash["total"])
	}

	// Step 7: remove, then remove again as a no-op
	for i := 0; i < 2; i++ {
		rec = app.request(http.MethodDelete, "/api/v1/watchlist/AAPL", "", testAPIKey)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("remove %d: expected 204, got %d", i, rec.Code)
		}
	}
	rec = app.request(http.MethodGet, "/api/v1/watchlist", "", "")
	if n := len(parseJSON(t, rec)["items"].([]interface{})); n != 1 {
		t.Errorf("expected 1 item left, got %d", n)
	}
}

func TestQuoteAndSymbolRoutes(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodGet, "/api/v1/quotes/aapl", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	quote := parseJSON(t, rec)["quote"].(map[string]interface{})
	if quote["display_name"] != "AAPL Inc" {
		t.Errorf("expected quote short name as display name, got %v", quote["display_name"])
	}

	rec = app.request(http.MethodGet, "/api/v1/quotes/NOPE", "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec = app.request(http.MethodGet, "/api/v1/fx/USDTWD", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rate := parseJSON(t, rec)["fx"].(map[string]interface{})["rate"]; rate != float64(30) {
		t.Errorf("expected rate 30, got %v", rate)
	}

	rec = app.request(http.MethodGet, "/api/v1/symbols?q=apple", "", "")
	found := parseJSON(t, rec)["symbols"].([]interface{})
	if len(found) != 1 || found[0].(map[string]interface{})["ticker"] != "AAPL" {
		t.Errorf("unexpected symbols %v", found)
	}
}

func TestSettingsFlow(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodPut, "/api/v1/settings", `{"refresh_interval":300}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request(http.MethodPut, "/api/v1/settings/tags/ai/color", `{"color":"#ff3d00"}`, testAPIKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request(http.MethodGet, "/api/v1/settings", "", "")
	settings := parseJSON(t, rec)["settings"].(map[string]interface{})
	if settings["refresh_interval"] != float64(300) {
		t.Errorf("expected interval 300, got %v", settings["refresh_interval"])
	}
	if settings["tag_colors"].(map[string]interface{})["ai"] != "#ff3d00" {
		t.Errorf("expected custom ai colour, got %v", settings["tag_colors"])
	}

	rec = app.request(http.MethodGet, "/api/v1/dashboard", "", "")
	dash := parseJSON(t, rec)["dashboard"].(map[string]interface{})
	if dash["refresh_interval"] != float64(300) {
		t.Errorf("expected dashboard refresh interval 300, got %v", dash["refresh_interval"])
	}
}
