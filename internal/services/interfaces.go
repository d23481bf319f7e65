package services

import (
	"context"

	"watchboard/internal/marketdata"
	"watchboard/internal/models"
	"watchboard/internal/symbols"
)

// MarketData is the cached market data source the services read from.
type MarketData interface {
	Quote(ctx context.Context, ticker string) (*marketdata.Quote, bool)
	Price(ctx context.Context, ticker string) (float64, bool)
	History(ctx context.Context, ticker string, period models.Period) []marketdata.Bar
	FXRate(ctx context.Context, pair string) (float64, bool)
	Prefetch(ctx context.Context, reqs []marketdata.PrefetchRequest, fxPairs ...string)
	ResolveListing(ctx context.Context, ticker string) string
}

// WatchlistServicer defines the contract for watchlist operations.
type WatchlistServicer interface {
	List(ctx context.Context) ([]models.WatchlistItem, error)
	Get(ctx context.Context, ticker string) (*models.WatchlistItem, error)
	Add(ctx context.Context, ticker string) (*models.WatchlistItem, error)
	Update(ctx context.Context, ticker string, update models.ItemUpdate) (*models.WatchlistItem, error)
	Remove(ctx context.Context, ticker string) (bool, error)
	Reorder(ctx context.Context, tickers []string) error
}

// DashboardServicer defines the contract for building the dashboard view.
type DashboardServicer interface {
	Build(ctx context.Context, query DashboardQuery) (*Dashboard, error)
}

// QuoteServicer defines the contract for single-symbol market data lookups.
type QuoteServicer interface {
	Quote(ctx context.Context, ticker string) (*QuoteView, error)
	History(ctx context.Context, ticker string, period models.Period) ([]marketdata.Bar, error)
	FXRate(ctx context.Context, pair string) (*FXView, error)
}

// SettingsServicer defines the contract for dashboard preferences.
type SettingsServicer interface {
	Get() models.Settings
	Update(refreshInterval *int, tagColors map[string]string) (models.Settings, error)
	SetTagColor(tag, color string) (models.Settings, error)
}

// SymbolSearcher looks up tickers by symbol or company name.
type SymbolSearcher interface {
	Search(query string, limit int) []symbols.Entry
}

// SymbolNamer resolves display names.
type SymbolNamer interface {
	DisplayName(item models.WatchlistItem, shortName, longName string) string
}
