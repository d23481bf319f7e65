package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"watchboard/internal/logger"
)

// Store backends.
const (
	StoreFile = "file"
	StoreSQL  = "sql"
)

// MaxPrefetchWorkers caps the size of the quote prefetch pool.
const MaxPrefetchWorkers = 30

// Config holds application configuration
type Config struct {
	// Server
	Port   string
	Env    string
	APIKey string

	// Storage
	StoreBackend  string
	WatchlistFile string
	SettingsFile  string
	TWStockMap    string
	USStockMap    string

	// Market data
	QuoteBaseURL    string
	RequestTimeout  time.Duration
	PriceCacheTTL   time.Duration
	FXCacheTTL      time.Duration
	QuoteRateLimit  float64
	PrefetchWorkers int
	FXPair          string
	FXFallbackRate  float64
}

// Load loads configuration from environment variables, reading a .env file
// first when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn(".env file not found, using environment variables")
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		Env:    getEnv("ENV", "development"),
		APIKey: os.Getenv("API_KEY"),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreFile)),
		WatchlistFile: getEnv("WATCHLIST_FILE", "watchlist.json"),
		SettingsFile:  getEnv("SETTINGS_FILE", "settings.json"),
		TWStockMap:    getEnv("TW_STOCK_MAP", "tw_stock_map.json"),
		USStockMap:    getEnv("US_STOCK_MAP", "us_stock_map.json"),

		QuoteBaseURL: getEnv("QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
		FXPair:       getEnv("FX_PAIR", "USDTWD=X"),
	}

	if cfg.StoreBackend != StoreFile && cfg.StoreBackend != StoreSQL {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be %s or %s", cfg.StoreBackend, StoreFile, StoreSQL)
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PriceCacheTTL, err = parseDuration("PRICE_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.FXCacheTTL, err = parseDuration("FX_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.QuoteRateLimit, err = parseFloat("QUOTE_RATE_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.QuoteRateLimit < 0 {
		return nil, fmt.Errorf("QUOTE_RATE_LIMIT must not be negative, got %v", cfg.QuoteRateLimit)
	}
	if cfg.FXFallbackRate, err = parseFloat("FX_FALLBACK_RATE", 32.0); err != nil {
		return nil, err
	}

	workers, err := strconv.Atoi(getEnv("PREFETCH_WORKERS", strconv.Itoa(MaxPrefetchWorkers)))
	if err != nil {
		return nil, fmt.Errorf("invalid PREFETCH_WORKERS: %w", err)
	}
	if workers < 1 || workers > MaxPrefetchWorkers {
		return nil, fmt.Errorf("PREFETCH_WORKERS must be between 1 and %d, got %d", MaxPrefetchWorkers, workers)
	}
	cfg.PrefetchWorkers = workers

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func parseFloat(key string, defaultVal float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return f, nil
}
