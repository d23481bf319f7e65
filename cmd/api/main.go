package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchboard/internal/config"
	"watchboard/internal/database"
	"watchboard/internal/logger"
	"watchboard/internal/marketdata"
	"watchboard/internal/server"
	"watchboard/internal/services"
	"watchboard/internal/store"
	"watchboard/internal/symbols"
	"watchboard/internal/validator"
)

// @title           Watchboard API
// @version         1.0
// @description     Personal investment watchlist dashboard: watchlist management, cached market data and portfolio summary.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey APIKeyAuth
// @in header
// @name X-API-Key
// @description API key required for mutating requests when the server has one configured.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	watchlistStore, closeStore, err := openStore(appConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	// Market data
	yahoo := marketdata.NewYahooClient(
		&http.Client{Timeout: appConfig.RequestTimeout},
		appConfig.QuoteBaseURL,
		appConfig.QuoteRateLimit,
	)
	market := marketdata.NewAccessor(yahoo, marketdata.Options{
		PriceTTL: appConfig.PriceCacheTTL,
		FXTTL:    appConfig.FXCacheTTL,
		Workers:  appConfig.PrefetchWorkers,
	})
	market.Start()
	defer market.Stop()

	directory, err := symbols.Load(appConfig.TWStockMap, appConfig.USStockMap)
	if err != nil {
		return fmt.Errorf("failed to load stock maps: %w", err)
	}
	log.Infow("Stock maps loaded", "entries", directory.Len())

	// Initialize services
	settingsService := services.NewSettingsService(store.NewSettingsStore(appConfig.SettingsFile))
	svc := server.Services{
		Watchlist: services.NewWatchlistService(watchlistStore, market),
		Dashboard: services.NewDashboardService(watchlistStore, market, directory, settingsService, services.DashboardOptions{
			FXPair:         appConfig.FXPair,
			FXFallbackRate: appConfig.FXFallbackRate,
		}),
		Quotes:   services.NewQuoteService(market, directory),
		Settings: settingsService,
		Symbols:  directory,
	}

	if appConfig.APIKey == "" {
		log.Warn("API_KEY not set: mutating routes are open")
	}
	router := server.NewRouter(svc, server.Options{APIKey: appConfig.APIKey, Swagger: true})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Watchboard server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns the watchlist store selected by STORE_BACKEND and a
// function releasing it.
func openStore(appConfig *config.Config) (store.WatchlistStore, func(), error) {
	if appConfig.StoreBackend == config.StoreFile {
		logger.Get().Infow("Using file store", "path", appConfig.WatchlistFile)
		return store.NewFileStore(appConfig.WatchlistFile), func() {}, nil
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		_ = dbManager.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Get().Infow("Using SQL store", "driver", dbConfig.Driver)

	return store.NewSQLStore(dbManager.DB()), func() {
		if err := dbManager.Close(); err != nil {
			logger.Get().Warnw("closing database failed", "error", err)
		}
	}, nil
}
