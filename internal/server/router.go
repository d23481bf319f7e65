// Package server assembles the gin router for the watchlist API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"watchboard/internal/handlers"
	"watchboard/internal/middleware"
	"watchboard/internal/services"

	_ "watchboard/internal/docs" // Import swagger docs
)

// Services are the dependencies behind the API handlers.
type Services struct {
	Watchlist services.WatchlistServicer
	Dashboard services.DashboardServicer
	Quotes    services.QuoteServicer
	Settings  services.SettingsServicer
	Symbols   services.SymbolSearcher
}

// Options configure the router.
type Options struct {
	// APIKey guards mutating routes. Empty disables the check.
	APIKey string
	// Swagger mounts the API docs under /swagger.
	Swagger bool
}

// NewRouter builds the router with every API route registered.
func NewRouter(svc Services, opts Options) *gin.Engine {
	watchlistHandler := handlers.NewWatchlistHandler(svc.Watchlist)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	quoteHandler := handlers.NewQuoteHandler(svc.Quotes)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings)
	symbolHandler := handlers.NewSymbolHandler(svc.Symbols)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Read routes
	v1.GET("/watchlist", watchlistHandler.List)
	v1.GET("/dashboard", dashboardHandler.Get)
	v1.GET("/quotes/:ticker", quoteHandler.GetQuote)
	v1.GET("/quotes/:ticker/history", quoteHandler.GetHistory)
	v1.GET("/fx/:pair", quoteHandler.GetFXRate)
	v1.GET("/symbols", symbolHandler.Search)
	v1.GET("/settings", settingsHandler.Get)

	// Mutating routes
	protected := v1.Group("/")
	protected.Use(middleware.APIKeyAuth(opts.APIKey))

	watchlist := protected.Group("/watchlist")
	watchlist.POST("", watchlistHandler.Add)
	watchlist.PUT("/order", watchlistHandler.Reorder)
	watchlist.PUT("/:ticker", watchlistHandler.Update)
	watchlist.DELETE("/:ticker", watchlistHandler.Remove)

	settings := protected.Group("/settings")
	settings.PUT("", settingsHandler.Update)
	settings.PUT("/tags/:tag/color", settingsHandler.SetTagColor)

	return router
}
