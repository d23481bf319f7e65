package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"watchboard/internal/models"
	"watchboard/internal/services"
)

// WatchlistHandler handles watchlist requests.
type WatchlistHandler struct {
	watchlistService services.WatchlistServicer
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService services.WatchlistServicer) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// AddTickerRequest represents the request payload for adding a ticker.
type AddTickerRequest struct {
	Ticker string `json:"ticker" binding:"required,ticker" example:"2330.TW"`
}

// UpdateItemRequest represents the request payload for editing an item.
// Omitted fields keep their current value.
type UpdateItemRequest struct {
	CustomName     *string  `json:"custom_name"`
	Note           *string  `json:"note"`
	Rating         *int     `json:"rating" binding:"omitempty,rating"`
	YahooURL       *string  `json:"yahoo_url" binding:"omitempty,url"`
	TradingViewURL *string  `json:"tradingview_url" binding:"omitempty,url"`
	AvgCost        *float64 `json:"avg_cost" binding:"omitempty,min=0"`
	Shares         *float64 `json:"shares" binding:"omitempty,min=0"`
	Tags           []string `json:"tags"`
}

// ReorderRequest represents the request payload for reordering the watchlist.
type ReorderRequest struct {
	Tickers []string `json:"tickers" binding:"required,dive,ticker"`
}

// merge overlays the request onto the current item.
func (r UpdateItemRequest) merge(item models.WatchlistItem) models.ItemUpdate {
	u := models.ItemUpdate{
		CustomName:     item.CustomName,
		Note:           item.Note,
		Rating:         item.Rating,
		YahooURL:       item.YahooURL,
		TradingViewURL: item.TradingViewURL,
		AvgCost:        item.AvgCost,
		Shares:         item.Shares,
		Tags:           item.Tags,
	}
	if r.CustomName != nil {
		u.CustomName = *r.CustomName
	}
	if r.Note != nil {
		u.Note = *r.Note
	}
	if r.Rating != nil {
		u.Rating = *r.Rating
	}
	if r.YahooURL != nil {
		u.YahooURL = *r.YahooURL
	}
	if r.TradingViewURL != nil {
		u.TradingViewURL = *r.TradingViewURL
	}
	if r.AvgCost != nil {
		u.AvgCost = *r.AvgCost
	}
	if r.Shares != nil {
		u.Shares = *r.Shares
	}
	if r.Tags != nil {
		u.Tags = r.Tags
	}
	return u
}

// List returns the watchlist in display order
// @Summary     List watchlist
// @Description Get every watchlist item in display order
// @Tags        watchlist
// @Produce     json
// @Success     200 {object} map[string][]models.WatchlistItem "Watchlist items"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist [get]
func (h *WatchlistHandler) List(c *gin.Context) {
	items, err := h.watchlistService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Add appends a ticker to the watchlist
// @Summary     Add ticker
// @Description Add a ticker to the end of the watchlist. A .TW ticker listed on TPEx is stored as .TWO.
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    APIKeyAuth
// @Param       request body AddTickerRequest true "Ticker"
// @Success     201 {object} map[string]models.WatchlistItem "Item added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Ticker already in watchlist"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist [post]
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req AddTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	item, err := h.watchlistService.Add(c.Request.Context(), req.Ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update edits a watchlist item
// @Summary     Update item
// @Description Edit the name, note, rating, links, holding and tags of an item
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    APIKeyAuth
// @Param       ticker  path string            true "Ticker"
// @Param       request body UpdateItemRequest true "Fields to change"
// @Success     200 {object} map[string]models.WatchlistItem "Item updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Ticker not in watchlist"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist/{ticker} [put]
func (h *WatchlistHandler) Update(c *gin.Context) {
	ticker, err := pathTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	ctx := c.Request.Context()
	current, err := h.watchlistService.Get(ctx, ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.watchlistService.Update(ctx, ticker, req.merge(*current))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Remove deletes a ticker from the watchlist
// @Summary     Remove ticker
// @Description Remove a ticker. Removing a ticker that is not listed is a no-op.
// @Tags        watchlist
// @Security    APIKeyAuth
// @Param       ticker path string true "Ticker"
// @Success     204 "Removed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist/{ticker} [delete]
func (h *WatchlistHandler) Remove(c *gin.Context) {
	ticker, err := pathTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.watchlistService.Remove(c.Request.Context(), ticker); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder persists a new display order
// @Summary     Reorder watchlist
// @Description Persist the given ticker order. The list must contain every watchlist ticker exactly once.
// @Tags        watchlist
// @Accept      json
// @Produce     json
// @Security    APIKeyAuth
// @Param       request body ReorderRequest true "New order"
// @Success     200 {object} map[string][]models.WatchlistItem "Reordered items"
// @Failure     400 {object} ErrorResponse "Invalid order"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /watchlist/order [put]
func (h *WatchlistHandler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.watchlistService.Reorder(ctx, req.Tickers); err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.watchlistService.List(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
