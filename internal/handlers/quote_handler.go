package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"watchboard/internal/models"
	"watchboard/internal/services"
)

// QuoteHandler handles market data lookups.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// HistoryParams are the history query parameters.
type HistoryParams struct {
	Period string `form:"period" binding:"omitempty,period"`
}

// GetQuote returns the latest quote for a ticker
// @Summary     Get quote
// @Description Latest price and names for a ticker. A .TW ticker without data falls back to .TWO.
// @Tags        quotes
// @Produce     json
// @Param       ticker path string true "Ticker"
// @Success     200 {object} map[string]services.QuoteView "Quote"
// @Failure     404 {object} ErrorResponse "No data"
// @Router      /quotes/{ticker} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	ticker, err := pathTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	q, err := h.quoteService.Quote(c.Request.Context(), ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": q})
}

// GetHistory returns price bars for a ticker
// @Summary     Get history
// @Description OHLCV bars for a ticker over a chart period
// @Tags        quotes
// @Produce     json
// @Param       ticker path  string true  "Ticker"
// @Param       period query string false "Chart period (1D, 7D, 1M, 1Y, ALL)" default(1M)
// @Success     200 {object} map[string]interface{} "Bars"
// @Failure     400 {object} ErrorResponse "Invalid period"
// @Failure     404 {object} ErrorResponse "No data"
// @Router      /quotes/{ticker}/history [get]
func (h *QuoteHandler) GetHistory(c *gin.Context) {
	ticker, err := pathTicker(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var params HistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	period := models.Period(strings.ToUpper(params.Period))
	if period == "" {
		period = models.DefaultPeriod
	}

	bars, err := h.quoteService.History(c.Request.Context(), ticker, period)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "period": period, "bars": bars})
}

// GetFXRate returns an exchange rate
// @Summary     Get FX rate
// @Description Exchange rate for a Yahoo FX pair such as USDTWD=X
// @Tags        quotes
// @Produce     json
// @Param       pair path string true "FX pair" example(USDTWD=X)
// @Success     200 {object} map[string]services.FXView "Rate"
// @Failure     404 {object} ErrorResponse "No data"
// @Router      /fx/{pair} [get]
func (h *QuoteHandler) GetFXRate(c *gin.Context) {
	fx, err := h.quoteService.FXRate(c.Request.Context(), c.Param("pair"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fx": fx})
}
