package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"watchboard/internal/services"
)

const defaultSymbolLimit = 20

// SymbolHandler handles ticker search.
type SymbolHandler struct {
	symbols services.SymbolSearcher
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(symbols services.SymbolSearcher) *SymbolHandler {
	return &SymbolHandler{symbols: symbols}
}

// SearchParams are the symbol search query parameters.
type SearchParams struct {
	Query string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// Search finds tickers by symbol or name
// @Summary     Search symbols
// @Description Match Taiwan and US tickers by symbol prefix or company name
// @Tags        symbols
// @Produce     json
// @Param       q     query string false "Search text"
// @Param       limit query int    false "Maximum results" default(20)
// @Success     200 {object} map[string][]symbols.Entry "Matches"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /symbols [get]
func (h *SymbolHandler) Search(c *gin.Context) {
	var params SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	if params.Limit == 0 {
		params.Limit = defaultSymbolLimit
	}
	c.JSON(http.StatusOK, gin.H{"symbols": h.symbols.Search(params.Query, params.Limit)})
}
