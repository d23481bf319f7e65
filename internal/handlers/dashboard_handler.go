package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/models"
	"watchboard/internal/services"
)

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardParams are the dashboard query parameters. List parameters accept
// repeated keys or comma separated values.
type DashboardParams struct {
	Period  string   `form:"period" binding:"omitempty,period"`
	Sort    string   `form:"sort"`
	Tags    []string `form:"tags"`
	Holding []string `form:"holding"`
	Ratings []string `form:"ratings"`
}

func (p DashboardParams) query() (services.DashboardQuery, error) {
	q := services.DashboardQuery{
		Period: models.Period(strings.ToUpper(p.Period)),
		Sort:   services.SortKey(strings.ToLower(p.Sort)),
		Filter: services.ItemFilter{
			Tags:    splitList(p.Tags),
			Holding: splitList(p.Holding),
		},
	}
	if !q.Sort.Valid() {
		return q, apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown sort: "+p.Sort)
	}

	for i, h := range q.Filter.Holding {
		h = strings.ToUpper(h)
		if h != services.FilterHeld && h != services.FilterNotHeld {
			return q, apperrors.WithMessage(apperrors.ErrInvalidInput, "Holding filter must be HELD or NOT_HELD")
		}
		q.Filter.Holding[i] = h
	}

	for _, r := range splitList(p.Ratings) {
		rating, err := strconv.Atoi(r)
		if err != nil || rating < 0 || rating > models.MaxRating {
			return q, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ratings must be between 0 and 5")
		}
		q.Filter.Ratings = append(q.Filter.Ratings, rating)
	}
	return q, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Get builds the dashboard view
// @Summary     Get dashboard
// @Description Prices, changes, holdings, portfolio summary in TWD and filter counts for the watchlist. Items are sorted, then filtered.
// @Tags        dashboard
// @Produce     json
// @Param       period  query string false "Chart period (1D, 7D, 1M, 1Y, ALL)" default(1M)
// @Param       sort    query string false "manual, type, rating, change_1d_desc, change_1d_asc, change_1m_desc, change_1m_asc, value"
// @Param       tags    query string false "Tag filter, comma separated; NO_TAG matches untagged items"
// @Param       holding query string false "Holding filter: HELD, NOT_HELD"
// @Param       ratings query string false "Rating filter, comma separated 0-5"
// @Success     200 {object} map[string]services.Dashboard "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	var params DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	q, err := params.query()
	if err != nil {
		respondWithError(c, err)
		return
	}

	dash, err := h.dashboardService.Build(c.Request.Context(), q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": dash})
}
