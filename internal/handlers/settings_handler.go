package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"watchboard/internal/services"
)

// SettingsHandler handles dashboard preference requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the request payload for updating settings.
// Omitted fields keep their current value; tag_colors replaces every custom
// colour when present.
type UpdateSettingsRequest struct {
	RefreshInterval *int              `json:"refresh_interval" binding:"omitempty,refresh_interval"`
	TagColors       map[string]string `json:"tag_colors" binding:"omitempty,dive,keys,required,endkeys,hex_color"`
}

// SetTagColorRequest represents the request payload for a tag colour. An
// empty colour resets the tag to its generated colour.
type SetTagColorRequest struct {
	Color string `json:"color" binding:"omitempty,hex_color" example:"#FF3D00"`
}

// Get returns the settings
// @Summary     Get settings
// @Description Refresh interval and custom tag colours
// @Tags        settings
// @Produce     json
// @Success     200 {object} map[string]models.Settings "Settings"
// @Router      /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.settingsService.Get()})
}

// Update changes the settings
// @Summary     Update settings
// @Description Change the refresh interval (0, 30, 60 or 300 seconds) and/or replace the tag colours
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    APIKeyAuth
// @Param       request body UpdateSettingsRequest true "Settings"
// @Success     200 {object} map[string]models.Settings "Settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	settings, err := h.settingsService.Update(req.RefreshInterval, req.TagColors)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// SetTagColor sets a custom tag colour
// @Summary     Set tag colour
// @Description Set or reset the colour of one tag
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    APIKeyAuth
// @Param       tag     path string             true "Tag"
// @Param       request body SetTagColorRequest true "Colour"
// @Success     200 {object} map[string]models.Settings "Settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /settings/tags/{tag}/color [put]
func (h *SettingsHandler) SetTagColor(c *gin.Context) {
	var req SetTagColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	settings, err := h.settingsService.SetTagColor(c.Param("tag"), req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
