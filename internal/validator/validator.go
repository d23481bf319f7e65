// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"watchboard/internal/models"
)

// Yahoo symbols: letters, digits and the separators used by exchanges,
// crypto pairs, FX pairs and indices (e.g. 2330.TW, BTC-USD, USDTWD=X, ^TWII).
var tickerRegex = regexp.MustCompile(`^\^?[A-Za-z0-9][A-Za-z0-9.\-=]{0,19}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("rating", validateRating)
		_ = v.RegisterValidation("refresh_interval", validateRefreshInterval)
		_ = v.RegisterValidation("period", validatePeriod)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateHexColor(fl validator.FieldLevel) bool {
	return models.ValidHexColor(fl.Field().String())
}

func validateRating(fl validator.FieldLevel) bool {
	r := fl.Field().Int()
	return r >= 0 && r <= models.MaxRating
}

func validateRefreshInterval(fl validator.FieldLevel) bool {
	return models.ValidRefreshInterval(int(fl.Field().Int()))
}

func validatePeriod(fl validator.FieldLevel) bool {
	return models.Period(strings.ToUpper(fl.Field().String())).Valid()
}
