package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "watchboard/internal/errors"
)

// APIKeyHeader carries the shared secret for mutating routes.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth validates the X-API-Key header against apiKey. With no key
// configured every request passes, which suits a local single-user setup.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, envelope(apperrors.ErrUnauthorized))
			return
		}
		c.Next()
	}
}
