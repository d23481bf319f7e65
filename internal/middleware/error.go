package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context with c.Error into
// the JSON error envelope. AppErrors keep their code and message; anything
// else is logged and reported as an internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			c.JSON(appErr.StatusCode, envelope(appErr))
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode, envelope(apperrors.ErrInternalServer))
	}
}

func envelope(e *apperrors.AppError) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    e.Code,
			"message": e.Message,
		},
	}
}
