package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quotepulse/internal/logger"
)

// RecoveryMiddleware converts a panic in a handler into a 500 dto.ErrorResponse.
//
// The panic value and stack are logged with the request id, path and the
// queried ticker so a failing analysis can be traced back to its request.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			logger.L().Error().
				Str("request_id", toString(rid)).
				Str("path", c.Request.URL.Path).
				Str("ticker", c.Query("ticker")).
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")

			AbortWithError(c, http.StatusInternalServerError, "Internal server error", fmt.Errorf("panic: %v", r))
		}()

		c.Next()
	}
}
