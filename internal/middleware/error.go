package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/quotepulse/internal/domain/dto"
	"github.com/guttosm/quotepulse/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON error response
// when the handler did not write one itself. The status defaults to 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().Str("request_id", toString(rid)).Int("status", status).Err(err).Msg("request failed")

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(http.StatusText(status), err))
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
