package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
)

// errorHandler recovers panics into the error envelope.
func errorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("request panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: message,
		}})
	})
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
