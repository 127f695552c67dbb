// internal/middleware/logging_middleware.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticket-service/internal/utils"
)

// LoggingMiddleware logs one line per request, tagged with its request ID
func LoggingMiddleware(logger *utils.ServiceLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		duration := time.Since(startTime)

		requestLogger := logger
		if requestID := c.GetString(utils.RequestIDKey); requestID != "" {
			requestLogger = &utils.ServiceLogger{Logger: utils.LoggerWithRequestID(logger.Logger, requestID)}
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		requestLogger.LogAPIRequest(
			c.Request.Method,
			path,
			c.Request.UserAgent(),
			c.ClientIP(),
			c.Writer.Status(),
			duration,
		)

		if len(c.Errors) > 0 {
			requestLogger.Warn("Request errors", zap.Strings("errors", c.Errors.Errors()))
		}
	}
}
