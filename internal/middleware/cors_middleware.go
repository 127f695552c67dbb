// internal/middleware/cors_middleware.go
package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ticket-service/internal/config"
	"ticket-service/internal/utils"
)

// CORSMiddleware creates CORS middleware for browser callers of the print API
func CORSMiddleware(config *config.SecurityConfig) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	if len(config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", utils.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", utils.RequestIDHeader}

	return cors.New(corsConfig)
}
