// internal/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"ticket-service/internal/config"
	"ticket-service/internal/handler"
	"ticket-service/internal/middleware"
	"ticket-service/internal/utils"
)

// Router holds all dependencies for routing
type Router struct {
	config       *config.Config
	logger       *zap.Logger
	printService handler.PrintService
	monitor      handler.PrinterStatusSource
	scanner      handler.PrinterScanner
	eventBus     *handler.EventBus

	healthHandler *handler.HealthHandler
	wsHandler     *handler.WebSocketHandler
}

// NewRouter creates a new router instance; monitor may be nil
func NewRouter(
	config *config.Config,
	logger *zap.Logger,
	printService handler.PrintService,
	monitor handler.PrinterStatusSource,
	scanner handler.PrinterScanner,
	eventBus *handler.EventBus,
) *Router {
	return &Router{
		config:       config,
		logger:       logger,
		printService: printService,
		monitor:      monitor,
		scanner:      scanner,
		eventBus:     eventBus,
	}
}

// SetupRouter creates and configures the Gin router
func (r *Router) SetupRouter() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if r.config.App.Environment == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	r.addMiddleware(router)
	r.addRoutes(router)

	return router
}

// HealthHandler returns the health handler created by SetupRouter
func (r *Router) HealthHandler() *handler.HealthHandler {
	return r.healthHandler
}

// WebSocketHandler returns the event stream handler created by SetupRouter
func (r *Router) WebSocketHandler() *handler.WebSocketHandler {
	return r.wsHandler
}

// addMiddleware adds middleware to the router
func (r *Router) addMiddleware(router *gin.Engine) {
	router.Use(middleware.RecoveryMiddleware(r.logger))
	router.Use(middleware.RequestIDMiddleware())

	serviceLogger := utils.NewServiceLogger(r.logger, "http-server")
	router.Use(middleware.LoggingMiddleware(serviceLogger))

	router.Use(middleware.CORSMiddleware(&r.config.Security))

	r.logger.Info("Middleware configured")
}

// addRoutes sets up all application routes
func (r *Router) addRoutes(router *gin.Engine) {
	r.healthHandler = handler.NewHealthHandler(r.config, r.monitor, r.logger)
	r.wsHandler = handler.NewWebSocketHandler(r.eventBus, r.config.Security.AllowedOrigins, r.logger)
	printHandler := handler.NewPrintHandler(r.printService, r.config.Printer, r.logger)
	discoveryHandler := handler.NewDiscoveryHandler(r.scanner, r.logger)

	// Health check routes
	r.healthHandler.RegisterRoutes(router.Group(""))

	// API v1 routes
	api := router.Group("/api/v1")
	printHandler.RegisterRoutes(api)
	discoveryHandler.RegisterRoutes(api)

	// WebSocket routes
	r.wsHandler.RegisterRoutes(router.Group("/ws"))

	r.addDocumentationRoutes(router)

	r.logger.Info("All routes configured successfully")
}

// addDocumentationRoutes serves the swagger UI and its /docs shortcut
func (r *Router) addDocumentationRoutes(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
}
