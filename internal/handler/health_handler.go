// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticket-service/internal/config"
	"ticket-service/internal/model"
	"ticket-service/internal/utils"
)

// PrinterStatusSource exposes the last known printer reachability
type PrinterStatusSource interface {
	LastStatus() (model.PrinterStatus, bool)
}

// HealthHandler handles health check requests
type HealthHandler struct {
	config    *config.Config
	monitor   PrinterStatusSource
	startedAt time.Time
	draining  atomic.Bool
	logger    *utils.ServiceLogger
}

// NewHealthHandler creates a new health handler; monitor may be nil
func NewHealthHandler(config *config.Config, monitor PrinterStatusSource, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		config:    config,
		monitor:   monitor,
		startedAt: time.Now(),
		logger:    utils.NewServiceLogger(logger, "health-handler"),
	}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.HealthCheck)
	router.GET("/ready", h.ReadinessCheck)
	router.GET("/live", h.LivenessCheck)
}

// SetDraining marks the service as shutting down so readiness fails
func (h *HealthHandler) SetDraining() {
	if !h.draining.Swap(true) {
		h.logger.Info("Readiness disabled, draining connections")
	}
}

// HealthCheck reports service metadata and the last printer probe.
// An unreachable printer degrades the report but keeps a 200 status.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.config.App.Name,
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startedAt).String(),
		Checks:    make(map[string]CheckResult),
	}

	health.Checks["printer"] = h.printerCheck()
	if health.Checks["printer"].Status == "unhealthy" {
		health.Status = "degraded"
	}

	c.JSON(http.StatusOK, health)
}

func (h *HealthHandler) printerCheck() CheckResult {
	if !h.config.HasDefaultPrinter() {
		return CheckResult{Status: "unknown", Message: "No default printer configured"}
	}

	data := map[string]interface{}{
		"host": h.config.Printer.Host,
		"port": h.config.Printer.Port,
	}
	if h.monitor == nil {
		return CheckResult{Status: "unknown", Message: "Printer monitoring disabled", Data: data}
	}

	status, ok := h.monitor.LastStatus()
	if !ok {
		return CheckResult{Status: "unknown", Message: "Printer not probed yet", Data: data}
	}

	data["checked_at"] = status.CheckedAt
	if !status.Reachable {
		return CheckResult{Status: "unhealthy", Message: status.Error, Data: data}
	}
	return CheckResult{Status: "healthy", Message: "Printer reachable", Data: data}
}

// ReadinessCheck for Kubernetes readiness probe
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.draining.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "shutting down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessCheck for Kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents individual check result
type CheckResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
