// internal/handler/discovery_handler.go
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticket-service/internal/discovery"
	"ticket-service/internal/model"
	"ticket-service/internal/utils"
)

// PrinterScanner finds printers listening on a network range
type PrinterScanner interface {
	Scan(ctx context.Context, ranges []string, port int) (*discovery.ScanResult, error)
}

// DiscoveryHandler handles printer discovery requests
type DiscoveryHandler struct {
	scanner PrinterScanner
	logger  *utils.ServiceLogger
}

// NewDiscoveryHandler creates a new discovery handler
func NewDiscoveryHandler(scanner PrinterScanner, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		scanner: scanner,
		logger:  utils.NewServiceLogger(logger, "discovery-handler"),
	}
}

// RegisterRoutes registers discovery routes
func (h *DiscoveryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/printer/discover", h.DiscoverPrinters)
}

// DiscoverPrinters scans one or more ?cidr= ranges for open printer ports.
// Without cidr the configured network ranges are scanned.
// @Summary Discover printers
// @Description Probe every host of the given network ranges for an open printer port
// @Tags Printer
// @Produce json
// @Param cidr query []string false "Network range in CIDR notation" collectionFormat(multi)
// @Param port query int false "Printer port" default(9100)
// @Success 200 {object} utils.APIResponse{data=discovery.ScanResult} "Printer scan completed"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 503 {object} utils.APIResponse "Scan aborted"
// @Router /printer/discover [get]
func (h *DiscoveryHandler) DiscoverPrinters(c *gin.Context) {
	port, ok := queryPort(c)
	if !ok {
		return
	}

	result, err := h.scanner.Scan(c.Request.Context(), c.QueryArray("cidr"), port)
	if err != nil {
		var validationErr *model.ValidationError
		switch {
		case errors.As(err, &validationErr):
			utils.ValidationErrorResponse(c, validationErr.Field, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "Printer scan aborted", err)
		default:
			h.logger.Error("Failed to scan for printers", zap.Error(err))
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to scan for printers", err)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer scan completed", result)
}
