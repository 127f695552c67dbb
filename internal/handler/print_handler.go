// internal/handler/print_handler.go
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticket-service/internal/config"
	"ticket-service/internal/model"
	"ticket-service/internal/protocol"
	"ticket-service/internal/service"
	"ticket-service/internal/utils"
)

// PrintService is the subset of service.PrintService the handler depends on
type PrintService interface {
	PrintTasks(ctx context.Context, req *model.PrintRequest) (*service.PrintResult, error)
	PrintWifiQR(ctx context.Context, req *model.WifiRequest) (*service.PrintResult, error)
	PingPrinter(ctx context.Context, host string, port int) model.PrinterStatus
}

// PrintHandler handles ticket print and printer probe requests
type PrintHandler struct {
	printService PrintService
	printer      config.PrinterConfig
	logger       *utils.ServiceLogger
}

// NewPrintHandler creates a new print handler. Requests that omit host or
// port fall back to the configured default printer.
func NewPrintHandler(printService PrintService, printer config.PrinterConfig, logger *zap.Logger) *PrintHandler {
	return &PrintHandler{
		printService: printService,
		printer:      printer,
		logger:       utils.NewServiceLogger(logger, "print-handler"),
	}
}

// RegisterRoutes registers print routes
func (h *PrintHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/print/tasks", h.PrintTasks)
	router.POST("/print/wifi", h.PrintWifi)
	router.GET("/printer/ping", h.PingPrinter)
}

// PrintTasks prints one or more tasks
// @Summary Print task tickets
// @Description Build single, daily or weekly task tickets and send them to the printer. Host and port default to the configured printer.
// @Tags Print
// @Accept json
// @Produce json
// @Param request body model.PrintRequest true "Task print request"
// @Success 200 {object} utils.APIResponse{data=service.PrintResult} "Tasks printed successfully"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 502 {object} utils.APIResponse "Printer unavailable"
// @Failure 504 {object} utils.APIResponse "Printer timeout"
// @Router /print/tasks [post]
func (h *PrintHandler) PrintTasks(c *gin.Context) {
	var req model.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, "body", err)
		return
	}
	req.Host, req.Port = h.endpoint(req.Host, req.Port)

	result, err := h.printService.PrintTasks(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "Failed to print tasks", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tasks printed successfully", result)
}

// PrintWifi prints a WiFi credential ticket
// @Summary Print WiFi ticket
// @Description Print the network name and a WiFi join QR code
// @Tags Print
// @Accept json
// @Produce json
// @Param request body model.WifiRequest true "WiFi print request"
// @Success 200 {object} utils.APIResponse{data=service.PrintResult} "WiFi ticket printed successfully"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Failure 502 {object} utils.APIResponse "Printer unavailable"
// @Failure 504 {object} utils.APIResponse "Printer timeout"
// @Router /print/wifi [post]
func (h *PrintHandler) PrintWifi(c *gin.Context) {
	var req model.WifiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, "body", err)
		return
	}
	req.Host, req.Port = h.endpoint(req.Host, req.Port)

	result, err := h.printService.PrintWifiQR(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, "Failed to print WiFi ticket", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "WiFi ticket printed successfully", result)
}

// PingPrinter reports whether the printer accepts connections.
// Unreachable printers are a normal result, not an error.
// @Summary Probe printer
// @Description Open a connection to the printer without writing
// @Tags Printer
// @Produce json
// @Param host query string false "Printer host (defaults to the configured printer)"
// @Param port query int false "Printer port" default(9100)
// @Success 200 {object} utils.APIResponse{data=model.PrinterStatus} "Printer probed"
// @Failure 400 {object} utils.APIResponse "Validation failed"
// @Router /printer/ping [get]
func (h *PrintHandler) PingPrinter(c *gin.Context) {
	port, ok := queryPort(c)
	if !ok {
		return
	}
	host, port := h.endpoint(c.Query("host"), port)
	if host == "" {
		utils.ValidationErrorResponse(c, "host", protocol.ErrMissingHost)
		return
	}

	status := h.printService.PingPrinter(c.Request.Context(), host, port)
	utils.SuccessResponse(c, http.StatusOK, "Printer probed", status)
}

// queryPort reads the optional ?port= parameter; 0 means unset. It writes
// the validation response itself and reports false on a bad value.
func queryPort(c *gin.Context) (int, bool) {
	raw := c.Query("port")
	if raw == "" {
		return 0, true
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 0 || port > 65535 {
		utils.ValidationErrorResponse(c, "port", errors.New("port must be between 1 and 65535"))
		return 0, false
	}
	return port, true
}

func (h *PrintHandler) endpoint(host string, port int) (string, int) {
	host = strings.TrimSpace(host)
	if host == "" {
		host = strings.TrimSpace(h.printer.Host)
		if port <= 0 {
			port = h.printer.Port
		}
	}
	if port <= 0 {
		port = model.DefaultPrinterPort
	}
	return host, port
}

// handleError maps service errors onto HTTP responses
func (h *PrintHandler) handleError(c *gin.Context, message string, err error) {
	var validationErr *model.ValidationError
	var transportErr *protocol.TransportError

	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, validationErr.Field, err)
	case errors.Is(err, protocol.ErrTimeout):
		utils.ErrorResponse(c, http.StatusGatewayTimeout, message, err)
	case errors.Is(err, context.Canceled):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, message, err)
	case errors.As(err, &transportErr):
		utils.ErrorResponseWithCode(c, http.StatusBadGateway, transportErr.Code, message, err)
	default:
		h.logger.Error(message, zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
