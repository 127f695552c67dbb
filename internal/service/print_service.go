// internal/service/print_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-service/internal/model"
	"ticket-service/internal/protocol"
	"ticket-service/internal/ticket"
	"ticket-service/internal/utils"
)

// Event types published after print and probe calls
const (
	EventPrintCompleted = "print.completed"
	EventPrintFailed    = "print.failed"
	EventPrinterStatus  = "printer.status"
)

// EventPublisher receives print outcome notifications
type EventPublisher interface {
	Publish(eventType string, data map[string]interface{})
}

// PrintResult describes a delivered ticket
type PrintResult struct {
	OperationID string      `json:"operation_id"`
	Mode        ticket.Mode `json:"mode"`
	Host        string      `json:"host"`
	Port        int         `json:"port"`
	Bytes       int         `json:"bytes"`
	Tickets     int         `json:"tickets"`
	Duration    string      `json:"duration"`
}

// PrintService composes tickets and hands them to the printer transport.
// It keeps no state between calls: concurrent prints open independent
// connections and are not serialized here.
type PrintService struct {
	transport protocol.PrinterTransport
	events    EventPublisher
	logger    *utils.ServiceLogger
	now       func() time.Time
}

// NewPrintService creates a new print service
func NewPrintService(transport protocol.PrinterTransport, events EventPublisher, logger *zap.Logger) *PrintService {
	return &PrintService{
		transport: transport,
		events:    events,
		logger:    utils.NewServiceLogger(logger, "print-service"),
		now:       time.Now,
	}
}

// PrintTasks renders the tasks with the requested (or inferred) layout and sends them
func (s *PrintService) PrintTasks(ctx context.Context, req *model.PrintRequest) (*PrintResult, error) {
	operationID := uuid.New().String()
	opLogger := utils.NewOperationLogger(s.logger.Logger, "print_tasks", operationID)

	if req == nil {
		err := model.NewValidationError("request", "is required")
		opLogger.Rejected(err)
		return nil, err
	}
	if strings.TrimSpace(req.Host) == "" {
		err := hostValidationError()
		opLogger.Rejected(err)
		return nil, err
	}
	if len(req.Tasks) == 0 {
		err := model.NewValidationError("tasks", "must not be empty")
		opLogger.Rejected(err, zap.String("host", req.Host))
		return nil, err
	}

	mode, err := ticket.ResolveMode(req.Mode, len(req.Tasks))
	if err == nil && mode == ticket.ModeWifi {
		err = model.NewValidationError("mode", "wifi tickets are printed with PrintWifiQR")
	}
	if err != nil {
		opLogger.Rejected(err, zap.String("requested_mode", req.Mode))
		return nil, err
	}

	payload, err := ticket.BuildTasks(mode, req.Tasks, ticket.TaskParams{
		Now:         s.now(),
		WeekRange:   req.WeekRange,
		HeaderTitle: req.HeaderTitle,
	})
	if err != nil {
		opLogger.Rejected(err)
		return nil, err
	}

	tickets := 1
	if mode == ticket.ModeSingle {
		tickets = len(req.Tasks)
	}

	opLogger.Start(
		zap.String("mode", string(mode)),
		zap.Int("tasks", len(req.Tasks)),
		zap.Int("bytes", len(payload)),
	)
	return s.deliver(ctx, opLogger, operationID, mode, req.Host, req.Port, payload, tickets)
}

// PrintWifiQR prints a WiFi credential ticket
func (s *PrintService) PrintWifiQR(ctx context.Context, req *model.WifiRequest) (*PrintResult, error) {
	operationID := uuid.New().String()
	opLogger := utils.NewOperationLogger(s.logger.Logger, "print_wifi", operationID)

	if req == nil {
		err := model.NewValidationError("request", "is required")
		opLogger.Rejected(err)
		return nil, err
	}
	if strings.TrimSpace(req.Host) == "" {
		err := hostValidationError()
		opLogger.Rejected(err)
		return nil, err
	}

	security := req.Type
	switch security {
	case "":
		security = model.WifiWPA
	case model.WifiWPA, model.WifiWEP, model.WifiNoPass:
	default:
		err := model.NewValidationError("type", "must be one of WPA, WEP, nopass")
		opLogger.Rejected(err)
		return nil, err
	}

	payload, err := ticket.BuildWifi(ticket.WifiParams{
		SSID:     req.SSID,
		Password: req.Password,
		Type:     security,
		Hidden:   req.Hidden,
	})
	if err != nil {
		opLogger.Rejected(err)
		return nil, err
	}

	opLogger.Start(zap.Int("bytes", len(payload)), zap.Bool("hidden", req.Hidden))
	return s.deliver(ctx, opLogger, operationID, ticket.ModeWifi, req.Host, req.Port, payload, 1)
}

// PingPrinter probes the printer; it never returns an error
func (s *PrintService) PingPrinter(ctx context.Context, host string, port int) model.PrinterStatus {
	return s.transport.Probe(ctx, host, port)
}

func (s *PrintService) deliver(
	ctx context.Context,
	opLogger *utils.OperationLogger,
	operationID string,
	mode ticket.Mode,
	host string,
	port int,
	payload []byte,
	tickets int,
) (*PrintResult, error) {
	if port <= 0 {
		port = model.DefaultPrinterPort
	}

	startTime := time.Now()
	err := s.transport.Send(ctx, host, port, payload)
	duration := time.Since(startTime)

	eventData := map[string]interface{}{
		"operation_id": operationID,
		"mode":         string(mode),
		"host":         host,
		"port":         port,
	}

	if err != nil {
		if errors.Is(err, protocol.ErrMissingHost) {
			err = hostValidationError()
		}
		opLogger.Error(err, zap.String("mode", string(mode)))
		eventData["error"] = err.Error()
		eventData["timeout"] = errors.Is(err, protocol.ErrTimeout)
		s.publish(EventPrintFailed, eventData)
		return nil, err
	}

	opLogger.Success(zap.String("mode", string(mode)), zap.Int("tickets", tickets))
	eventData["bytes"] = len(payload)
	eventData["tickets"] = tickets
	s.publish(EventPrintCompleted, eventData)

	return &PrintResult{
		OperationID: operationID,
		Mode:        mode,
		Host:        host,
		Port:        port,
		Bytes:       len(payload),
		Tickets:     tickets,
		Duration:    duration.String(),
	}, nil
}

func (s *PrintService) publish(eventType string, data map[string]interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, data)
	}
}

func hostValidationError() error {
	return model.NewValidationError("host", "is required")
}
