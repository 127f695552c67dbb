// internal/service/printer_monitor.go
package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ticket-service/internal/model"
	"ticket-service/internal/protocol"
	"ticket-service/internal/utils"
)

// PrinterMonitor periodically probes the configured printer and publishes
// a printer.status event whenever reachability flips.
type PrinterMonitor struct {
	transport protocol.PrinterTransport
	events    EventPublisher
	host      string
	port      int
	interval  time.Duration
	logger    *utils.ServiceLogger

	mutex sync.RWMutex
	last  *model.PrinterStatus
}

// NewPrinterMonitor creates a monitor for host:port
func NewPrinterMonitor(
	transport protocol.PrinterTransport,
	events EventPublisher,
	host string,
	port int,
	interval time.Duration,
	logger *zap.Logger,
) *PrinterMonitor {
	return &PrinterMonitor{
		transport: transport,
		events:    events,
		host:      host,
		port:      port,
		interval:  interval,
		logger:    utils.NewServiceLogger(logger, "printer-monitor"),
	}
}

// Run probes until ctx is cancelled. A non-positive interval disables it.
func (m *PrinterMonitor) Run(ctx context.Context) {
	if m.interval <= 0 {
		return
	}

	m.logger.Info("Printer health monitoring started",
		zap.String("host", m.host),
		zap.Int("port", m.port),
		zap.Duration("interval", m.interval),
	)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Printer health monitoring stopped")
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs one probe and reports whether reachability changed
func (m *PrinterMonitor) Check(ctx context.Context) bool {
	status := m.transport.Probe(ctx, m.host, m.port)

	m.mutex.Lock()
	changed := m.last == nil || m.last.Reachable != status.Reachable
	m.last = &status
	m.mutex.Unlock()

	if !changed {
		return false
	}

	if status.Reachable {
		m.logger.Info("Printer reachable", zap.String("host", status.Host), zap.Int("port", status.Port))
	} else {
		m.logger.Warn("Printer unreachable",
			zap.String("host", status.Host),
			zap.Int("port", status.Port),
			zap.String("error", status.Error),
		)
	}

	if m.events != nil {
		m.events.Publish(EventPrinterStatus, map[string]interface{}{
			"host":       status.Host,
			"port":       status.Port,
			"reachable":  status.Reachable,
			"error":      status.Error,
			"checked_at": status.CheckedAt,
		})
	}
	return true
}

// LastStatus returns the most recent probe result, if any
func (m *PrinterMonitor) LastStatus() (model.PrinterStatus, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.last == nil {
		return model.PrinterStatus{}, false
	}
	return *m.last, true
}
