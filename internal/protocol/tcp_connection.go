// internal/protocol/tcp_connection.go
package protocol

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"ticket-service/internal/model"
	"ticket-service/internal/utils"
)

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// TCPSender implements PrinterTransport over raw TCP. Every call dials a
// fresh connection; nothing is pooled because most receipt printers serve
// a single client at a time.
type TCPSender struct {
	config *TCPConfig
	logger *zap.Logger
	dial   dialFunc
}

// NewTCPSender creates a new TCP printer transport
func NewTCPSender(config *TCPConfig, logger *zap.Logger) *TCPSender {
	cfg := config.withDefaults()
	dialer := &net.Dialer{KeepAlive: cfg.KeepAlive}

	return &TCPSender{
		config: cfg,
		logger: logger.With(zap.String("protocol", "tcp")),
		dial:   dialer.DialContext,
	}
}

// Send writes payload to host:port and closes the connection once the
// write side has been flushed.
func (s *TCPSender) Send(ctx context.Context, host string, port int, payload []byte) error {
	if strings.TrimSpace(host) == "" {
		return ErrMissingHost
	}
	port = resolvePort(port)
	timeout := s.config.SendTimeout
	printerLogger := utils.NewPrinterLogger(s.logger, host, port)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	err := s.send(ctx, address(host, port), payload, timeout)
	printerLogger.LogSend(len(payload), time.Since(startTime), err)
	return err
}

func (s *TCPSender) send(ctx context.Context, address string, payload []byte, timeout time.Duration) error {
	conn, err := s.dial(ctx, "tcp", address)
	if err != nil {
		return classify("connect", err, timeout)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	// Unblock a pending write as soon as the caller gives up
	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	n, err := conn.Write(payload)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		return classify("write", err, timeout)
	}
	if n != len(payload) {
		return &TransportError{
			Op:   "write",
			Code: "EIO",
			Err:  fmt.Errorf("incomplete write: wrote %d of %d bytes", n, len(payload)),
		}
	}

	if tcpConn, ok := conn.(interface{ CloseWrite() error }); ok {
		if err := tcpConn.CloseWrite(); err != nil {
			return classify("flush", err, timeout)
		}
	}
	return nil
}

// Probe dials host:port without writing anything
func (s *TCPSender) Probe(ctx context.Context, host string, port int) model.PrinterStatus {
	port = resolvePort(port)
	status := model.PrinterStatus{
		Host:      host,
		Port:      port,
		CheckedAt: time.Now(),
	}

	if strings.TrimSpace(host) == "" {
		status.Error = ErrMissingHost.Error()
		return status
	}

	timeout := s.config.ProbeTimeout
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	conn, err := s.dial(ctx, "tcp", address(host, port))
	if err != nil {
		err = classify("connect", err, timeout)
		status.Error = err.Error()
	} else {
		conn.Close()
		status.Reachable = true
	}

	utils.NewPrinterLogger(s.logger, host, port).LogProbe(status.Reachable, time.Since(startTime), err)
	return status
}

func resolvePort(port int) int {
	if port <= 0 {
		return model.DefaultPrinterPort
	}
	return port
}

func address(host string, port int) string {
	return net.JoinHostPort(strings.TrimSpace(host), strconv.Itoa(port))
}
