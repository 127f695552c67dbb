// internal/protocol/protocol.go
package protocol

import (
	"context"

	"ticket-service/internal/model"
)

// PrinterTransport delivers finished ticket payloads to a printer
type PrinterTransport interface {
	// Send opens one connection, writes the whole payload and closes it.
	Send(ctx context.Context, host string, port int, payload []byte) error

	// Probe checks whether the printer accepts connections. It never fails;
	// problems are reported in the returned status.
	Probe(ctx context.Context, host string, port int) model.PrinterStatus
}
