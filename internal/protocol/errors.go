// internal/protocol/errors.go
package protocol

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"
)

var (
	// ErrMissingHost is returned before any I/O when no printer host is given
	ErrMissingHost = errors.New("printer host is required")

	// ErrTimeout matches every TimeoutError via errors.Is
	ErrTimeout = errors.New("printer timeout")
)

// TransportError is a socket failure classified by its underlying error code
type TransportError struct {
	Op   string // connect, write, flush
	Code string // ECONNREFUSED, ECONNRESET, ...
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("printer %s failed (%s): %v", e.Op, e.Code, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that a connection attempt or write outlived its budget
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("printer %s timed out after %s", e.Op, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

var errnoCodes = map[syscall.Errno]string{
	syscall.ECONNREFUSED:  "ECONNREFUSED",
	syscall.ECONNRESET:    "ECONNRESET",
	syscall.ECONNABORTED:  "ECONNABORTED",
	syscall.EHOSTUNREACH:  "EHOSTUNREACH",
	syscall.ENETUNREACH:   "ENETUNREACH",
	syscall.EPIPE:         "EPIPE",
	syscall.ETIMEDOUT:     "ETIMEDOUT",
	syscall.EADDRNOTAVAIL: "EADDRNOTAVAIL",
}

// classify turns a dial or write error into a TimeoutError or TransportError
func classify(op string, err error, timeout time.Duration) error {
	if isTimeout(err) {
		return &TimeoutError{Op: op, Timeout: timeout}
	}
	return &TransportError{Op: op, Code: errorCode(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// errorCode extracts a stable code name from err
func errorCode(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "ENOTFOUND"
	}
	if errors.Is(err, context.Canceled) {
		return "ECANCELED"
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if code, ok := errnoCodes[errno]; ok {
			return code
		}
		return fmt.Sprintf("ERRNO_%d", int(errno))
	}
	return "EIO"
}
