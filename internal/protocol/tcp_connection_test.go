package protocol

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSender(send, probe time.Duration) *TCPSender {
	return NewTCPSender(&TCPConfig{SendTimeout: send, ProbeTimeout: probe}, zap.NewNop())
}

// listen starts a loopback printer that reads one connection to EOF
func listen(t *testing.T) (string, int, <-chan []byte) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, received
}

// closedPort returns a loopback port with nothing listening on it
func closedPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestSend_DeliversExactBytes(t *testing.T) {
	host, port, received := listen(t)
	payload := []byte{0x1B, 0x40, 'M', 0xFC, 'l', 'l', 0x0A, 0x1D, 0x56, 0x42, 0x00}

	err := newTestSender(2*time.Second, time.Second).Send(context.Background(), host, port, payload)
	require.NoError(t, err)

	select {
	case got := <-received:
		assert.Equal(t, payload, got)
	case <-time.After(2 * time.Second):
		t.Fatal("printer received nothing")
	}
}

func TestSend_MissingHost(t *testing.T) {
	sender := newTestSender(time.Second, time.Second)
	sender.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		t.Fatal("dial must not be called without a host")
		return nil, nil
	}

	err := sender.Send(context.Background(), "  ", 9100, []byte("x"))
	assert.ErrorIs(t, err, ErrMissingHost)
}

func TestSend_DefaultPort(t *testing.T) {
	sender := newTestSender(time.Second, time.Second)
	var dialed string
	sender.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		dialed = address
		return nil, syscall.ECONNREFUSED
	}

	_ = sender.Send(context.Background(), "printer.local", 0, []byte("x"))
	assert.Equal(t, "printer.local:9100", dialed)
}

func TestSend_ConnectionRefused(t *testing.T) {
	port := closedPort(t)

	err := newTestSender(2*time.Second, time.Second).Send(context.Background(), "127.0.0.1", port, []byte("x"))
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "ECONNREFUSED", transportErr.Code)
	assert.Equal(t, "connect", transportErr.Op)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestSend_WriteTimeout(t *testing.T) {
	sender := newTestSender(100*time.Millisecond, time.Second)
	client, server := net.Pipe()
	t.Cleanup(func() { server.Close() })
	sender.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		return client, nil
	}

	start := time.Now()
	err := sender.Send(context.Background(), "printer", 9100, []byte("nobody reads this"))

	assert.ErrorIs(t, err, ErrTimeout)
	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "write", timeoutErr.Op)
	assert.Equal(t, 100*time.Millisecond, timeoutErr.Timeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSend_ConnectTimeout(t *testing.T) {
	sender := newTestSender(50*time.Millisecond, time.Second)
	sender.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	err := sender.Send(context.Background(), "printer", 9100, []byte("x"))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "connect timed out")
}

func TestSend_CallerCancellationIsNotATimeout(t *testing.T) {
	sender := newTestSender(5*time.Second, time.Second)
	client, server := net.Pipe()
	t.Cleanup(func() { server.Close() })
	sender.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		return client, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	err := sender.Send(ctx, "printer", 9100, []byte("blocked"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.Canceled)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "ECANCELED", transportErr.Code)
}

func TestProbe_Reachable(t *testing.T) {
	host, port, _ := listen(t)

	status := newTestSender(time.Second, time.Second).Probe(context.Background(), host, port)

	assert.True(t, status.Reachable)
	assert.Empty(t, status.Error)
	assert.Equal(t, port, status.Port)
	assert.False(t, status.CheckedAt.IsZero())
}

func TestProbe_Refused(t *testing.T) {
	port := closedPort(t)

	status := newTestSender(time.Second, time.Second).Probe(context.Background(), "127.0.0.1", port)

	assert.False(t, status.Reachable)
	assert.Contains(t, status.Error, "ECONNREFUSED")
}

func TestProbe_UnreachableWithinTimeout(t *testing.T) {
	sender := newTestSender(time.Second, 150*time.Millisecond)
	sender.dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	start := time.Now()
	status := sender.Probe(context.Background(), "10.255.255.1", 9100)

	assert.False(t, status.Reachable)
	assert.Contains(t, status.Error, "timed out")
	assert.Less(t, time.Since(start), time.Second)
}

func TestProbe_MissingHost(t *testing.T) {
	status := newTestSender(time.Second, time.Second).Probe(context.Background(), "", 0)

	assert.False(t, status.Reachable)
	assert.Equal(t, 9100, status.Port)
	assert.Equal(t, ErrMissingHost.Error(), status.Error)
}

func TestTCPConfig_Defaults(t *testing.T) {
	cfg := (*TCPConfig)(nil).withDefaults()
	assert.Equal(t, DefaultSendTimeout, cfg.SendTimeout)
	assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)

	cfg = (&TCPConfig{SendTimeout: time.Second}).withDefaults()
	assert.Equal(t, time.Second, cfg.SendTimeout)
	assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)
}

func TestAddress(t *testing.T) {
	assert.Equal(t, "10.0.0.5:9100", address(" 10.0.0.5 ", 9100))
	assert.Equal(t, "[fe80::1]:"+strconv.Itoa(9101), address("fe80::1", 9101))
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"dns", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}, "ENOTFOUND"},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, "ECONNREFUSED"},
		{"reset", syscall.ECONNRESET, "ECONNRESET"},
		{"cancelled", context.Canceled, "ECANCELED"},
		{"unknown errno", syscall.Errno(250), "ERRNO_250"},
		{"other", errors.New("boom"), "EIO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify("write", context.DeadlineExceeded, time.Second), ErrTimeout)
	assert.NotErrorIs(t, classify("write", context.Canceled, time.Second), ErrTimeout)

	err := classify("connect", syscall.EHOSTUNREACH, time.Second)
	assert.EqualError(t, err, "printer connect failed (EHOSTUNREACH): "+syscall.EHOSTUNREACH.Error())
	assert.ErrorIs(t, err, syscall.EHOSTUNREACH)
}
