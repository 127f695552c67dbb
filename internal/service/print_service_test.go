package service

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticket-service/internal/escpos"
	"ticket-service/internal/model"
	"ticket-service/internal/protocol"
	"ticket-service/internal/ticket"
)

type sentPayload struct {
	host    string
	port    int
	payload []byte
}

type fakeTransport struct {
	mutex   sync.Mutex
	sent    []sentPayload
	sendErr error
	status  model.PrinterStatus
	probes  int
}

func (f *fakeTransport) Send(ctx context.Context, host string, port int, payload []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.sent = append(f.sent, sentPayload{host: host, port: port, payload: payload})
	return f.sendErr
}

func (f *fakeTransport) Probe(ctx context.Context, host string, port int) model.PrinterStatus {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.probes++
	status := f.status
	status.Host, status.Port = host, port
	return status
}

func (f *fakeTransport) setReachable(reachable bool) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.status.Reachable = reachable
	if !reachable {
		f.status.Error = "printer connect failed (ECONNREFUSED)"
	} else {
		f.status.Error = ""
	}
}

type publishedEvent struct {
	eventType string
	data      map[string]interface{}
}

type recordingPublisher struct {
	mutex  sync.Mutex
	events []publishedEvent
}

func (r *recordingPublisher) Publish(eventType string, data map[string]interface{}) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.events = append(r.events, publishedEvent{eventType: eventType, data: data})
}

func (r *recordingPublisher) types() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.eventType)
	}
	return out
}

func newTestService() (*PrintService, *fakeTransport, *recordingPublisher) {
	transport := &fakeTransport{}
	events := &recordingPublisher{}
	s := NewPrintService(transport, events, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, time.October, 6, 8, 0, 0, 0, time.UTC) }
	return s, transport, events
}

func TestPrintTasks_SingleTask(t *testing.T) {
	s, transport, events := newTestService()

	result, err := s.PrintTasks(context.Background(), &model.PrintRequest{
		Host:  "10.0.0.5",
		Tasks: []model.Task{{ID: model.NumericID(1), Title: "🗑️ Müll raus bringen"}},
	})
	require.NoError(t, err)

	require.Len(t, transport.sent, 1)
	sent := transport.sent[0]
	assert.Equal(t, "10.0.0.5", sent.host)
	assert.Equal(t, 9100, sent.port)
	assert.True(t, bytes.Contains(sent.payload, escpos.QRCode("donotick:1", 8)))
	assert.True(t, bytes.Contains(sent.payload, []byte{0xFC}))

	assert.Equal(t, ticket.ModeSingle, result.Mode)
	assert.Equal(t, len(sent.payload), result.Bytes)
	assert.Equal(t, 1, result.Tickets)
	assert.NotEmpty(t, result.OperationID)
	assert.Equal(t, []string{EventPrintCompleted}, events.types())
}

func TestPrintTasks_InfersDailyForManyTasks(t *testing.T) {
	s, transport, _ := newTestService()

	result, err := s.PrintTasks(context.Background(), &model.PrintRequest{
		Host:  "printer",
		Port:  9101,
		Tasks: []model.Task{{Title: "a"}, {Title: "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, ticket.ModeDaily, result.Mode)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, 9101, transport.sent[0].port)
	assert.True(t, bytes.Contains(transport.sent[0].payload, []byte(" HEUTE 06.10 ")))
}

func TestPrintTasks_ExplicitSingleCountsTickets(t *testing.T) {
	s, _, _ := newTestService()

	result, err := s.PrintTasks(context.Background(), &model.PrintRequest{
		Host:  "printer",
		Mode:  "single",
		Tasks: []model.Task{{Title: "a"}, {Title: "b"}, {Title: "c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Tickets)
}

func TestPrintTasks_ValidationBeforeIO(t *testing.T) {
	tests := []struct {
		name  string
		req   *model.PrintRequest
		field string
	}{
		{"nil request", nil, "request"},
		{"missing host", &model.PrintRequest{Tasks: []model.Task{{Title: "a"}}}, "host"},
		{"blank host", &model.PrintRequest{Host: "  ", Tasks: []model.Task{{Title: "a"}}}, "host"},
		{"empty tasks", &model.PrintRequest{Host: "printer"}, "tasks"},
		{"unknown mode", &model.PrintRequest{Host: "printer", Mode: "monthly", Tasks: []model.Task{{Title: "a"}}}, "mode"},
		{"wifi mode", &model.PrintRequest{Host: "printer", Mode: "wifi", Tasks: []model.Task{{Title: "a"}}}, "mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, transport, events := newTestService()

			result, err := s.PrintTasks(context.Background(), tt.req)
			assert.Nil(t, result)

			var validationErr *model.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, transport.sent)
			assert.Empty(t, events.types())
		})
	}
}

func TestPrintTasks_TransportFailurePropagates(t *testing.T) {
	s, transport, events := newTestService()
	transport.sendErr = &protocol.TimeoutError{Op: "write", Timeout: 4 * time.Second}

	result, err := s.PrintTasks(context.Background(), &model.PrintRequest{
		Host:  "printer",
		Tasks: []model.Task{{Title: "a"}},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, protocol.ErrTimeout)
	require.Len(t, events.events, 1)
	assert.Equal(t, EventPrintFailed, events.events[0].eventType)
	assert.Equal(t, true, events.events[0].data["timeout"])
}

func TestPrintWifiQR(t *testing.T) {
	s, transport, events := newTestService()

	result, err := s.PrintWifiQR(context.Background(), &model.WifiRequest{
		Host:     "printer",
		SSID:     "Home",
		Password: "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, ticket.ModeWifi, result.Mode)
	require.Len(t, transport.sent, 1)
	uri := ticket.WifiURI(ticket.WifiParams{SSID: "Home", Password: "secret", Type: model.WifiWPA})
	assert.True(t, bytes.Contains(transport.sent[0].payload, escpos.QRCode(uri, 10)))
	assert.Equal(t, []string{EventPrintCompleted}, events.types())
}

func TestPrintWifiQR_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   *model.WifiRequest
		field string
	}{
		{"missing host", &model.WifiRequest{SSID: "Home"}, "host"},
		{"missing ssid", &model.WifiRequest{Host: "printer"}, "ssid"},
		{"bad type", &model.WifiRequest{Host: "printer", SSID: "Home", Type: "WPA3"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, transport, _ := newTestService()

			_, err := s.PrintWifiQR(context.Background(), tt.req)

			var validationErr *model.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, transport.sent)
		})
	}
}

func TestPingPrinter_NeverErrors(t *testing.T) {
	s, transport, _ := newTestService()
	transport.setReachable(false)

	status := s.PingPrinter(context.Background(), "printer", 9100)

	assert.False(t, status.Reachable)
	assert.NotEmpty(t, status.Error)
	assert.Equal(t, "printer", status.Host)
}

func TestPrinterMonitor_PublishesOnChange(t *testing.T) {
	transport := &fakeTransport{}
	events := &recordingPublisher{}
	monitor := NewPrinterMonitor(transport, events, "printer", 9100, time.Minute, zap.NewNop())

	_, ok := monitor.LastStatus()
	assert.False(t, ok)

	transport.setReachable(true)
	assert.True(t, monitor.Check(context.Background()))
	assert.False(t, monitor.Check(context.Background()))

	transport.setReachable(false)
	assert.True(t, monitor.Check(context.Background()))

	last, ok := monitor.LastStatus()
	require.True(t, ok)
	assert.False(t, last.Reachable)
	assert.Equal(t, []string{EventPrinterStatus, EventPrinterStatus}, events.types())
}

func TestPrinterMonitor_RunStopsWithContext(t *testing.T) {
	transport := &fakeTransport{}
	monitor := NewPrinterMonitor(transport, nil, "printer", 9100, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}

	transport.mutex.Lock()
	defer transport.mutex.Unlock()
	assert.GreaterOrEqual(t, transport.probes, 2)
}

func TestPrinterMonitor_DisabledInterval(t *testing.T) {
	transport := &fakeTransport{}
	monitor := NewPrinterMonitor(transport, nil, "printer", 9100, 0, zap.NewNop())

	monitor.Run(context.Background())
	assert.Zero(t, transport.probes)
}
