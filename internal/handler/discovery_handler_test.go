package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticket-service/internal/discovery"
	"ticket-service/internal/model"
)

type fakeScanner struct {
	ranges []string
	port   int
	err    error
}

func (f *fakeScanner) Scan(ctx context.Context, ranges []string, port int) (*discovery.ScanResult, error) {
	f.ranges, f.port = ranges, port
	if f.err != nil {
		return nil, f.err
	}
	return &discovery.ScanResult{
		Ranges:   ranges,
		Port:     9100,
		Scanned:  254,
		Printers: []discovery.DiscoveredPrinter{{Host: "192.168.1.7", Port: 9100}},
	}, nil
}

func newDiscoveryRouter(scanner PrinterScanner) *gin.Engine {
	router := gin.New()
	NewDiscoveryHandler(scanner, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestDiscoverPrinters_PassesRangesAndPort(t *testing.T) {
	scanner := &fakeScanner{}

	rec, resp := doJSON(newDiscoveryRouter(scanner), http.MethodGet,
		"/api/v1/printer/discover?cidr=192.168.1.0/24&cidr=10.0.0.0/30&port=9101", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"192.168.1.0/24", "10.0.0.0/30"}, scanner.ranges)
	assert.Equal(t, 9101, scanner.port)

	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 254, data["scanned"])
	assert.Len(t, data["printers"], 1)
}

func TestDiscoverPrinters_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{
			name:   "bad port",
			path:   "/api/v1/printer/discover?port=abc",
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "invalid range",
			path:   "/api/v1/printer/discover?cidr=nope",
			err:    model.NewValidationError("cidr", "is not a valid network range"),
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "cancelled",
			path:   "/api/v1/printer/discover?cidr=10.0.0.0/24",
			err:    context.Canceled,
			status: http.StatusServiceUnavailable,
			code:   "SERVICE_UNAVAILABLE",
		},
		{
			name:   "unexpected",
			path:   "/api/v1/printer/discover?cidr=10.0.0.0/24",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doJSON(newDiscoveryRouter(&fakeScanner{err: tt.err}), http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
