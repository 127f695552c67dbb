package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"ticket-service/internal/config"
)

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ticket-service.log")
	logger, err := NewLogger(&config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: path,
	})
	require.NoError(t, err)

	logger.Info("hello printer")
	_ = CloseLogger(logger)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello printer"`)
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := NewLogger(&config.LoggingConfig{Level: "debug", Format: "console", Output: path})
	require.NoError(t, err)

	logger.Debug("probe details")
	_ = CloseLogger(logger)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probe details")
	assert.NotContains(t, string(data), `"message"`)
}

func TestLogPanic_LogsRecoveredValue(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic))

	assert.Panics(t, func() {
		defer LogPanic(logger)
		panic("monitor exploded")
	})

	entries := logs.FilterMessage("Application panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.FatalLevel, entries[0].Level)
	assert.Equal(t, "monitor exploded", entries[0].ContextMap()["panic"])
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(&config.LoggingConfig{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestPrinterLogger_LogSend(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pl := NewPrinterLogger(zap.New(core), "10.0.0.5", 9100)

	pl.LogSend(120, 15*time.Millisecond, nil)
	pl.LogSend(120, 4*time.Second, errors.New("printer write timed out after 4s"))

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "10.0.0.5", entries[0].ContextMap()["host"])
	assert.EqualValues(t, 120, entries[0].ContextMap()["bytes"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, false, entries[1].ContextMap()["success"])
}

func TestPrinterLogger_LogProbe(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	pl := NewPrinterLogger(zap.New(core), "printer", 9100)

	pl.LogProbe(true, time.Millisecond, nil)
	pl.LogProbe(false, time.Second, errors.New("refused"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, "Printer probe failed", entries[1].Message)
}

func TestOperationLogger_Rejected(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ol := NewOperationLogger(zap.New(core), "print_tasks", "op-1")

	ol.Rejected(errors.New("validation failed: tasks must not be empty"))

	entries := logs.FilterMessage("Operation rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "op-1", entries[0].ContextMap()["operation_id"])
}
