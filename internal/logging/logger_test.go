package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromVerbosity(t *testing.T) {
	tests := []struct {
		count int
		want  LogLevel
	}{
		{0, LevelInfo},
		{1, LevelDebug},
		{2, LevelTrace},
		{5, LevelTrace},
		{-1, LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FromVerbosity(tt.count), "verbosity %d", tt.count)
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "text", Output: &buf})

	logger.Debug(context.Background(), "should not appear")
	assert.Empty(t, buf.String())

	logger.Info(context.Background(), "should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

	logger.WithComponent("config").
		With("path", "/tmp/site").
		Info(context.Background(), "site generated", "topics", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "site generated", entry["msg"])
	assert.Equal(t, "config", entry["component"])
	assert.Equal(t, "/tmp/site", entry["path"])
	assert.Equal(t, float64(3), entry["topics"])
}

func TestLoggerErrorAttached(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Error(context.Background(), errors.New("disk full"), "write failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "disk full", entry["error"])
}

func TestDiscardLoggerSilent(t *testing.T) {
	logger := NewDiscard()
	// Must not panic with a nil context.
	logger.Info(nil, "dropped") //nolint:staticcheck
	logger.Error(nil, errors.New("x"), "dropped")
}
