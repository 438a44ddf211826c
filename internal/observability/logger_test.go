package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: InfoLevel, Output: &buf, Service: "test"})

	logger.Info("checks complete", map[string]interface{}{"rows": 42})

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "checks complete", entry.Message)
	assert.Equal(t, "test", entry.Service)
	assert.EqualValues(t, 42, entry.Fields["rows"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: WarnLevel, Output: &buf})

	logger.Debug("ignored")
	logger.Info("ignored too")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestWithFieldsInheritance(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: InfoLevel, Output: &buf})
	child := base.WithField("source", "csv").WithFields(map[string]interface{}{"table": "customers"})

	child.Info("loaded")

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "csv", entry.Fields["source"])
	assert.Equal(t, "customers", entry.Fields["table"])
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: ErrorLevel, Output: &buf})

	logger.Error("load failed", assert.AnError)

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, assert.AnError.Error(), entry.Fields["error"])
}
