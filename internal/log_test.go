package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLoggerRespectsLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := &Logger{level: LogLevelWarn, sugar: zap.New(core).Sugar()}

	logger.Error("failed %d", 1)
	logger.Warn("careful")
	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Trace("hidden")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "failed 1", entries[0].Message)
		assert.Equal(t, "careful", entries[1].Message)
	}
}

func TestLoggerTraceAddsField(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := &Logger{level: LogLevelTrace, sugar: zap.New(core).Sugar()}

	logger.With("component", "detector").Trace("scan %s", "line")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, true, fields["trace"])
		assert.Equal(t, "detector", fields["component"])
		assert.Equal(t, "scan line", entries[0].Message)
	}
}
