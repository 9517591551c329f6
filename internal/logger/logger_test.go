package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesKeyValuePairs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewZapLoggerFrom(zap.New(core))

	l.Info("request", "service", "HandleGetBooks", "status", 200)
	l.Warn("bad input", "service", "HandleCreateBook")
	l.Error("boom", "service", "HandleDeleteBook")

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "request", entries[0].Message)
	assert.Equal(t, "HandleGetBooks", entries[0].ContextMap()["service"])
	assert.EqualValues(t, 200, entries[0].ContextMap()["status"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestNewZapLoggerRejectsUnknownEnv(t *testing.T) {
	_, err := NewZapLogger("staging", "info")

	assert.Error(t, err)
}

func TestNewZapLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewZapLogger("dev", "loud")

	assert.Error(t, err)
}
