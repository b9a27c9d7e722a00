package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"goquote/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel(" WARNING "))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goquote.log")

	log, err := New(config.LoggingConfig{Level: "warn", Format: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("slot_decode_failed")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slot_decode_failed")
	assert.Contains(t, string(data), `"service":"goquote"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_TextFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.log")

	log, err := New(config.LoggingConfig{Level: "debug", Format: "text", OutputPath: path})
	require.NoError(t, err)
	log.Debug("bus_started")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bus_started")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
