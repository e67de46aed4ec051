package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gantt2svg/internal/config"
)

type syncBuffer struct{ bytes.Buffer }

func (b *syncBuffer) Sync() error { return nil }

func TestGetLogger_BeforeInitializeIsNop(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestInitialize_OnlyFirstCallWins(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second syncBuffer
	Initialize(config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "gantt2svg"}, &first)
	Initialize(config.LoggerConfig{Level: "debug", Format: "json"}, &second)

	GetLogger().Info("rendered", zap.Int("rows", 3))

	assert.Contains(t, first.String(), `"msg":"rendered"`)
	assert.Contains(t, first.String(), `"rows":3`)
	assert.Contains(t, first.String(), `"logger":"gantt2svg"`)
	assert.Empty(t, second.String())
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf syncBuffer
	logger := New(config.LoggerConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf syncBuffer
	logger := New(config.LoggerConfig{Level: "loud", Format: "console"}, &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantt.log")
	var console syncBuffer
	logger := New(config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}, &console)

	logger.Info("to file", zap.String("csv", "plan.csv"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"csv":"plan.csv"`)
	assert.Contains(t, console.String(), "to file")
}
