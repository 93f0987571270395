package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/frudas24/flexbox/internal/config"
)

// TestInitialize_JSON verifies the JSON encoder output.
func TestInitialize_JSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer

	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "flexbox"}, zapcore.AddSync(&buf))
	GetLogger().Warn("box moved", zap.String("box", "a"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "flexbox", entry["logger"])
	assert.Equal(t, "box moved", entry["msg"])
	assert.Equal(t, "a", entry["box"])
}

// TestInitialize_Once verifies later calls keep the first logger.
func TestInitialize_Once(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer

	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "first"}, zapcore.AddSync(&buf))
	first := GetLogger()
	Initialize(config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "second"}, zapcore.AddSync(&buf))
	assert.Same(t, first, GetLogger())

	GetLogger().Debug("hidden")
	assert.Empty(t, buf.String())
}

// TestInitialize_File verifies the rotated file receives entries.
func TestInitialize_File(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	path := filepath.Join(t.TempDir(), "flexbox.log")

	Initialize(config.LoggerConfig{Level: "debug", Format: "console", LogFile: path, MaxSize: 1}, zapcore.AddSync(&bytes.Buffer{}))
	GetLogger().Error("written to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

// TestGetLogger_Fallback verifies a logger is returned before initialization.
func TestGetLogger_Fallback(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
}
