package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T, path string) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, Configure(v, path))
	return v
}

// TestLoad_FileAndDefaults verifies file values override defaults and the
// layout path follows data_dir.
func TestLoad_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	src := "ui_password: secret\ndata_dir: " + dir + "\nsurface:\n  width: 640\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(src), 0o600))

	cfg, err := Load(newViper(t, filepath.Join(dir, "config.yaml")))
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.UIPassword)
	assert.Equal(t, 640.0, cfg.Surface.Width)
	assert.Equal(t, 0.0, cfg.Surface.Height)
	assert.Equal(t, filepath.Join(dir, "layout.yaml"), cfg.LayoutPath)
	assert.Equal(t, "0.0.0.0:8787", cfg.ListenAddr)
	assert.Equal(t, 8.0, cfg.HandleSize)
	assert.Equal(t, "info", cfg.Logger.Level)
}

// TestLoad_EnvOverrides verifies prefixed environment variables win.
func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	src := "ui_password: secret\ndata_dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(src), 0o600))
	t.Setenv("FLEXBOX_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("FLEXBOX_LOGGER_LEVEL", "debug")

	cfg, err := Load(newViper(t, filepath.Join(dir, "config.yaml")))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

// TestLoad_RequiresPassword verifies the password check.
func TestLoad_RequiresPassword(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UI_PASSWORD", "")
	t.Setenv("FLEXBOX_UI_PASSWORD", "")
	t.Setenv("FLEXBOX_DATA_DIR", dir)

	_, err := Load(newViper(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UI_PASSWORD is required")
}

// TestLoad_RejectsBadMoveRate verifies range checks.
func TestLoad_RejectsBadMoveRate(t *testing.T) {
	dir := t.TempDir()
	src := "ui_password: secret\ndata_dir: " + dir + "\nmove_rate: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(src), 0o600))

	_, err := Load(newViper(t, filepath.Join(dir, "config.yaml")))
	assert.Error(t, err)
}

// TestLoad_EnvFileDoesNotOverride verifies <data_dir>/.env fills unset
// variables only.
func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	env := "export UI_PASSWORD=\"from-file\"\n# comment\nFLEXBOX_TEST_EXTRA=extra\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("UI_PASSWORD", "from-env")
	t.Setenv("FLEXBOX_TEST_EXTRA", "")
	require.NoError(t, os.Unsetenv("FLEXBOX_TEST_EXTRA"))

	require.NoError(t, loadEnvFile(filepath.Join(dir, ".env")))
	assert.Equal(t, "from-env", os.Getenv("UI_PASSWORD"))
	assert.Equal(t, "extra", os.Getenv("FLEXBOX_TEST_EXTRA"))

	require.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))
}
