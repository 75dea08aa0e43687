package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8062", cfg.ListenAddress())
	assert.Equal(t, "0.0.0.0:7070", cfg.MetricsAddress())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Empty(t, cfg.Source)
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{"YAML", "base62.yaml", "server:\n  host: 127.0.0.1\n  port: 9000\nmetrics:\n  enabled: false\n"},
		{"YML", "base62.yml", "server:\n  host: 127.0.0.1\n  port: 9000\nmetrics:\n  enabled: false\n"},
		{"TOML", "base62.toml", "[server]\nhost = \"127.0.0.1\"\nport = 9000\n\n[metrics]\nenabled = false\n"},
		{"JSON", "base62.json", `{"server":{"host":"127.0.0.1","port":9000},"metrics":{"enabled":false}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.file, tc.content)
			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress())
			assert.False(t, cfg.Metrics.Enabled)
			assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes, "unset keys keep defaults")
			assert.Equal(t, path, cfg.Source)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.toml", "[server\nport = ")
	_, err = Load(bad)
	assert.Error(t, err)

	invalidPort := writeFile(t, dir, "port.yaml", "server:\n  port: 70000\n")
	_, err = Load(invalidPort)
	assert.ErrorContains(t, err, "invalid server port")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BASE62_PORT", "9100")
	t.Setenv("BASE62_MAX_BODY_BYTES", "4096")
	t.Setenv("BASE62_METRICS_ENABLED", "no")
	t.Setenv("BASE62_HOST", "localhost")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:9100", cfg.ListenAddress())
	assert.Equal(t, int64(4096), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestEnvOverrideIgnoresBadNumbers(t *testing.T) {
	t.Setenv("BASE62_PORT", "not-a-port")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8062, cfg.Server.Port)
}

func TestEnvOverrideIgnoresBadBools(t *testing.T) {
	t.Setenv("BASE62_METRICS_ENABLED", "ture")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)

	t.Setenv("BASE62_METRICS_ENABLED", "off")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Metrics.Enabled)

	t.Setenv("BASE62_METRICS_ENABLED", "TRUE")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestEnvFilesNearestWins(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "cmd")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	writeFile(t, root, ".env.base62test", "BASE62_METRICS_PATH=/root-metrics\nBASE62_METRICS_HOST=10.0.0.1\n")
	writeFile(t, filepath.Join(root, "app"), ".env.base62test", "BASE62_METRICS_PATH=/app-metrics\n")
	t.Cleanup(func() {
		os.Unsetenv("BASE62_METRICS_PATH")
		os.Unsetenv("BASE62_METRICS_HOST")
	})

	t.Chdir(nested)

	cfg := Default()
	cfg.EnvFileName = ".env.base62test"
	require.NoError(t, loadEnvFiles(cfg.EnvFileName))
	applyEnvOverrides(cfg)

	assert.Equal(t, "/app-metrics", cfg.Metrics.Path)
	assert.Equal(t, "10.0.0.1:7070", cfg.MetricsAddress())
}

func TestValidateMetrics(t *testing.T) {
	cfg := Default()
	cfg.Metrics.Path = "metrics"
	assert.Error(t, cfg.Validate())

	cfg.Metrics.Enabled = false
	assert.NoError(t, cfg.Validate())
}
