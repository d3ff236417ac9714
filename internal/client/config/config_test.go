package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	b, err := json.Marshal(data)
	require.NoError(t, err)
	return writeFile(t, "cfg.json", string(b))
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000", c.BaseURL)
	assert.False(t, c.SimulatedAuth)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "console", c.LogFormat)
	assert.False(t, c.S3.Enabled())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	want := defaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	envFile := writeFile(t, ".env", "WEALTHWISE_BASE_URL=http://dotenv:1\nWEALTHWISE_LOG_LEVEL=debug\nWEALTHWISE_LOG_FORMAT=text\nWEALTHWISE_S3_BUCKET=from-dotenv\n")
	t.Setenv(EnvS3Bucket, "from-env")
	t.Setenv(EnvTimeout, "7s")

	cfgFile := writeJSON(t, map[string]any{
		"base_url":              "http://json:2",
		"online_check_interval": "10s",
		"log_format":            "json",
		"s3":                    map[string]any{"prefix": "backups"},
	})

	cfg, err := Load([]string{"-c", cfgFile, "-a", "http://flag:3", "-m", "-d", "/tmp/ww.db"}, envFile)
	require.NoError(t, err)

	want := defaults()
	want.BaseURL = "http://flag:3"
	want.SimulatedAuth = true
	want.Timeout = 7 * time.Second
	want.DataFile = "/tmp/ww.db"
	want.OnlineCheckInterval = 10 * time.Second
	want.LogLevel = "debug"
	want.LogFormat = "json"
	want.S3 = export.S3Settings{Region: "us-east-1", Bucket: "from-env", Prefix: "backups"}

	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "bad timeout flag", args: []string{"-t", "abc"}},
		{name: "zero timeout", args: []string{"-t", "0"}},
		{name: "missing config file", args: []string{"-config", "/does/not/exist.json"}},
		{name: "bad env duration", env: map[string]string{EnvCheckInterval: "soon"}},
		{name: "bad env bool", env: map[string]string{EnvSimulatedAuth: "perhaps"}},
		{name: "unknown log format", env: map[string]string{EnvLogFormat: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args, "")
			require.Error(t, err)
		})
	}
}

func TestParseJSON(t *testing.T) {
	t.Run("absent fields keep values", func(t *testing.T) {
		path := writeJSON(t, map[string]any{"simulated_auth": true, "timeout": 2000000000})
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, path))

		want := defaults()
		want.SimulatedAuth = true
		want.Timeout = 2 * time.Second
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{ this is not valid json`)
		cfg := defaults()
		require.Error(t, parseJSON(&cfg, path))
	})

	t.Run("empty path", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(&cfg, ""))
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})
}

func TestParseFlags_IgnoresForeignArgs(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseFlags(&cfg, []string{"-config", "x.json", "-i", "30", "-verbose"}))

	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}
