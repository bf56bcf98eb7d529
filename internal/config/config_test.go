package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polyroots/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d config.Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.Engine.MaxDegree)
	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Len(t, cfg.EngineOptions(), 1)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "polyroots.toml", `
[general]
log_level = "debug"

[engine]
max_degree = 6

[server]
port = 9090
read_timeout = "3s"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "text", cfg.General.LogFormat)
	assert.Equal(t, 6, cfg.Engine.MaxDegree)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout.Duration)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "polyroots.yaml", `
general:
  log_format: json
server:
  host: 0.0.0.0
  idle_timeout: 2m
tui:
  show_latex: true
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.General.LogFormat)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeout.Duration)
	assert.True(t, cfg.TUI.ShowLaTeX)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.toml", "[engine\nmax_degree = 3"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.yml", "server:\n  read_timeout: soon\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "range.toml", "[engine]\nmax_degree = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_degree")
}

func TestLoadFromEnv(t *testing.T) {
	path := writeFile(t, "env.toml", "[engine]\nmax_degree = 4\n")
	t.Setenv(config.EnvVar, path)
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Engine.MaxDegree)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.General.LogLevel = "loud"
	cfg.Server.Port = 70000
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "server.port")
}
