package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polyroots/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.LoggerConfig{ServiceName: "polyroots", Level: "debug", Format: "json", Output: &buf})
	l.Debug("guess", slog.String("candidate", "3/2"))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "polyroots", rec["service"])
	assert.Equal(t, "3/2", rec["candidate"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.LoggerConfig{Level: "warn", Output: &buf})
	l.Info("dropped")
	assert.Empty(t, buf.String())
	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}
