package log

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/showlist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), "level %q", in)
	}
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "showlist.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "count", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(data, &record), "expected exactly one JSON record")
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "WARN", record["level"])
	assert.EqualValues(t, 3, record["count"])
}

func TestSetupLogger_Stderr(t *testing.T) {
	logger, err := SetupLogger(&config.LoggingConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Error("nothing") })
}
