package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelWarn,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelWarn,
	}
	for level, expected := range tests {
		log := New(Options{Level: level, Logfile: filepath.Join(t.TempDir(), "contacts.log")})
		assert.True(t, log.Enabled(context.Background(), expected), "level: "+level)
		assert.False(t, log.Enabled(context.Background(), expected-1), "level: "+level)
	}
}

// TestLogfile expects JSON records to be appended to the file.
func TestLogfile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "contacts.log")
	log := New(Options{Level: "info", Logfile: file, Format: "json"})
	log.Info("contact added", "id", 42)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"contact added"`)
	assert.Contains(t, string(content), `"id":42`)
}

func TestDevNull(t *testing.T) {
	log := New(Options{Level: "debug", Logfile: os.DevNull})
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
