package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnv(t *testing.T) {
	cases := map[string]slog.Level{
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelDebug,
		"junk":  slog.LevelDebug,
	}
	for val, want := range cases {
		t.Setenv("LOG_LEVEL", val)
		assert.Equal(t, want, levelFromEnv(), val)
	}
}
