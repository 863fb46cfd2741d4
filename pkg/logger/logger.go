package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is the process-wide structured logger. Every component logs through
// it so request IDs and fields land in one JSON stream.
var Log *slog.Logger

// Init builds the JSON logger. LOG_LEVEL (debug/info/warn/error) controls
// verbosity; debug is the default so local runs show everything.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	Log = slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
