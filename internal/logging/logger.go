package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

var level = new(slog.LevelVar)

// InitLogger installs a tint handler on stderr as the default logger. Stdout
// is left to the console progress output.
func InitLogger() *slog.Logger {
	return InitLoggerTo(os.Stderr, os.Getenv("LOG_LEVEL"))
}

func InitLoggerTo(w io.Writer, raw string) *slog.Logger {
	SetLevel(raw)
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})

	logger := slog.New(handler).With(slog.String("run_id", uuid.NewString()))
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the level of the installed logger in place.
func SetLevel(raw string) {
	level.Set(ParseLevel(raw))
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
