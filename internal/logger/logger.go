package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/salesorder/internal/config"
)

// New creates a JSON slog.Logger writing to w. Unknown levels fall back to info.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler)
}

// ParseLevel maps a textual level such as "warn" to slog.Level.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func newFromConfig(cfg *config.Config) *slog.Logger {
	return New(os.Stdout, cfg.LogLevel)
}
