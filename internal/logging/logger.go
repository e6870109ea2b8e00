package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a slog logger tagged with the service name. Development builds
// get human-readable text output, everything else JSON. An invalid level
// string falls back to info.
func New(level, service string, dev bool) *slog.Logger {
	return newWithWriter(os.Stdout, level, service, dev)
}

func newWithWriter(w io.Writer, level, service string, dev bool) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if dev {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	if service != "" {
		logger = logger.With(slog.String("service", service))
	}
	return logger
}

// Discard returns a logger that drops all output. Useful for tests.
func Discard() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}
