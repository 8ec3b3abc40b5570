// Package logger provides structured logging setup for eventsgrasp.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/javakishore-veleti/eventsgrasp/internal/config"
)

const (
	defaultAsyncBuffer = 4096
	asyncWorkers       = 2
)

// New creates a *slog.Logger from the given Logging config.
// Output is JSON to stdout with a "service" attribute on every record, plus
// request and customer ids taken from the context. With cfg.Async the records
// are written by a buffered worker pool; call Close on shutdown to flush.
func New(cfg config.Logging) (*slog.Logger, Closer) {
	return newWithWriter(cfg, os.Stdout)
}

func newWithWriter(cfg config.Logging, w io.Writer) (*slog.Logger, Closer) {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})

	var closer Closer = nopCloser{}
	if cfg.Async {
		size := cfg.AsyncBuffer
		if size <= 0 {
			size = defaultAsyncBuffer
		}
		async := NewAsyncHandler(handler, size, asyncWorkers)
		handler, closer = async, async
	}

	// Context attributes are resolved before records reach the async queue.
	handler = &ContextHandler{inner: handler}

	return slog.New(handler).With("service", cfg.Service), closer
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
