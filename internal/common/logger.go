package common

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// LoggerOptions configures the sinks and verbosity of a logger.
type LoggerOptions struct {
	// Level is the minimum level to emit.
	Level slog.Level
	// Format selects the console handler: "console" or "json".
	Format string
	// File, when set, adds a second sink writing text records to that path.
	File string
}

// NewLogger builds a logger from the given options. The returned close
// function flushes and closes the file sink, if any, and must be called
// before the process exits.
func NewLogger(opts LoggerOptions) (*slog.Logger, func() error, error) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	switch opts.Format {
	case "console", "":
		handler = tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.Kitchen,
			NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		})
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		return nil, nil, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, opts.Format)
	}

	closeFn := func() error { return nil }

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		handler = teeHandler{handler, slog.NewTextHandler(f, handlerOpts)}
		closeFn = f.Close
	}

	return slog.New(handler), closeFn, nil
}

// ParseLevel converts a config string to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: invalid log level %q", ErrInvalidConfig, level)
	}
}

// teeHandler fans records out to every wrapped handler.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}
