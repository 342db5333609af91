// Package logging builds the service's slog logger and carries the
// per-request logger through context.
//
// The root logger is built once in main and tagged with the process
// identity:
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr,
//	    logging.WithAttrs(slog.String("storage_driver", cfg.Storage.Driver)))
//
// The HTTP logging middleware stores a child logger carrying request_id and
// correlation_id; services and stores fetch it with FromContext:
//
//	logging.FromContext(ctx).ErrorContext(ctx, "failed to load todo",
//	    slog.Int64("todo_id", id),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

// Option customizes the logger built by New.
type Option func(*options)

type options struct {
	attrs []slog.Attr
}

// WithAttrs tags every record from the logger with attrs.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New returns a logger writing to w. format "text" selects the text
// handler, anything else JSON. level is one of debug, info, warn or error
// (case-insensitive, default info); debug also records source locations.
// Sensitive attributes are masked by masq before they reach w.
func New(level, format string, w io.Writer, opts ...Option) *slog.Logger {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	lvl := ParseLevel(level)
	hopts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl == slog.LevelDebug,
		ReplaceAttr: redactAttr(),
	}

	var handler slog.Handler = slog.NewJSONHandler(w, hopts)
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, hopts)
	}
	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}
	return slog.New(handler)
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// ParseLevel maps a configured level name to a slog.Level, defaulting to
// info.
func ParseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
