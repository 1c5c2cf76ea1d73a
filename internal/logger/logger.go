// Package logger owns the process-wide slog logger and the request-scoped
// loggers the gRPC interceptors put on the context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/oggyb/accountadate/internal/config"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// textTimeLayout replaces RFC3339 timestamps in text output.
const textTimeLayout = "2006-01-02 15:04:05.000"

type Config struct {
	Level      string
	Format     Format
	Component  string
	WithSource bool
	// Output defaults to stdout.
	Output io.Writer
}

var (
	initMu  sync.Mutex
	current atomic.Pointer[slog.Logger]
	level   = new(slog.LevelVar)
	active  = Config{Level: "info", Format: FormatText}
)

// InitFromConfig initializes global logger from app config.
func InitFromConfig(c *config.Config) {
	if c == nil {
		Init(nil)
		return
	}
	Init(&Config{
		Level:      c.Log.Level,
		Format:     Format(strings.ToLower(c.Log.Format)),
		Component:  c.Log.Component,
		WithSource: c.Log.Source,
	})
}

// Init (re)builds the global logger. nil keeps the previous settings. Safe
// to call multiple times.
func Init(c *Config) {
	initMu.Lock()
	defer initMu.Unlock()

	if c != nil {
		active = *c
	}
	level.Set(parseLevel(active.Level))

	out := active.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: active.WithSource}

	var handler slog.Handler
	if active.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		opts.ReplaceAttr = shortTime
		handler = slog.NewTextHandler(out, opts)
	}

	l := slog.New(handler)
	if active.Component != "" {
		l = l.With("component", active.Component)
	}
	current.Store(l)
}

// SetLevel changes the level of the global logger in place; loggers
// derived from it with With follow.
func SetLevel(s string) {
	level.Set(parseLevel(s))
}

// L returns the global logger, initializing defaults on first use.
func L() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	Init(nil)
	return current.Load()
}

// With creates a child logger with additional attributes.
func With(args ...any) *slog.Logger { return L().With(args...) }

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

type ctxKey struct{}

// IntoContext attaches a request-scoped logger (req_id, method) to ctx.
func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request-scoped logger, or fallback when ctx has
// none. A nil fallback means the global logger.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return L()
}

// IsDebug reports whether the active level lets debug records through.
func IsDebug() bool {
	return level.Level() <= slog.LevelDebug
}

func shortTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Format(textTimeLayout))
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
