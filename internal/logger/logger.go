package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/denobench/internal/env"
)

// Option configures the logger.
type Option func(*options)

type options struct {
	logToFile bool
	logFile   string
	level     slog.Leveler
}

// WithLogToFile enables mirroring log records to a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the log file path.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// New builds the application logger. Development runs get a colorized
// terminal handler; production runs log JSON. When file logging is enabled,
// records are mirrored to a size-rotated JSON log.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		logFile: filepath.Join("logs", "denobench.log"),
		level:   slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}

	var console slog.Handler
	if environment == env.Production {
		console = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: o.level})
	} else {
		console = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		})
	}

	if !o.logToFile {
		return slog.New(console)
	}

	file := slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   o.logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}, &slog.HandlerOptions{Level: o.level})

	return slog.New(multiHandler{console, file})
}

// multiHandler fans records out to every wrapped handler.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithGroup(name)
	}
	return next
}
