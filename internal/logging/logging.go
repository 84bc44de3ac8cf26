// Package logging provides the process-wide structured logger: zap
// wrapped with an apmzap.Core that reports error-level entries to
// Elastic APM, a context-scoped accessor pair, and a sync.Once-guarded
// global fallback for code paths that run before a request-scoped
// logger exists.
//
// Grounded directly on the teacher's internal/infrastructure/logger
// package: same WithLogger/FromContext/GetLogger shape, same
// apmzap.Core wrapping, same dev/production config switch — the
// switch input changes from an APP_MODE env var read inline to the
// Mode field on the loaded Config.
package logging

import (
	"context"
	"sync"
	"time"

	"go.elastic.co/apm/module/apmzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const loggerKey ctxKey = "connector_logger"

var (
	defaultLogger *zap.Logger
	once          sync.Once
)

// WithLogger returns a new context carrying l for downstream retrieval
// via FromContext.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or the package default
// if ctx carries none. Always returns a non-nil logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return GetLogger()
	}
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return GetLogger()
}

// GetLogger returns the singleton default logger, building it with
// built-in defaults on first use. Prefer constructing a logger with
// New(mode, level, filePath) at startup and threading it through
// WithLogger; GetLogger exists for code paths reached before that
// wiring runs.
func GetLogger() *zap.Logger {
	once.Do(func() {
		l, err := New("dev", "info", "")
		if err != nil {
			l = zap.NewExample()
			l.Warn("failed to initialize default logger, using example fallback", zap.Error(err))
		}
		defaultLogger = l
	})
	if defaultLogger == nil {
		defaultLogger = zap.NewNop()
	}
	return defaultLogger
}

// New builds a zap.Logger for mode ("dev" or "production"), with level
// parsed into the config's atomic level and, when filePath is
// non-empty, a second output path alongside stdout. The returned
// logger is wrapped in apmzap.Core, which reports error-level entries
// to Elastic APM; no trace or span id fields are added to log lines.
func New(mode, level, filePath string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if mode != "production" {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err == nil {
			cfg.Level = lvl
		}
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg.OutputPaths = []string{"stdout"}
	if filePath != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, filePath)
	}

	apmCore := &apmzap.Core{FatalFlushTimeout: 10 * time.Second}
	return cfg.Build(zap.WrapCore(apmCore.WrapCore))
}

// Sync flushes buffered log entries. Errors from Sync are frequently
// spurious on some platforms (e.g. stdout not supporting fsync);
// callers should log but not fail shutdown on a non-nil return.
func Sync(l *zap.Logger) error {
	if l == nil {
		return nil
	}
	return l.Sync()
}
