// Package logger provides a global, Sugared Zap logger with optional
// OpenTelemetry integration. It emits JSON logs to stdout, can additionally
// write to a size-rotated file, and adds an OTEL bridge core when a telemetry
// logger provider is available.
//
// Until Init is called every logging function is a no-op, so library code can
// log unconditionally.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/localhistory/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// logger is the global SugaredLogger instance. It is replaced once by Init.
	logger = zap.NewNop().Sugar()

	// initOnce ensures the logger is only configured a single time.
	initOnce sync.Once
)

// config holds configuration options for the logger.
type config struct {
	level      string // the minimum log level (debug, info, warn, error, panic, fatal)
	file       string // optional path of a rotated log file
	maxSizeMB  int    // rotation threshold of the log file
	maxBackups int    // number of rotated files kept
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level for the global logger.
// Example levels: "debug", "info", "warn", "error", "panic", "fatal".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithFile additionally writes JSON logs to the given path, rotating the file
// once it grows past maxSizeMB and keeping at most maxBackups old files.
// An empty path disables the file sink.
func WithFile(path string, maxSizeMB, maxBackups int) Option {
	return func(c *config) {
		c.file = path
		c.maxSizeMB = maxSizeMB
		c.maxBackups = maxBackups
	}
}

// Init configures the global logger. By default, it logs JSON to stdout at
// the "info" level. If an OpenTelemetry LoggerProvider is registered via
// telemetry.LoggerProvider(), this adds an OTEL bridge core to forward logs to
// the telemetry backend. Calling Init multiple times has no effect after the
// first successful initialization.
//
// Returns an error if parsing the log level fails.
func Init(opts ...Option) error {
	cfg := config{
		level:      "info",
		maxSizeMB:  50,
		maxBackups: 3,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

		cores := []zapcore.Core{
			zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
		}

		if cfg.file != "" {
			sink := &lumberjack.Logger{
				Filename:   cfg.file,
				MaxSize:    cfg.maxSizeMB,
				MaxBackups: cfg.maxBackups,
			}
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(sink), level))
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore("github.com/gabapcia/localhistory", otelzap.WithLoggerProvider(lp)))
		}

		logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes any buffered log entries. It should be called on application
// shutdown to ensure all logs are written out.
func Sync() error {
	return logger.Sync()
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Infow(msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message (and then exits) with optional key/value context.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	logger.Fatalw(msg, keysAndValues...)
}
