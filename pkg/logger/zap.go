package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger on top of zap.
type ZapLogger struct {
	z *zap.Logger
}

// Option adjusts the zap configuration before the logger is built.
type Option func(cfg *zap.Config) error

// WithLevel overrides the environment's default level. An empty level
// keeps the default.
func WithLevel(level string) Option {
	return func(cfg *zap.Config) error {
		if strings.TrimSpace(level) == "" {
			return nil
		}
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		return nil
	}
}

// NewZapLogger writes JSON at info level in production and colored console
// output at debug level elsewhere.
func NewZapLogger(env string, opts ...Option) (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if isProduction(env) {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{z: z}, nil
}

// NewFromCore wraps an existing core; tests use it with zaptest/observer.
func NewFromCore(core zapcore.Core) Logger {
	return &ZapLogger{z: zap.New(core)}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &ZapLogger{z: zap.NewNop()}
}

func isProduction(env string) bool {
	switch strings.ToLower(env) {
	case "production", "prod":
		return true
	}
	return false
}

func (l *ZapLogger) Debug(msg string, fields ...Field) { l.z.Debug(msg, toZap(fields)...) }

func (l *ZapLogger) Info(msg string, fields ...Field) { l.z.Info(msg, toZap(fields)...) }

func (l *ZapLogger) Warn(msg string, fields ...Field) { l.z.Warn(msg, toZap(fields)...) }

func (l *ZapLogger) Error(msg string, fields ...Field) { l.z.Error(msg, toZap(fields)...) }

// Fatal exits the process after logging; deferred calls do not run.
func (l *ZapLogger) Fatal(msg string, fields ...Field) { l.z.Fatal(msg, toZap(fields)...) }

func (l *ZapLogger) WithContext(ctx context.Context) Logger {
	if fields := contextFields(ctx); len(fields) > 0 {
		return l.WithFields(fields...)
	}
	return l
}

func (l *ZapLogger) WithFields(fields ...Field) Logger {
	return &ZapLogger{z: l.z.With(toZap(fields)...)}
}

func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out[i] = zap.String(f.Key, v)
		case int:
			out[i] = zap.Int(f.Key, v)
		case int64:
			out[i] = zap.Int64(f.Key, v)
		case bool:
			out[i] = zap.Bool(f.Key, v)
		case time.Duration:
			out[i] = zap.Duration(f.Key, v)
		case error:
			out[i] = zap.NamedError(f.Key, v)
		case nil:
			out[i] = zap.Skip()
		default:
			out[i] = zap.Any(f.Key, v)
		}
	}
	return out
}
