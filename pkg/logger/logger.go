package logger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Logger is the logging abstraction every component depends on.
// The zap-backed implementation lives in zap.go.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// WithContext returns a logger enriched with the request-scoped
	// fields stored in ctx (request id, principal).
	WithContext(ctx context.Context) Logger

	WithFields(fields ...Field) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func UUID(key string, value uuid.UUID) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	principalKey
)

// ContextWithRequestID stores the request id picked up by WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithPrincipal stores the acting principal's id and role for log enrichment.
func ContextWithPrincipal(ctx context.Context, id uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, principalKey, [2]string{id.String(), role})
}

func contextFields(ctx context.Context) []Field {
	if ctx == nil {
		return nil
	}
	var fields []Field
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		fields = append(fields, String("request_id", id))
	}
	if p, ok := ctx.Value(principalKey).([2]string); ok {
		fields = append(fields, String("principal_id", p[0]), String("principal_role", p[1]))
	}
	return fields
}
