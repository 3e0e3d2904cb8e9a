package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFields(t *testing.T) {
	id := uuid.New()

	t.Run("empty context", func(t *testing.T) {
		assert.Empty(t, contextFields(context.Background()))
	})

	t.Run("request id and principal", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "req-1")
		ctx = ContextWithPrincipal(ctx, id, "buyer")

		fields := contextFields(ctx)
		require.Len(t, fields, 3)
		assert.Equal(t, String("request_id", "req-1"), fields[0])
		assert.Equal(t, String("principal_id", id.String()), fields[1])
		assert.Equal(t, String("principal_role", "buyer"), fields[2])
	})
}

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromCore(core)

	ctx := ContextWithRequestID(context.Background(), "req-9")
	log.WithContext(ctx).WithFields(String("app", "farmdirect")).Warn("checkout failed",
		Int("items", 2),
		Int64("offset", 42),
		Bool("retry", true),
		Duration("took", time.Second),
		UUID("order_id", uuid.Nil),
		Error(errors.New("boom")),
		Any("tags", []string{"x"}),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	ctxMap := entry.ContextMap()
	assert.Equal(t, "req-9", ctxMap["request_id"])
	assert.Equal(t, "farmdirect", ctxMap["app"])
	assert.Equal(t, int64(2), ctxMap["items"])
	assert.Equal(t, "boom", ctxMap["error"])
	assert.Equal(t, uuid.Nil.String(), ctxMap["order_id"])
}

func TestNewZapLogger_Level(t *testing.T) {
	_, err := NewZapLogger("production", WithLevel("warn"))
	require.NoError(t, err)

	_, err = NewZapLogger("local", WithLevel("loud"))
	assert.Error(t, err)

	_, err = NewZapLogger("local", WithLevel(""))
	assert.NoError(t, err)
}

func TestNop_WithContext(t *testing.T) {
	log := NewNop()
	ctx := ContextWithRequestID(context.Background(), "req-2")

	assert.NotPanics(t, func() {
		log.WithContext(ctx).Info("hello", String("k", "v"))
	})
}
