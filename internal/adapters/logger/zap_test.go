package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/athebyme/gomarket-platform/catalog-admin/pkg/interfaces"
)

func TestExtractFieldsFromContext(t *testing.T) {
	t.Parallel()

	z := NewNopLogger().(*ZapLogger)

	ctx := context.WithValue(context.Background(), interfaces.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, interfaces.ShopKey, "demo.myshopify.com")

	fields := z.extractFieldsFromContext(ctx)
	assert.Equal(t, []interface{}{
		zap.String("request_id", "req-1"),
		zap.String("shop", "demo.myshopify.com"),
	}, fields)

	assert.Empty(t, z.extractFieldsFromContext(context.Background()))
}

func TestSetLevel_SharedWithChildren(t *testing.T) {
	t.Parallel()

	parent := NewNopLogger()
	child := parent.WithShop("demo.myshopify.com")

	parent.SetLevel(interfaces.DebugLevel)
	assert.Equal(t, interfaces.DebugLevel, child.GetLevel())

	child.SetLevel(interfaces.ErrorLevel)
	assert.Equal(t, interfaces.ErrorLevel, parent.GetLevel())
}

func TestGetLoggerLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, interfaces.WarnLevel, GetLoggerLevel("warn"))
	assert.Equal(t, interfaces.InfoLevel, GetLoggerLevel("verbose"))
}
