package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repaso-app/repaso-api/internal/platform/logger"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	stored := newTestLogger()
	ctx := logger.WithLogger(context.Background(), stored)

	assert.Same(t, stored, logger.FromContext(ctx))
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, newTestLogger()))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := logger.FromContext(context.Background())
	assert.Same(t, slog.Default(), got)
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	t.Run("uses fallback when context has no logger", func(t *testing.T) {
		t.Parallel()

		fallback := newTestLogger()
		got := logger.FromContextOrDefault(context.Background(), fallback)
		assert.Same(t, fallback, got)
	})

	t.Run("uses default when fallback is nil", func(t *testing.T) {
		t.Parallel()

		got := logger.FromContextOrDefault(context.Background(), nil)
		assert.Same(t, slog.Default(), got)
	})

	t.Run("nil context is tolerated", func(t *testing.T) {
		t.Parallel()

		fallback := newTestLogger()
		//nolint:staticcheck // exercising the nil-context guard
		got := logger.FromContextOrDefault(nil, fallback)
		assert.Same(t, fallback, got)
	})
}
