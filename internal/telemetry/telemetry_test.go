package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		before := otel.GetTracerProvider()
		shutdown, err := Setup(context.Background(), "photo-shoot-registration", "")
		require.NoError(t, err)
		assert.Equal(t, before, otel.GetTracerProvider())
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Enabled", func(t *testing.T) {
		before := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(before) })

		// The client connects lazily, so no collector is needed here.
		shutdown, err := Setup(context.Background(), "photo-shoot-registration", "localhost:4317")
		require.NoError(t, err)
		assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		// Nothing was recorded, so shutdown has nothing to flush.
		_ = shutdown(ctx)
	})
}
