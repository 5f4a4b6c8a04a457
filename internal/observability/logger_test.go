package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davidbz/chargeflow/internal/config"
	"github.com/davidbz/chargeflow/internal/observability"
)

func TestFromContext_AddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	observability.SetLogger(zap.New(core))

	ctx := context.Background()
	ctx = observability.WithRequestID(ctx, "req-1")
	ctx = observability.WithChargeID(ctx, "chg-1")
	ctx = observability.WithChargeModel(ctx, "volume")

	observability.FromContext(ctx).Info("computed")

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "req-1", fields["request_id"])
	require.Equal(t, "chg-1", fields["charge_id"])
	require.Equal(t, "volume", fields["charge_model"])
	require.NotContains(t, fields, "trace_id")
}

func TestEventBus_Publish(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := observability.NewEventBus(zap.New(core))

	bus.Publish(context.Background(), "charge.computed", map[string]interface{}{
		"charge_id":    "chg-1",
		"amount_cents": int64(4350),
	})

	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	require.Equal(t, "charge.computed", entries[0].ContextMap()["event"])
	require.Equal(t, int64(4350), entries[0].ContextMap()["amount_cents"])

	var nilBus *observability.EventBus
	require.NotPanics(t, func() {
		nilBus.Publish(context.Background(), "ignored", nil)
	})
}

func TestInitLogger(t *testing.T) {
	logger, err := observability.InitLogger(&config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = observability.InitLogger(&config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

func TestGenerateIDs(t *testing.T) {
	require.Len(t, observability.GenerateTraceID(), 32)
	require.Len(t, observability.GenerateSpanID(), 16)
	require.NotEqual(t, observability.GenerateRequestID(), observability.GenerateRequestID())
}
