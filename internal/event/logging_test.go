package event

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldland/minehub/internal/logger"
)

func TestSubscribeLogging_EmitsPerEventType(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Config{Level: "debug", Format: "json", ServiceName: "minehub", Environment: "test"}, &buf)
	defer slog.SetDefault(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))

	bus := NewMemoryBus()
	SubscribeLogging(bus)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewSourceRefreshedEvent("wallet", 42)))
	require.NoError(t, bus.Publish(ctx, NewSourceFailedEvent("tools", "backend down")))
	require.NoError(t, bus.Publish(ctx, NewSettlementBoundaryEvent(1700003600)))

	out := buf.String()
	assert.Contains(t, out, `"source":"wallet"`)
	assert.Contains(t, out, `"fetched_at":42`)
	assert.Contains(t, out, `"source":"tools"`)
	assert.Contains(t, out, `"message":"backend down"`)
	assert.Contains(t, out, `"boundary_unix":1700003600`)
}

func TestSubscribeLogging_IgnoresForeignPayloadShape(t *testing.T) {
	bus := NewMemoryBus()
	SubscribeLogging(bus)

	err := bus.Publish(context.Background(), Event{
		Version: SchemaVersion,
		Type:    SourceRefreshed,
		Payload: "not a struct",
	})
	assert.NoError(t, err)
}
