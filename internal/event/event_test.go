package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	var got []string

	bus.Subscribe(SourceRefreshed, func(ctx context.Context, e Event) error {
		payload := e.Payload.(SourceRefreshedPayloadV1)
		got = append(got, "a:"+payload.Source)
		return nil
	})
	bus.Subscribe(SourceRefreshed, func(ctx context.Context, e Event) error {
		got = append(got, "b")
		return nil
	})

	err := bus.Publish(context.Background(), NewSourceRefreshedEvent("wallet", 100))
	require.NoError(t, err)
	assert.Equal(t, []string{"a:wallet", "b"}, got)
}

func TestMemoryBus_NoSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewSettlementBoundaryEvent(0)))
}

func TestMemoryBus_HandlerErrorsAggregate(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(SourceFailed, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(SourceFailed, func(ctx context.Context, e Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), NewSourceFailedEvent("tools", "down"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 handler(s) failed")
}
