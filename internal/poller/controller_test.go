package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldland/minehub/internal/domain"
	"github.com/yieldland/minehub/internal/event"
	"github.com/yieldland/minehub/internal/worker"
)

func newTestController(t *testing.T, sources []SourceConfig, bus event.Bus) (*Controller, *worker.Pool) {
	t.Helper()
	pool := worker.NewPool(2, 16)
	pool.Start()
	t.Cleanup(pool.Stop)

	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	return NewController(sources, pool, bus, clock), pool
}

func TestController_StartFetchesEverySource(t *testing.T) {
	var wallet, tools atomic.Int64
	sources := []SourceConfig{
		{Name: domain.SourceWallet, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			wallet.Add(1)
			return nil, nil
		}},
		{Name: domain.SourceTools, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			tools.Add(1)
			return nil, nil
		}},
	}
	c, _ := newTestController(t, sources, event.NewMemoryBus())

	ctx := context.Background()
	c.Start(ctx)
	defer c.Shutdown(ctx)

	require.Eventually(t, func() bool {
		return wallet.Load() == 1 && tools.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestController_PublishesRefreshAndFailureEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	var mu sync.Mutex
	var refreshed, failed []string
	bus.Subscribe(event.SourceRefreshed, func(ctx context.Context, e event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		refreshed = append(refreshed, e.Payload.(event.SourceRefreshedPayloadV1).Source)
		return nil
	})
	bus.Subscribe(event.SourceFailed, func(ctx context.Context, e event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, e.Payload.(event.SourceFailedPayloadV1).Source)
		return nil
	})

	sources := []SourceConfig{
		{Name: domain.SourceWallet, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			return nil, nil
		}},
		{Name: domain.SourceSessions, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			return nil, domain.ErrTransport
		}},
	}
	c, _ := newTestController(t, sources, bus)

	ctx := context.Background()
	c.Start(ctx)
	defer c.Shutdown(ctx)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(refreshed) == 1 && len(failed) == 1
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{domain.SourceWallet}, refreshed)
	assert.Equal(t, []string{domain.SourceSessions}, failed)
	assert.False(t, c.Halted())
}

func TestController_UnauthorizedHaltsPolling(t *testing.T) {
	var fetches atomic.Int64
	sources := []SourceConfig{
		{Name: domain.SourceWallet, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			fetches.Add(1)
			return nil, domain.ErrUnauthorized
		}},
		{Name: domain.SourceTools, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			return nil, nil
		}},
	}
	c, _ := newTestController(t, sources, event.NewMemoryBus())

	ctx := context.Background()
	c.Start(ctx)
	defer c.Shutdown(ctx)

	require.Eventually(t, c.Halted, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return !c.tasks[domain.SourceWallet].Enabled() && !c.tasks[domain.SourceTools].Enabled()
	}, 2*time.Second, 5*time.Millisecond)

	// RefreshAll clears the halt and re-enables the cadence.
	before := fetches.Load()
	c.RefreshAll()
	require.Eventually(t, func() bool {
		return fetches.Load() > before
	}, 2*time.Second, 5*time.Millisecond)
}

func TestController_TriggerNowUnknownSource(t *testing.T) {
	c, _ := newTestController(t, nil, event.NewMemoryBus())
	_, err := c.TriggerNow("nonsense")
	assert.ErrorIs(t, err, domain.ErrUnknownSource)
}

func TestController_SetEnabledTogglesSource(t *testing.T) {
	var fetches atomic.Int64
	sources := []SourceConfig{
		{Name: domain.SourceWallet, Interval: time.Minute, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			fetches.Add(1)
			return nil, nil
		}},
	}
	c, _ := newTestController(t, sources, event.NewMemoryBus())

	ctx := context.Background()
	c.Start(ctx)
	defer c.Shutdown(ctx)

	require.Eventually(t, func() bool { return fetches.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, c.SetEnabled(domain.SourceWallet, false))
	assert.False(t, c.tasks[domain.SourceWallet].Enabled())

	require.NoError(t, c.SetEnabled(domain.SourceWallet, true))
	require.Eventually(t, func() bool { return fetches.Load() == 2 }, 2*time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, c.SetEnabled("nonsense", true), domain.ErrUnknownSource)
}

func TestController_SettlementBoundaryTriggersPriorityRefresh(t *testing.T) {
	bus := event.NewMemoryBus()
	boundaries := make(chan int64, 4)
	bus.Subscribe(event.SettlementBoundary, func(ctx context.Context, e event.Event) error {
		boundaries <- e.Payload.(event.SettlementBoundaryPayloadV1).BoundaryUnix
		return nil
	})

	var sessions atomic.Int64
	sources := []SourceConfig{
		{Name: domain.SourceSessions, Interval: time.Hour, Fetch: func(ctx context.Context) (ApplyFunc, error) {
			sessions.Add(1)
			return nil, nil
		}},
	}

	pool := worker.NewPool(2, 16)
	pool.Start()
	t.Cleanup(pool.Stop)
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 30, 0, 0, time.UTC))
	c := NewController(sources, pool, bus, clock)

	ctx := context.Background()
	c.Start(ctx)
	defer c.Shutdown(ctx)

	require.Eventually(t, func() bool { return sessions.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// Wait until the first fetch fully completed, so the priority refresh is
	// not coalesced against it.
	task := c.tasks[domain.SourceSessions]
	require.Eventually(t, func() bool {
		task.mu.Lock()
		defer task.mu.Unlock()
		return task.state == stateScheduled
	}, 2*time.Second, 5*time.Millisecond)

	clock.Advance(30*time.Minute + SettlementFireGrace)

	select {
	case b := <-boundaries:
		assert.Equal(t, time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC).Unix(), b)
	case <-time.After(2 * time.Second):
		t.Fatal("settlement boundary event never published")
	}
	require.Eventually(t, func() bool { return sessions.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}
