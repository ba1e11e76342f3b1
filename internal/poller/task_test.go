package poller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldland/minehub/internal/worker"
)

// syncDispatch runs jobs inline so task tests stay deterministic.
func syncDispatch(j worker.Job) bool {
	_ = j.Process(context.Background())
	return true
}

func TestTask_EnableFetchesImmediatelyThenOnInterval(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var fetches int
	task := newTask("wallet", 30*time.Second, func(ctx context.Context) (ApplyFunc, error) {
		fetches++
		return nil, nil
	}, clock, syncDispatch)

	task.Enable()
	assert.Equal(t, 1, fetches)

	clock.Advance(29 * time.Second)
	assert.Equal(t, 1, fetches)

	clock.Advance(1 * time.Second)
	assert.Equal(t, 2, fetches)

	clock.Advance(90 * time.Second)
	assert.Equal(t, 5, fetches)
}

func TestTask_EnableTwiceIsNoop(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var fetches int
	task := newTask("wallet", time.Minute, func(ctx context.Context) (ApplyFunc, error) {
		fetches++
		return nil, nil
	}, clock, syncDispatch)

	task.Enable()
	task.Enable()
	assert.Equal(t, 1, fetches)
}

func TestTask_TriggerDuringFetchIsDropped(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var pending []worker.Job
	capture := func(j worker.Job) bool {
		pending = append(pending, j)
		return true
	}

	var fetches, coalesced int
	task := newTask("sessions", 15*time.Second, func(ctx context.Context) (ApplyFunc, error) {
		fetches++
		return nil, nil
	}, clock, capture)
	task.onCoalesced = func(string) { coalesced++ }

	task.Enable()
	require.Len(t, pending, 1)

	// Fetch still in flight: both manual triggers must be dropped, not queued.
	assert.False(t, task.TriggerNow())
	assert.False(t, task.TriggerNow())
	assert.Equal(t, 2, coalesced)

	require.NoError(t, pending[0].Process(context.Background()))
	assert.Equal(t, 1, fetches)
	require.Len(t, pending, 1, "dropped triggers must not enqueue extra fetches")

	// Completion re-armed the cadence.
	clock.Advance(15 * time.Second)
	require.Len(t, pending, 2)
}

func TestTask_TriggerNowResetsCadence(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var fetches int
	task := newTask("wallet", time.Minute, func(ctx context.Context) (ApplyFunc, error) {
		fetches++
		return nil, nil
	}, clock, syncDispatch)

	task.Enable()
	clock.Advance(45 * time.Second)
	require.Equal(t, 1, fetches)

	require.True(t, task.TriggerNow())
	assert.Equal(t, 2, fetches)

	// The old tick at t+60s was cancelled; the next fires a full interval
	// after the manual trigger.
	clock.Advance(15 * time.Second)
	assert.Equal(t, 2, fetches)
	clock.Advance(45 * time.Second)
	assert.Equal(t, 3, fetches)
}

func TestTask_DisableCancelsTimerAndDropsInFlightCompletion(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var pending []worker.Job
	capture := func(j worker.Job) bool {
		pending = append(pending, j)
		return true
	}

	task := newTask("tools", time.Minute, func(ctx context.Context) (ApplyFunc, error) { return nil, nil }, clock, capture)

	task.Enable()
	require.Len(t, pending, 1)
	task.Disable()
	assert.False(t, task.Enabled())

	// The in-flight fetch completing after Disable must not re-arm.
	require.NoError(t, pending[0].Process(context.Background()))
	clock.Advance(10 * time.Minute)
	assert.Len(t, pending, 1)
	assert.False(t, task.Enabled())
}

func TestTask_DisableDiscardsInFlightResult(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var pending []worker.Job
	capture := func(j worker.Job) bool {
		pending = append(pending, j)
		return true
	}

	var applied int
	task := newTask("wallet", time.Minute, func(ctx context.Context) (ApplyFunc, error) {
		return func() { applied++ }, nil
	}, clock, capture)

	task.Enable()
	require.Len(t, pending, 1)
	task.Disable()

	// The fetch was in flight when Disable landed: its result must be
	// discarded, never written to the sink.
	require.NoError(t, pending[0].Process(context.Background()))
	assert.Equal(t, 0, applied)

	// Re-enabling starts a fresh generation whose result does apply.
	task.Enable()
	require.Len(t, pending, 2)
	require.NoError(t, pending[1].Process(context.Background()))
	assert.Equal(t, 1, applied)
}

func TestTask_TriggerNowWhenIdleIsRejected(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	task := newTask("wallet", time.Minute, func(ctx context.Context) (ApplyFunc, error) { return nil, nil }, clock, syncDispatch)
	assert.False(t, task.TriggerNow())
}

func TestTask_DispatchRejectionRetriesAfterBackoff(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC))
	var attempts int
	var fetches int
	dispatch := func(j worker.Job) bool {
		attempts++
		if attempts == 1 {
			return false
		}
		_ = j.Process(context.Background())
		return true
	}
	task := newTask("wallet", time.Minute, func(ctx context.Context) (ApplyFunc, error) {
		fetches++
		return nil, nil
	}, clock, dispatch)

	task.Enable()
	assert.Equal(t, 0, fetches)

	clock.Advance(DispatchRetryDelay)
	assert.Equal(t, 1, fetches)
}
