package poller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectBoundaries(t *testing.T, ch <-chan int64, want int) []int64 {
	t.Helper()
	got := make([]int64, 0, want)
	for len(got) < want {
		select {
		case b := <-ch:
			got = append(got, b)
		case <-time.After(2 * time.Second):
			t.Fatalf("expected %d boundary fires, got %d", want, len(got))
		}
	}
	return got
}

func TestSettlementWorker_FiresOncePerHourlyBoundary(t *testing.T) {
	start := time.Date(2026, 1, 2, 12, 0, 30, 0, time.UTC)
	clock := newFakeClock(start)
	fired := make(chan int64, 8)

	w := newSettlementWorker(clock, func(boundaryUnix int64) {
		fired <- boundaryUnix
	})
	w.Start()
	defer w.Shutdown(context.Background())

	// Standby stage: nothing fires before the boundary.
	clock.Advance(58 * time.Minute)
	select {
	case b := <-fired:
		t.Fatalf("fired before boundary: %d", b)
	default:
	}

	clock.Advance(2*time.Minute + SettlementFireGrace)
	got := collectBoundaries(t, fired, 1)
	assert.Equal(t, time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC).Unix(), got[0])

	// No second fire until the next boundary passes.
	clock.Advance(30 * time.Minute)
	select {
	case b := <-fired:
		t.Fatalf("unexpected extra fire: %d", b)
	default:
	}

	clock.Advance(30 * time.Minute)
	got = collectBoundaries(t, fired, 1)
	assert.Equal(t, time.Date(2026, 1, 2, 14, 0, 0, 0, time.UTC).Unix(), got[0])
}

func TestSettlementWorker_DeduplicatesSameBoundary(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 30, 0, 0, time.UTC))
	fired := make(chan int64, 8)
	w := newSettlementWorker(clock, func(boundaryUnix int64) {
		fired <- boundaryUnix
	})

	boundary := time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC)
	w.fire(boundary)
	w.fire(boundary)
	require.NoError(t, w.Shutdown(context.Background()))

	assert.Len(t, collectBoundaries(t, fired, 1), 1)
	select {
	case b := <-fired:
		t.Fatalf("duplicate fire for boundary %d", b)
	default:
	}
}

func TestSettlementWorker_ShutdownCancelsPendingTimer(t *testing.T) {
	clock := newFakeClock(time.Date(2026, 1, 2, 12, 59, 0, 0, time.UTC))
	fired := make(chan int64, 1)
	w := newSettlementWorker(clock, func(boundaryUnix int64) {
		fired <- boundaryUnix
	})
	w.Start()
	require.NoError(t, w.Shutdown(context.Background()))

	clock.Advance(2 * time.Hour)
	select {
	case b := <-fired:
		t.Fatalf("fired after shutdown: %d", b)
	default:
	}
}

func TestNextBoundary(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC), nextBoundary(now))

	exactly := time.Date(2026, 1, 2, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 2, 14, 0, 0, 0, time.UTC), nextBoundary(exactly))
}

func TestNextBoundary_FractionalOffsetZone(t *testing.T) {
	// In a +05:30 zone, truncating absolute time would land on :30 local.
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 1, 2, 12, 45, 0, 0, ist)

	got := nextBoundary(now)
	want := time.Date(2026, 1, 2, 13, 0, 0, 0, ist)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}
