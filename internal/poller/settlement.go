package poller

import (
	"context"
	"sync"
	"time"

	"github.com/yieldland/minehub/internal/logger"
)

// settlementWorker recognizes local-time top-of-hour boundaries, where the
// backend settles pending mining output into the lifetime counter. It fires
// the callback once per boundary, shortly after the boundary passes.
type settlementWorker struct {
	clock      Clock
	onBoundary func(boundaryUnix int64)

	mu           sync.Mutex
	timer        Timer
	lastBoundary int64
	shutdown     chan struct{}
	wg           sync.WaitGroup
}

func newSettlementWorker(clock Clock, onBoundary func(boundaryUnix int64)) *settlementWorker {
	return &settlementWorker{
		clock:      clock,
		onBoundary: onBoundary,
		shutdown:   make(chan struct{}),
	}
}

// Start schedules the first boundary.
func (w *settlementWorker) Start() {
	w.scheduleNext()
}

// scheduleNext arms the timer for the next top-of-hour boundary. Two-stage
// scheduling keeps timer jitter from causing tight rescheduling loops: far
// from the boundary the worker sleeps to a standby point and re-plans there,
// close to it the timer targets the boundary plus a small grace.
func (w *settlementWorker) scheduleNext() {
	log := logger.FromContext(context.Background())
	now := w.clock.Now()
	boundary := nextBoundary(now)
	duration := boundary.Sub(now)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	if duration > SettlementStandbyThreshold {
		waitDuration := duration - SettlementStandbyLead
		w.timer = w.clock.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Debug(LogMsgSettlementStandby, "next_check_at", now.Add(waitDuration))
		return
	}

	w.timer = w.clock.AfterFunc(duration+SettlementFireGrace, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Early trigger: the boundary has not actually passed yet, so
		// re-plan for the remaining time instead of firing.
		if w.clock.Now().Add(SettlementJitterTolerance).Before(boundary) {
			w.scheduleNext()
			return
		}

		w.fire(boundary)
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Debug(LogMsgSettlementApproach, "boundary_at", boundary)
}

// fire invokes the callback in a tracked goroutine, once per boundary. A
// late timer that lands after the next scheduling pass already handled the
// same boundary is dropped here.
func (w *settlementWorker) fire(boundary time.Time) {
	boundaryUnix := boundary.Unix()

	w.mu.Lock()
	if boundaryUnix <= w.lastBoundary {
		w.mu.Unlock()
		return
	}
	w.lastBoundary = boundaryUnix
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.onBoundary(boundaryUnix)
	}()
}

// Shutdown cancels the pending timer and waits for an in-flight callback.
func (w *settlementWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// nextBoundary returns the next top-of-hour strictly after now, in now's
// location. Truncate cuts absolute time and would give offset boundaries in
// fractional-offset zones.
func nextBoundary(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)
}
