package poller

import (
	"context"
	"sync"
	"time"

	"github.com/yieldland/minehub/internal/logger"
	"github.com/yieldland/minehub/internal/worker"
)

type taskState int

const (
	stateIdle taskState = iota
	stateScheduled
	stateFetching
)

// ApplyFunc commits a completed fetch's result to the sink.
type ApplyFunc func()

// FetchFunc performs one fetch cycle for a data source and returns the apply
// step that commits the result. The task runs the apply step only while the
// fetch's generation is still current: a fetch in flight when the task is
// disabled or re-triggered has its result discarded unapplied. Error handling
// lives in the controller's instrumentation wrapper.
type FetchFunc func(ctx context.Context) (ApplyFunc, error)

// Task drives the polling cadence of a single data source. It moves between
// three states: Idle (disabled, no timer armed), Scheduled (timer armed for
// the next tick) and Fetching (a fetch job is in flight). The next tick is
// armed only after the previous fetch completes, so fetches for one source
// never overlap. Triggers arriving while Fetching are dropped, not queued.
type Task struct {
	source   string
	interval time.Duration
	fetch    FetchFunc
	clock    Clock
	dispatch func(worker.Job) bool

	// onCoalesced is invoked for every dropped trigger. Optional.
	onCoalesced func(source string)

	mu         sync.Mutex
	state      taskState
	generation uint64
	timer      Timer
}

func newTask(source string, interval time.Duration, fetch FetchFunc, clock Clock, dispatch func(worker.Job) bool) *Task {
	return &Task{
		source:   source,
		interval: interval,
		fetch:    fetch,
		clock:    clock,
		dispatch: dispatch,
	}
}

// Source returns the data source this task polls.
func (t *Task) Source() string { return t.source }

// Enabled reports whether the task is currently polling.
func (t *Task) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != stateIdle
}

// Enable starts the cadence with an immediate fetch. No-op if already
// enabled.
func (t *Task) Enable() {
	t.mu.Lock()
	if t.state != stateIdle {
		t.mu.Unlock()
		return
	}
	t.generation++
	gen := t.generation
	t.state = stateFetching
	t.mu.Unlock()

	logger.FromContext(context.Background()).Debug(LogMsgTaskEnabled, "source", t.source)
	t.dispatchFetch(gen)
}

// Disable cancels the armed timer and returns the task to Idle. A fetch
// already in flight runs to completion but the generation bump makes its
// completion stale: the result is discarded unapplied and the cadence does
// not re-arm.
func (t *Task) Disable() {
	t.mu.Lock()
	t.generation++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.state = stateIdle
	t.mu.Unlock()

	logger.FromContext(context.Background()).Debug(LogMsgTaskDisabled, "source", t.source)
}

// TriggerNow forces an immediate fetch, resetting the cadence. If a fetch is
// already in flight the trigger is dropped and TriggerNow returns false.
func (t *Task) TriggerNow() bool {
	t.mu.Lock()
	if t.state == stateFetching {
		t.mu.Unlock()
		t.coalesced()
		return false
	}
	if t.state == stateIdle {
		t.mu.Unlock()
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.generation++
	gen := t.generation
	t.state = stateFetching
	t.mu.Unlock()

	t.dispatchFetch(gen)
	return true
}

// tick is the armed-timer callback. A tick whose generation no longer
// matches was cancelled by a Disable or TriggerNow that raced the timer
// firing; it is dropped.
func (t *Task) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.generation || t.state != stateScheduled {
		t.mu.Unlock()
		t.coalesced()
		return
	}
	t.timer = nil
	t.state = stateFetching
	t.mu.Unlock()

	t.dispatchFetch(gen)
}

// dispatchFetch hands the fetch job to the worker pool. A full queue is
// treated like a coalesced trigger: the task backs off briefly and re-arms
// instead of blocking the timer goroutine.
func (t *Task) dispatchFetch(gen uint64) {
	ok := t.dispatch(worker.JobFunc(func(ctx context.Context) error {
		apply, err := t.fetch(ctx)
		t.complete(gen, apply)
		return err
	}))
	if ok {
		return
	}

	logger.FromContext(context.Background()).Warn(LogMsgDispatchRejected, "source", t.source)
	t.coalesced()
	t.mu.Lock()
	if gen == t.generation && t.state == stateFetching {
		t.state = stateScheduled
		t.armLocked(gen, DispatchRetryDelay)
	}
	t.mu.Unlock()
}

// complete applies the fetch result, transitions Fetching back to Scheduled
// and arms the next tick. The generation check and the apply happen under the
// same lock hold, so a Disable or TriggerNow can never interleave between
// them: stale completions are discarded without touching the sink.
func (t *Task) complete(gen uint64, apply ApplyFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation || t.state != stateFetching {
		return
	}
	if apply != nil {
		apply()
	}
	t.state = stateScheduled
	t.armLocked(gen, t.interval)
}

func (t *Task) armLocked(gen uint64, d time.Duration) {
	t.timer = t.clock.AfterFunc(d, func() {
		t.tick(gen)
	})
}

func (t *Task) coalesced() {
	if t.onCoalesced != nil {
		t.onCoalesced(t.source)
	}
}
