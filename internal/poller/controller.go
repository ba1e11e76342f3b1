// Package poller owns the polling cadence of every backend data source: one
// task per source with a coalescing state machine, an injected clock, and an
// hourly settlement worker that fires priority refreshes on local top-of-hour
// boundaries.
package poller

import (
	"context"
	"errors"
	"sync"

	"github.com/yieldland/minehub/internal/domain"
	"github.com/yieldland/minehub/internal/event"
	"github.com/yieldland/minehub/internal/logger"
	"github.com/yieldland/minehub/internal/metrics"
	"github.com/yieldland/minehub/internal/worker"
)

// Controller coordinates the per-source tasks and the settlement worker.
type Controller struct {
	tasks      map[string]*Task
	order      []string
	pool       *worker.Pool
	bus        event.Bus
	clock      Clock
	settlement *settlementWorker

	mu     sync.Mutex
	halted bool
}

// NewController builds the controller from the wired sources. Session-shaped
// sources get the settlement priority refresh; the rest keep their cadence.
func NewController(sources []SourceConfig, pool *worker.Pool, bus event.Bus, clock Clock) *Controller {
	c := &Controller{
		tasks: make(map[string]*Task, len(sources)),
		pool:  pool,
		bus:   bus,
		clock: clock,
	}
	for _, src := range sources {
		task := newTask(src.Name, src.Interval, c.instrument(src.Name, src.Fetch), clock, pool.TryEnqueue)
		task.onCoalesced = func(source string) {
			metrics.CoalescedTriggers.WithLabelValues(source).Inc()
			logger.FromContext(context.Background()).Debug(LogMsgTriggerCoalesced, "source", source)
		}
		c.tasks[src.Name] = task
		c.order = append(c.order, src.Name)
	}
	c.settlement = newSettlementWorker(clock, c.onSettlementBoundary)
	return c
}

// Start enables every task (each begins with an immediate fetch) and arms
// the settlement worker.
func (c *Controller) Start(ctx context.Context) {
	logger.FromContext(ctx).Info(LogMsgPollerStarted, "sources", c.order)
	for _, name := range c.order {
		c.tasks[name].Enable()
	}
	c.settlement.Start()
}

// Shutdown disables all tasks and stops the settlement worker. In-flight
// fetches drain through the worker pool, which the caller stops separately.
func (c *Controller) Shutdown(ctx context.Context) error {
	for _, name := range c.order {
		c.tasks[name].Disable()
	}
	err := c.settlement.Shutdown(ctx)
	logger.FromContext(ctx).Info(LogMsgPollerStopped)
	return err
}

// TriggerNow forces an immediate refresh of one source. Returns false when
// the trigger was coalesced or the source is disabled.
func (c *Controller) TriggerNow(source string) (bool, error) {
	task, ok := c.tasks[source]
	if !ok {
		return false, domain.ErrUnknownSource
	}
	return task.TriggerNow(), nil
}

// RefreshAll triggers every enabled source, clearing the unauthorized halt
// first so a credential fix can be picked up without a restart.
func (c *Controller) RefreshAll() {
	c.mu.Lock()
	resumed := c.halted
	c.halted = false
	c.mu.Unlock()
	if resumed {
		logger.FromContext(context.Background()).Info(LogMsgPollingResumed)
	}

	for _, name := range c.order {
		task := c.tasks[name]
		if resumed {
			task.Enable()
		}
		task.TriggerNow()
	}
}

// SetEnabled enables or disables a single source's cadence.
func (c *Controller) SetEnabled(source string, enabled bool) error {
	task, ok := c.tasks[source]
	if !ok {
		return domain.ErrUnknownSource
	}
	if enabled {
		task.Enable()
	} else {
		task.Disable()
	}
	return nil
}

// Halted reports whether polling stopped because the backend rejected the
// credentials.
func (c *Controller) Halted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halted
}

// instrument wraps a source fetch with metrics, event publication and the
// unauthorized short-circuit.
func (c *Controller) instrument(source string, fetch FetchFunc) FetchFunc {
	return func(ctx context.Context) (ApplyFunc, error) {
		metrics.FetchesTotal.WithLabelValues(source).Inc()
		metrics.FetchesInFlight.Inc()
		defer metrics.FetchesInFlight.Dec()

		start := c.clock.Now()
		apply, err := fetch(ctx)
		metrics.FetchDuration.WithLabelValues(source).Observe(c.clock.Now().Sub(start).Seconds())

		if err != nil {
			metrics.FetchErrors.WithLabelValues(source, errorClass(err)).Inc()
			if pubErr := c.bus.Publish(ctx, event.NewSourceFailedEvent(source, err.Error())); pubErr != nil {
				logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "error", pubErr)
			}
			if errors.Is(err, domain.ErrUnauthorized) {
				c.haltUnauthorized(ctx)
			}
			return apply, err
		}

		if pubErr := c.bus.Publish(ctx, event.NewSourceRefreshedEvent(source, c.clock.Now().Unix())); pubErr != nil {
			logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "error", pubErr)
		}
		return apply, nil
	}
}

// haltUnauthorized disables every task. A 401/403 means every other source
// will fail the same way, so continuing to poll only burns the backend's
// rate budget.
func (c *Controller) haltUnauthorized(ctx context.Context) {
	c.mu.Lock()
	if c.halted {
		c.mu.Unlock()
		return
	}
	c.halted = true
	c.mu.Unlock()

	logger.FromContext(ctx).Error(LogMsgUnauthorizedHalt)
	for _, name := range c.order {
		c.tasks[name].Disable()
	}
}

// onSettlementBoundary is the settlement worker's fire callback: publish the
// boundary event and priority-refresh the output-bearing sources.
func (c *Controller) onSettlementBoundary(boundaryUnix int64) {
	ctx := context.Background()
	metrics.SettlementTriggers.Inc()
	logger.FromContext(ctx).Info(LogMsgSettlementTriggered, "boundary_unix", boundaryUnix)

	if err := c.bus.Publish(ctx, event.NewSettlementBoundaryEvent(boundaryUnix)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "error", err)
	}

	for _, source := range []string{domain.SourceResources, domain.SourceSessions, domain.SourceWallet} {
		if task, ok := c.tasks[source]; ok {
			task.TriggerNow()
		}
	}
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return ErrorClassUnauthorized
	case errors.Is(err, domain.ErrTransport):
		return ErrorClassTransport
	case errors.Is(err, domain.ErrBusiness):
		return ErrorClassBusiness
	case errors.Is(err, domain.ErrDecode):
		return ErrorClassDecode
	default:
		return ErrorClassUnknown
	}
}
