// Package event is the in-process bus decoupling the poller from its
// observers: the poller publishes fetch outcomes and settlement boundaries,
// subscribers decide what each event means for them. The logging observer
// (SubscribeLogging) is the standard production consumer.
package event

import (
	"context"
	"fmt"
	"sync"
)

// Type represents the type of an event.
type Type string

// Common event types
const (
	SourceRefreshed    Type = "source.refreshed"
	SourceFailed       Type = "source.failed"
	SettlementBoundary Type = "settlement.boundary"
)

// Event represents a generic event in the system.
type Event struct {
	Version string `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type   `json:"type"`
	Payload any    `json:"payload"`
}

// SourceRefreshedPayloadV1 is the typed payload for successful fetches.
type SourceRefreshedPayloadV1 struct {
	Source    string `json:"source"`
	FetchedAt int64  `json:"fetched_at"`
}

// SourceFailedPayloadV1 is the typed payload for failed fetches.
type SourceFailedPayloadV1 struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// SettlementBoundaryPayloadV1 is the typed payload for hourly settlement
// boundary triggers.
type SettlementBoundaryPayloadV1 struct {
	BoundaryUnix int64 `json:"boundary_unix"`
}

// NewSourceRefreshedEvent creates a refresh-completed event.
func NewSourceRefreshedEvent(source string, fetchedAt int64) Event {
	return Event{
		Version: SchemaVersion,
		Type:    SourceRefreshed,
		Payload: SourceRefreshedPayloadV1{Source: source, FetchedAt: fetchedAt},
	}
}

// NewSourceFailedEvent creates a fetch-failed event.
func NewSourceFailedEvent(source, message string) Event {
	return Event{
		Version: SchemaVersion,
		Type:    SourceFailed,
		Payload: SourceFailedPayloadV1{Source: source, Message: message},
	}
}

// NewSettlementBoundaryEvent creates an hourly boundary event.
func NewSettlementBoundaryEvent(boundaryUnix int64) Event {
	return Event{
		Version: SchemaVersion,
		Type:    SettlementBoundary,
		Payload: SettlementBoundaryPayloadV1{BoundaryUnix: boundaryUnix},
	}
}

// Handler is a function that handles an event.
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Bus. Handlers run
// synchronously on the publisher's goroutine.
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[Type][]Handler)}
}

// Publish publishes an event to all subscribers.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d handler(s) failed for %s: %v", len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type.
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
