package event

import (
	"context"

	"github.com/yieldland/minehub/internal/logger"
)

// SubscribeLogging attaches the operational log observer to every event
// type. It is the production consumer of fetch outcomes: refreshes log at
// debug, failures at warn, settlement boundaries at info.
func SubscribeLogging(bus Bus) {
	bus.Subscribe(SourceRefreshed, func(ctx context.Context, e Event) error {
		p, ok := e.Payload.(SourceRefreshedPayloadV1)
		if !ok {
			return nil
		}
		logger.FromContext(ctx).Debug(LogMsgSourceRefreshed, "source", p.Source, "fetched_at", p.FetchedAt)
		return nil
	})
	bus.Subscribe(SourceFailed, func(ctx context.Context, e Event) error {
		p, ok := e.Payload.(SourceFailedPayloadV1)
		if !ok {
			return nil
		}
		logger.FromContext(ctx).Warn(LogMsgSourceFailed, "source", p.Source, "message", p.Message)
		return nil
	})
	bus.Subscribe(SettlementBoundary, func(ctx context.Context, e Event) error {
		p, ok := e.Payload.(SettlementBoundaryPayloadV1)
		if !ok {
			return nil
		}
		logger.FromContext(ctx).Info(LogMsgSettlementBoundary, "boundary_unix", p.BoundaryUnix)
		return nil
	})
}
