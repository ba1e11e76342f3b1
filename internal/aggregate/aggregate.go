// Package aggregate composes the outputs of the independent data-source
// fetches into one view model. Aggregation is a pure function of its inputs:
// no clocks, no I/O, no retained state, so any interleaving of fetch
// completions produces the same view for the same inputs.
package aggregate

import (
	"github.com/yieldland/minehub/internal/domain"
)

// Sources carries the latest result per data source. A nil source means its
// fetch failed or has not completed; the aggregate still populates every
// other domain and defaults the missing one to zero values.
type Sources struct {
	Wallet    *domain.Wallet
	Resources *domain.ResourceStats
	Inventory *domain.InventorySnapshot
	Sessions  *SessionSource
	Tools     *ToolSource

	// Failures holds the per-source error message for sources whose last
	// fetch failed. Keys are domain.Source* names.
	Failures map[string]string

	// FetchedAt holds the unix timestamp of the last successful fetch per
	// source, carried through to the view's status block.
	FetchedAt map[string]int64
}

// SessionSource wraps the session list so "fetched but empty" and
// "not fetched" stay distinguishable.
type SessionSource struct {
	Sessions []domain.MiningSession
}

// ToolSource wraps the tool list.
type ToolSource struct {
	Tools []domain.Tool
}

// Aggregate builds the unified view model. It never fails: absent sources
// contribute their documented zero defaults and are flagged in the view's
// per-source status instead of aborting the whole aggregate.
func Aggregate(s Sources) domain.AggregatedView {
	view := domain.AggregatedView{
		Resources: domain.ResourceSet{},
		Status:    make(map[string]domain.SourceStatus, len(domain.KnownSources)),
	}

	if s.Wallet != nil {
		view.Wallet = *s.Wallet
	}
	if s.Resources != nil {
		view.Resources = s.Resources.Resources
		view.LifetimeOutput = s.Resources.LifetimeOutput
	}
	if s.Inventory != nil {
		view.Inventory = *s.Inventory
		view.TotalValue = s.Inventory.TotalValue
	}
	if s.Sessions != nil {
		view.Sessions = s.Sessions.Sessions
	}
	if s.Tools != nil {
		view.Tools = s.Tools.Tools
	}

	// Total accumulated output = lifetime counter + pending output of
	// currently-active sessions. The lifetime counter is settled history;
	// only active sessions carry output not yet folded into it, so summing
	// paused/completed sessions here would double count.
	for _, session := range view.Sessions {
		if !session.IsActive() {
			continue
		}
		view.ActiveSessions++
		view.PendingOutput += session.Pending
	}
	view.TotalOutput = view.LifetimeOutput + view.PendingOutput

	for _, source := range domain.KnownSources {
		view.Status[source] = sourceStatus(s, source)
	}
	return view
}

func sourceStatus(s Sources, source string) domain.SourceStatus {
	status := domain.SourceStatus{OK: sourcePresent(s, source)}
	if msg, ok := s.Failures[source]; ok {
		status.OK = false
		status.Error = msg
	}
	if at, ok := s.FetchedAt[source]; ok {
		status.FetchedAt = at
	}
	return status
}

func sourcePresent(s Sources, source string) bool {
	switch source {
	case domain.SourceWallet:
		return s.Wallet != nil
	case domain.SourceResources:
		return s.Resources != nil
	case domain.SourceInventory:
		return s.Inventory != nil
	case domain.SourceSessions:
		return s.Sessions != nil
	case domain.SourceTools:
		return s.Tools != nil
	default:
		return false
	}
}
