// Package view holds the latest aggregated view model. The poller writes
// per-source results into the store; HTTP reads the composed view out. The
// last computed view is persisted through the storage shim so a restart
// serves stale-but-real data until the first fetch cycle lands.
package view

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/yieldland/minehub/internal/aggregate"
	"github.com/yieldland/minehub/internal/domain"
	"github.com/yieldland/minehub/internal/logger"
	"github.com/yieldland/minehub/internal/metrics"
	"github.com/yieldland/minehub/internal/storage"
)

// Store is the single writer-side owner of aggregate.Sources and the
// reader-side source of the composed view.
type Store struct {
	shim *storage.Shim

	mu      sync.RWMutex
	sources aggregate.Sources
	view    domain.AggregatedView
	warm    bool
}

// NewStore builds the store, restoring the persisted snapshot when one is
// readable.
func NewStore(shim *storage.Shim) *Store {
	s := &Store{
		shim: shim,
		sources: aggregate.Sources{
			Failures:  make(map[string]string),
			FetchedAt: make(map[string]int64),
		},
		view: aggregate.Aggregate(aggregate.Sources{}),
	}
	s.restore()
	return s
}

// View returns the current composed view.
func (s *Store) View() domain.AggregatedView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Warm reports whether the current view came from a restored snapshot
// rather than live fetches.
func (s *Store) Warm() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warm
}

// SetWallet applies a fresh wallet fetch.
func (s *Store) SetWallet(w *domain.Wallet, fetchedAt int64) {
	s.apply(domain.SourceWallet, fetchedAt, func() {
		s.sources.Wallet = w
	})
}

// SetResources applies a fresh resource stats fetch.
func (s *Store) SetResources(r *domain.ResourceStats, fetchedAt int64) {
	s.apply(domain.SourceResources, fetchedAt, func() {
		s.sources.Resources = r
	})
}

// SetInventory applies a fresh inventory fetch.
func (s *Store) SetInventory(inv *domain.InventorySnapshot, fetchedAt int64) {
	s.apply(domain.SourceInventory, fetchedAt, func() {
		s.sources.Inventory = inv
	})
}

// SetSessions applies a fresh session list fetch.
func (s *Store) SetSessions(sessions []domain.MiningSession, fetchedAt int64) {
	s.apply(domain.SourceSessions, fetchedAt, func() {
		s.sources.Sessions = &aggregate.SessionSource{Sessions: sessions}
	})
}

// SetTools applies a fresh tool list fetch.
func (s *Store) SetTools(tools []domain.Tool, fetchedAt int64) {
	s.apply(domain.SourceTools, fetchedAt, func() {
		s.sources.Tools = &aggregate.ToolSource{Tools: tools}
	})
}

// SetFailure records a failed fetch. The source's last good value stays in
// place; only its status flips.
func (s *Store) SetFailure(source, message string) {
	s.mu.Lock()
	s.sources.Failures[source] = message
	s.recomputeLocked()
	snapshot := s.view
	s.mu.Unlock()

	s.persist(snapshot)
}

func (s *Store) apply(source string, fetchedAt int64, mutate func()) {
	s.mu.Lock()
	mutate()
	delete(s.sources.Failures, source)
	s.sources.FetchedAt[source] = fetchedAt
	s.warm = false
	s.recomputeLocked()
	snapshot := s.view
	s.mu.Unlock()

	s.persist(snapshot)
}

func (s *Store) recomputeLocked() {
	s.view = aggregate.Aggregate(s.sources)
	metrics.ViewRecomputes.Inc()
}

func (s *Store) persist(snapshot domain.AggregatedView) {
	if s.shim == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	s.shim.Set(SnapshotKey, string(data))
}

func (s *Store) restore() {
	if s.shim == nil {
		return
	}
	raw, ok := s.shim.Get(SnapshotKey)
	if !ok {
		return
	}

	var snapshot domain.AggregatedView
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logger.FromContext(context.Background()).Warn(LogMsgSnapshotCorrupted, "error", err)
		s.shim.Remove(SnapshotKey)
		return
	}
	// Restored data is stale: every source reads as not-OK until its first
	// live fetch overwrites the view.
	for source, status := range snapshot.Status {
		status.OK = false
		snapshot.Status[source] = status
	}
	s.view = snapshot
	s.warm = true
	logger.FromContext(context.Background()).Info(LogMsgSnapshotRestored)
}
