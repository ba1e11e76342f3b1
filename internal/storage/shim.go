// Package storage provides the client-local key-value store. The Shim
// behaves like persistent storage but never returns an error to callers:
// when the persistent backend is unavailable or failing, operations degrade
// to an in-memory map that holds the data for the rest of the session.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/yieldland/minehub/internal/logger"
	"github.com/yieldland/minehub/internal/metrics"
)

// Backend is the persistent store underneath the shim. Any method may fail;
// the shim absorbs the failures.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
	Keys() ([]string, error)
}

// ErrQuotaExceeded marks a write rejected because the backend is out of
// space. It is the only write failure the shim reacts to beyond mirroring.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// EvictCandidateFunc picks at most one expirable key from the given key set,
// reading values through get (which serves the backend directly; calling the
// Shim from inside the picker would deadlock). Wired by the prefs package so
// quota pressure only ever evicts expired UI-preference flags, never
// arbitrary unrelated keys.
type EvictCandidateFunc func(keys []string, get func(key string) (string, bool)) (string, bool)

// Shim wraps a Backend with an in-memory fallback map. The memory map is
// mutated first on every write and is the source of truth whenever the
// backend is unavailable. All methods are safe for concurrent use.
type Shim struct {
	mu      sync.Mutex
	backend Backend
	memory  map[string]string

	// availability probe state, resolved lazily on first use and cached
	// for the remainder of the session
	probed    bool
	available bool

	evictCandidate EvictCandidateFunc
}

// NewShim creates a shim over the given backend. A nil backend means
// memory-only operation.
func NewShim(backend Backend) *Shim {
	return &Shim{
		backend: backend,
		memory:  make(map[string]string),
	}
}

// SetEvictCandidate installs the quota-pressure eviction picker.
func (s *Shim) SetEvictCandidate(fn EvictCandidateFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictCandidate = fn
}

// backendUsable runs the availability probe on first use. A single
// environment does not flip from unavailable to available mid-session, so
// the result is cached rather than re-probed on every call.
// Caller must hold s.mu.
func (s *Shim) backendUsable() bool {
	if s.probed {
		return s.available
	}
	s.probed = true
	if s.backend == nil {
		s.available = false
		return false
	}
	if err := s.backend.Set(probeKey, probeValue); err != nil {
		logger.FromContext(context.Background()).Warn(LogMsgBackendUnavailable, "error", err)
		s.available = false
		return false
	}
	_ = s.backend.Remove(probeKey)
	s.available = true
	return true
}

// Get returns the stored value for key. The backend's value wins when it has
// one; a backend miss that memory can serve repairs the backend (covers the
// backend being cleared externally mid-session).
func (s *Shim) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	memValue, memHit := s.memory[key]
	if !s.backendUsable() {
		metrics.StorageFallbackHits.Inc()
		return memValue, memHit
	}

	value, ok, err := s.backend.Get(key)
	if err != nil {
		return memValue, memHit
	}
	if ok {
		s.memory[key] = value
		return value, true
	}
	if memHit {
		_ = s.backend.Set(key, memValue)
		return memValue, true
	}
	return "", false
}

// Set stores the value. Memory is updated first, then mirrored best-effort;
// a quota failure evicts one expirable key and retries exactly once.
func (s *Shim) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory[key] = value
	if !s.backendUsable() {
		metrics.StorageFallbackHits.Inc()
		return
	}

	err := s.backend.Set(key, value)
	if err == nil || !errors.Is(err, ErrQuotaExceeded) {
		return
	}
	if s.evictCandidate == nil {
		return
	}
	keys, keysErr := s.backend.Keys()
	if keysErr != nil {
		return
	}
	victim, ok := s.evictCandidate(keys, s.backendGet)
	if !ok {
		return
	}
	if err := s.backend.Remove(victim); err != nil {
		return
	}
	// Single retry only; further quota failures leave memory as the record.
	_ = s.backend.Set(key, value)
}

// backendGet reads straight from the backend, swallowing errors. Used by the
// eviction picker while s.mu is held.
func (s *Shim) backendGet(key string) (string, bool) {
	value, ok, err := s.backend.Get(key)
	if err != nil {
		return "", false
	}
	return value, ok
}

// Remove deletes the key from memory and, best-effort, the backend.
func (s *Shim) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.memory, key)
	if s.backendUsable() {
		_ = s.backend.Remove(key)
	}
}

// Clear drops everything from memory and, best-effort, the backend.
func (s *Shim) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = make(map[string]string)
	if s.backendUsable() {
		_ = s.backend.Clear()
	}
}

// Keys returns the union of memory and backend keys. Backend keys cover
// state persisted by earlier sessions; memory keys cover this session's
// writes that the backend may have rejected.
func (s *Shim) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.memory))
	var keys []string
	for k := range s.memory {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if s.backendUsable() {
		if backendKeys, err := s.backend.Keys(); err == nil {
			for _, k := range backendKeys {
				if _, dup := seen[k]; !dup {
					keys = append(keys, k)
				}
			}
		}
	}
	return keys
}
