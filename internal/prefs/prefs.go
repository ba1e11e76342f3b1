// Package prefs stores small client-local UI preference flags (for example
// "beta notice dismissed") on the storage shim. Flags are time-boxed: a
// dismissal older than the TTL reads as unset. Nothing here ever syncs to
// the backend.
package prefs

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/yieldland/minehub/internal/storage"
)

// DismissTTL is how long a dismissal stays effective.
const DismissTTL = 24 * time.Hour

// KeyPrefix namespaces preference keys on the shim. Only keys under this
// prefix are ever candidates for quota eviction.
const KeyPrefix = "prefs:"

// flagRecord is the JSON payload stored per flag.
type flagRecord struct {
	DismissedAt int64 `json:"dismissed_at"`
}

// Store reads and writes preference flags through the shim.
type Store struct {
	shim *storage.Shim

	// clock is only used by the quota evictor, which has no caller-supplied
	// time. All other methods take now explicitly.
	clock func() time.Time
}

// NewStore creates a preference store and installs its expired-flag picker
// as the shim's quota eviction candidate.
func NewStore(shim *storage.Shim) *Store {
	s := &Store{shim: shim, clock: time.Now}
	shim.SetEvictCandidate(s.evictCandidate)
	return s
}

// SetClock overrides the evictor's clock. Test hook.
func (s *Store) SetClock(clock func() time.Time) {
	s.clock = clock
}

// Dismiss records that the named notice was dismissed at now.
func (s *Store) Dismiss(name string, now time.Time) {
	payload, err := json.Marshal(flagRecord{DismissedAt: now.Unix()})
	if err != nil {
		return
	}
	s.shim.Set(KeyPrefix+name, string(payload))
}

// IsDismissed reports whether the named notice is dismissed and not yet
// expired as of now.
func (s *Store) IsDismissed(name string, now time.Time) bool {
	raw, ok := s.shim.Get(KeyPrefix + name)
	if !ok {
		return false
	}
	var record flagRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return false
	}
	return !expired(record, now)
}

// Reset clears the named flag.
func (s *Store) Reset(name string) {
	s.shim.Remove(KeyPrefix + name)
}

// evictCandidate picks one expired preference key from the given key set.
// It never selects keys outside the prefs namespace. Values are read through
// get, not the shim, because the shim's lock is held during eviction.
func (s *Store) evictCandidate(keys []string, get func(key string) (string, bool)) (string, bool) {
	now := s.clock()
	for _, key := range keys {
		if !strings.HasPrefix(key, KeyPrefix) {
			continue
		}
		raw, ok := get(key)
		if !ok {
			continue
		}
		var record flagRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			// Unreadable records under our namespace are fair game too.
			return key, true
		}
		if expired(record, now) {
			return key, true
		}
	}
	return "", false
}

func expired(record flagRecord, now time.Time) bool {
	dismissedAt := time.Unix(record.DismissedAt, 0)
	return now.Sub(dismissedAt) >= DismissTTL
}
