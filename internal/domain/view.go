package domain

// SourceStatus carries the per-source outcome of the last fetch. A failed
// source never blanks the rest of the view; its fields default to zero and
// the failure is recorded here (transient failures render as an inline
// placeholder for just the affected panel).
type SourceStatus struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	FetchedAt int64  `json:"fetched_at,omitempty"`
}

// AggregatedView is the unified view model composed from all polled sources.
type AggregatedView struct {
	Wallet    Wallet            `json:"wallet"`
	Resources ResourceSet       `json:"resources"`
	Inventory InventorySnapshot `json:"inventory"`
	Sessions  []MiningSession   `json:"sessions"`
	Tools     []Tool            `json:"tools"`

	// Cross-source derived sums
	ActiveSessions int     `json:"active_sessions"`
	PendingOutput  float64 `json:"pending_output"`
	LifetimeOutput float64 `json:"lifetime_output"`
	TotalOutput    float64 `json:"total_output"`
	TotalValue     float64 `json:"total_value"`

	// Per-source fetch status, keyed by source name
	Status map[string]SourceStatus `json:"status"`
}

// SourceOK reports whether the named source populated successfully.
func (v AggregatedView) SourceOK(source string) bool {
	return v.Status[source].OK
}
