package domain

import "time"

// MiningSession is a server-tracked period during which tools on a land
// produce a resource over time. Pending output accrues only while the
// session is active and is monotonically non-decreasing until a collect
// or stop event resets it.
type MiningSession struct {
	ID           string    `json:"id"`
	LandID       string    `json:"land_id"`
	ToolIDs      []string  `json:"tool_ids"`
	ResourceKind string    `json:"resource_kind"`
	OutputRate   float64   `json:"output_rate"`
	Pending      float64   `json:"pending_output"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at,omitzero"`
	Status       string    `json:"status"`
}

// IsActive reports whether the session is currently accruing output.
func (s MiningSession) IsActive() bool {
	return s.Status == SessionActive
}
