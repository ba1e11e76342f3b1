package domain

// InventorySnapshot is a point-in-time aggregate of resources, tools and
// wallet balances plus the backend's appraisal of total value. It is
// recomputed wholesale on every fetch; there are no partial updates.
type InventorySnapshot struct {
	Resources  ResourceSet `json:"resources"`
	Tools      []Tool      `json:"tools"`
	Wallet     Wallet      `json:"wallet"`
	TotalValue float64     `json:"total_value"`
	FetchedAt  int64       `json:"fetched_at"`
}

// ToolCounts returns the number of tools per kind.
func (s InventorySnapshot) ToolCounts() map[string]int {
	counts := make(map[string]int, len(s.Tools))
	for _, t := range s.Tools {
		counts[t.Kind]++
	}
	return counts
}
