package domain

// Tool is a synthesized production tool (pickaxe/axe/hoe).
// Created server-side via synthesis; the client only observes it.
type Tool struct {
	ID            string  `json:"id"`
	Kind          string  `json:"kind"`
	Durability    float64 `json:"durability"`
	MaxDurability float64 `json:"max_durability"`
	Status        string  `json:"status"`
	OwnerID       string  `json:"owner_id"`
}

// IsUsable reports whether the tool can join a mining session.
func (t Tool) IsUsable() bool {
	return t.Status != ToolStatusDamaged && t.Durability > 0
}
