package domain

// ResourceStats is the normalized shape of the production resource-stats
// endpoint: per-kind balances, a wallet summary and the lifetime output
// counter. The lifetime counter covers settled history only; pending output
// of currently-active sessions is not yet folded into it.
type ResourceStats struct {
	Resources      ResourceSet `json:"resources"`
	Wallet         Wallet      `json:"wallet"`
	LifetimeOutput float64     `json:"lifetime_output"`
}
