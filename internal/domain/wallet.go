package domain

// Wallet holds the user's currency balances. TDB is the gold-backed utility
// token, YLD the governance/mining-reward token. Both are opaque amounts to
// this layer.
type Wallet struct {
	TDB float64 `json:"tdb"`
	YLD float64 `json:"yld"`
}
