package domain

// ResourceBalance tracks one resource kind for the authenticated user.
// Invariant: Available = Total - Frozen. The backend may omit any one of the
// three; the normalizer derives the missing value from the other two.
type ResourceBalance struct {
	Kind      string  `json:"kind"`
	Total     float64 `json:"total"`
	Frozen    float64 `json:"frozen"`
	Available float64 `json:"available"`
}

// ResourceSet maps resource kind to its balance. Missing kinds read as zero.
type ResourceSet map[string]ResourceBalance

// Get returns the balance for kind, zero-valued if absent.
func (rs ResourceSet) Get(kind string) ResourceBalance {
	if rs == nil {
		return ResourceBalance{Kind: kind}
	}
	if b, ok := rs[kind]; ok {
		return b
	}
	return ResourceBalance{Kind: kind}
}

// TotalAvailable sums the available amount across all kinds except YLD,
// which is a currency and reported with the wallet.
func (rs ResourceSet) TotalAvailable() float64 {
	var sum float64
	for kind, b := range rs {
		if kind == ResourceYLD {
			continue
		}
		sum += b.Available
	}
	return sum
}
