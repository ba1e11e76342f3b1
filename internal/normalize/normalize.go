// Package normalize resolves the backend's legacy/alias field names into the
// canonical domain shapes. Every payload crosses this boundary exactly once;
// downstream code never probes raw maps.
package normalize

import (
	"strconv"
	"time"

	"github.com/yieldland/minehub/internal/domain"
)

// Raw is a decoded backend record with an unknown, possibly partial key set.
type Raw map[string]any

// FieldSpec maps one canonical field to its alias keys. Aliases are probed
// in declared order and the first defined value wins, so the newest field
// name must be listed first. The winner for each field is fixed here, not
// inferred at runtime.
type FieldSpec struct {
	Canonical string
	Aliases   []string
}

// Table is the ordered alias mapping for one entity.
type Table []FieldSpec

// Apply produces a record containing only canonical fields. Missing fields
// are simply absent; Apply never fails.
func Apply(raw Raw, table Table) Raw {
	out := make(Raw, len(table))
	for _, spec := range table {
		for _, alias := range spec.Aliases {
			if v, ok := raw[alias]; ok && v != nil {
				out[spec.Canonical] = v
				break
			}
		}
	}
	return out
}

// Number coerces a backend value to float64. The backend emits numerics both
// as JSON numbers and as decimal strings; anything unparseable normalizes to
// 0 so NaN never reaches the UI.
func Number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Str coerces a backend value to string, defaulting to "".
func Str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Timestamp coerces RFC3339 strings and unix-seconds numbers to time.Time.
// Unparseable input yields the zero time.
func Timestamp(v any) time.Time {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	case float64:
		if t <= 0 {
			return time.Time{}
		}
		return time.Unix(int64(t), 0).UTC()
	default:
		return time.Time{}
	}
}

// StrList coerces a backend value to a string slice, tolerating both
// []any and []string encodings.
func StrList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Session normalizes a raw mining session record.
func Session(raw Raw) domain.MiningSession {
	r := Apply(raw, SessionTable)
	return domain.MiningSession{
		ID:           Str(r[FieldID]),
		LandID:       Str(r[FieldLandID]),
		ToolIDs:      StrList(r[FieldToolIDs]),
		ResourceKind: Str(r[FieldResourceKind]),
		OutputRate:   Number(r[FieldOutputRate]),
		Pending:      Number(r[FieldPending]),
		StartedAt:    Timestamp(r[FieldStartedAt]),
		EndedAt:      Timestamp(r[FieldEndedAt]),
		Status:       Str(r[FieldStatus]),
	}
}

// Tool normalizes a raw tool record.
func Tool(raw Raw) domain.Tool {
	r := Apply(raw, ToolTable)
	return domain.Tool{
		ID:            Str(r[FieldID]),
		Kind:          Str(r[FieldKind]),
		Durability:    Number(r[FieldDurability]),
		MaxDurability: Number(r[FieldMaxDurability]),
		Status:        Str(r[FieldStatus]),
		OwnerID:       Str(r[FieldOwnerID]),
	}
}

// Balance normalizes a raw resource balance record. When the backend omits
// one of total/frozen/available, the missing value is derived from the other
// two so the invariant available = total - frozen always holds on output.
func Balance(raw Raw) domain.ResourceBalance {
	r := Apply(raw, BalanceTable)
	b := domain.ResourceBalance{
		Kind:      Str(r[FieldKind]),
		Total:     Number(r[FieldTotal]),
		Frozen:    Number(r[FieldFrozen]),
		Available: Number(r[FieldAvailable]),
	}

	_, hasTotal := r[FieldTotal]
	_, hasFrozen := r[FieldFrozen]
	_, hasAvailable := r[FieldAvailable]
	switch {
	case hasTotal && hasFrozen && !hasAvailable:
		b.Available = b.Total - b.Frozen
	case hasTotal && hasAvailable && !hasFrozen:
		b.Frozen = b.Total - b.Available
	case hasFrozen && hasAvailable && !hasTotal:
		b.Total = b.Frozen + b.Available
	}
	return b
}

// Wallet normalizes a raw wallet record.
func Wallet(raw Raw) domain.Wallet {
	r := Apply(raw, WalletTable)
	return domain.Wallet{
		TDB: Number(r[FieldTDB]),
		YLD: Number(r[FieldYLD]),
	}
}

// rawList coerces a nested value to a list of raw records, dropping
// non-object entries.
func rawList(v any) []Raw {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Raw, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Raw(m))
		}
	}
	return out
}

func rawMap(v any) Raw {
	if m, ok := v.(map[string]any); ok {
		return Raw(m)
	}
	return nil
}

// Stats normalizes the resource-stats endpoint envelope: per-kind balances,
// a wallet summary and the lifetime output counter.
func Stats(raw Raw) domain.ResourceStats {
	r := Apply(raw, StatsTable)
	stats := domain.ResourceStats{
		Resources:      domain.ResourceSet{},
		Wallet:         Wallet(rawMap(r[FieldWallet])),
		LifetimeOutput: Number(r[FieldLifetime]),
	}
	for _, entry := range rawList(r[FieldResources]) {
		b := Balance(entry)
		if b.Kind == "" {
			continue
		}
		stats.Resources[b.Kind] = b
	}
	return stats
}

// Inventory normalizes the inventory snapshot envelope. fetchedAt is the
// unix timestamp the caller observed the response at.
func Inventory(raw Raw, fetchedAt int64) domain.InventorySnapshot {
	r := Apply(raw, InventoryTable)
	snapshot := domain.InventorySnapshot{
		Resources:  domain.ResourceSet{},
		Wallet:     Wallet(rawMap(r[FieldWallet])),
		TotalValue: Number(r[FieldTotalValue]),
		FetchedAt:  fetchedAt,
	}
	for _, entry := range rawList(r[FieldResources]) {
		b := Balance(entry)
		if b.Kind == "" {
			continue
		}
		snapshot.Resources[b.Kind] = b
	}
	for _, entry := range rawList(r[FieldTools]) {
		snapshot.Tools = append(snapshot.Tools, Tool(entry))
	}
	return snapshot
}
