package normalize

// Canonical field names
const (
	FieldID            = "id"
	FieldKind          = "kind"
	FieldLandID        = "land_id"
	FieldToolIDs       = "tool_ids"
	FieldResourceKind  = "resource_kind"
	FieldOutputRate    = "output_rate"
	FieldPending       = "pending_output"
	FieldStartedAt     = "started_at"
	FieldEndedAt       = "ended_at"
	FieldStatus        = "status"
	FieldDurability    = "durability"
	FieldMaxDurability = "max_durability"
	FieldOwnerID       = "owner_id"
	FieldTotal         = "total"
	FieldFrozen        = "frozen"
	FieldAvailable     = "available"
	FieldTDB           = "tdb"
	FieldYLD           = "yld"
	FieldResources     = "resources"
	FieldTools         = "tools"
	FieldWallet        = "wallet"
	FieldLifetime      = "lifetime_output"
	FieldTotalValue    = "total_value"
)

// Alias tables. Order is the priority order: the first listed alias is the
// newest field name and wins when the backend sends both spellings.

// SessionTable covers the mining session record. accumulated_output
// superseded total_output; started_at/ended_at superseded start_time/end_time.
var SessionTable = Table{
	{Canonical: FieldID, Aliases: []string{"id", "session_id"}},
	{Canonical: FieldLandID, Aliases: []string{"land_id", "land"}},
	{Canonical: FieldToolIDs, Aliases: []string{"tool_ids", "tools"}},
	{Canonical: FieldResourceKind, Aliases: []string{"resource_kind", "resource_type"}},
	{Canonical: FieldOutputRate, Aliases: []string{"output_rate", "rate"}},
	{Canonical: FieldPending, Aliases: []string{"accumulated_output", "total_output"}},
	{Canonical: FieldStartedAt, Aliases: []string{"started_at", "start_time"}},
	{Canonical: FieldEndedAt, Aliases: []string{"ended_at", "end_time"}},
	{Canonical: FieldStatus, Aliases: []string{"status", "state"}},
}

// ToolTable covers the tool record. current_durability superseded durability.
var ToolTable = Table{
	{Canonical: FieldID, Aliases: []string{"id", "tool_id"}},
	{Canonical: FieldKind, Aliases: []string{"tool_type", "kind"}},
	{Canonical: FieldDurability, Aliases: []string{"current_durability", "durability"}},
	{Canonical: FieldMaxDurability, Aliases: []string{"max_durability", "durability_max"}},
	{Canonical: FieldStatus, Aliases: []string{"status", "tool_status"}},
	{Canonical: FieldOwnerID, Aliases: []string{"owner_id", "owner"}},
}

// BalanceTable covers one resource balance entry.
var BalanceTable = Table{
	{Canonical: FieldKind, Aliases: []string{"resource_type", "kind"}},
	{Canonical: FieldTotal, Aliases: []string{"total_amount", "total"}},
	{Canonical: FieldFrozen, Aliases: []string{"frozen_amount", "frozen"}},
	{Canonical: FieldAvailable, Aliases: []string{"available_amount", "available"}},
}

// WalletTable covers the wallet summary.
var WalletTable = Table{
	{Canonical: FieldTDB, Aliases: []string{"tdb_balance", "tdb"}},
	{Canonical: FieldYLD, Aliases: []string{"yld_balance", "yld"}},
}

// StatsTable covers the resource-stats envelope. lifetime_output superseded
// the overloaded total_output counter.
var StatsTable = Table{
	{Canonical: FieldResources, Aliases: []string{"resources", "resource_stats"}},
	{Canonical: FieldWallet, Aliases: []string{"wallet", "wallet_summary"}},
	{Canonical: FieldLifetime, Aliases: []string{"lifetime_output", "total_output"}},
}

// InventoryTable covers the inventory snapshot envelope.
var InventoryTable = Table{
	{Canonical: FieldResources, Aliases: []string{"resources", "resource_list"}},
	{Canonical: FieldTools, Aliases: []string{"tools", "tool_list"}},
	{Canonical: FieldWallet, Aliases: []string{"wallet", "wallet_summary"}},
	{Canonical: FieldTotalValue, Aliases: []string{"total_value", "inventory_value"}},
}
