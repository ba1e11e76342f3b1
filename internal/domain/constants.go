package domain

// Resource kinds produced by lands and consumed by synthesis.
// These match the backend's resource_type values.
const (
	ResourceWood  = "wood"
	ResourceIron  = "iron"
	ResourceStone = "stone"
	ResourceGrain = "grain"
	ResourceSeed  = "seed"
	ResourceBrick = "brick"
	ResourceYLD   = "yld"
)

// Tool kinds
const (
	ToolPickaxe = "pickaxe"
	ToolAxe     = "axe"
	ToolHoe     = "hoe"
)

// Tool status values
const (
	ToolStatusIdle    = "idle"
	ToolStatusDamaged = "damaged"
)

// Mining session status values
const (
	SessionActive    = "active"
	SessionPaused    = "paused"
	SessionCompleted = "completed"
	SessionStopped   = "stopped"
)

// Data source names used by the poller, aggregator and metrics labels
const (
	SourceWallet    = "wallet"
	SourceResources = "resources"
	SourceInventory = "inventory"
	SourceSessions  = "sessions"
	SourceTools     = "tools"
)

// KnownSources lists every polled data source.
var KnownSources = []string{
	SourceWallet,
	SourceResources,
	SourceInventory,
	SourceSessions,
	SourceTools,
}
