package event

// SchemaVersion is the current event schema version.
const SchemaVersion = "1.0"

// Log messages
const (
	LogMsgSourceRefreshed    = "Source refreshed"
	LogMsgSourceFailed       = "Source fetch failed"
	LogMsgSettlementBoundary = "Settlement boundary reached"
)
