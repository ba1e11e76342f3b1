package view

// SnapshotKey is the shim key holding the last computed view, used to warm
// the store across restarts.
const SnapshotKey = "view:snapshot"

// Log messages
const (
	LogMsgSnapshotRestored  = "View snapshot restored from storage"
	LogMsgSnapshotCorrupted = "Stored view snapshot unreadable, starting cold"
)
