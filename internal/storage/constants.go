package storage

// Availability probe key/value. Written and removed once per session on
// first use of the shim.
const (
	probeKey   = "__minehub_probe__"
	probeValue = "1"
)

// Log Messages
const (
	LogMsgBackendUnavailable = "Persistent storage unavailable, using in-memory fallback"
	LogMsgBackendOpenFailed  = "Failed to open storage backend"
)
