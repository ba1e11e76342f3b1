package server

// HeaderAPIKey is the header clients authenticate with.
const HeaderAPIKey = "X-API-Key"

// PublicPaths are served without an API key.
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// MaxRequestBodyBytes caps request bodies; every payload this service
// accepts is a small JSON command.
const MaxRequestBodyBytes = 1 << 20

// Error messages
const (
	ErrMsgUnauthorized = "Unauthorized"
)

// Log messages
const (
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgServerStarting   = "Server starting"
)
