package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain
// consistency.
const (
	ErrMsgInvalidRequest  = "Invalid request body"
	ErrMsgUnknownError    = "Unknown error"
	ErrMsgGenericError    = "Something went wrong"
	ErrMsgBackendDown     = "Backend is unreachable. Showing last known data."
	ErrMsgBackendAuth     = "Backend rejected our credentials. Check the configured token."
	ErrMsgBackendResponse = "Backend returned an unreadable response."
	ErrMsgUnknownSource   = "Unknown data source"
	ErrMsgSessionNotFound = "Mining session not found"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
)

// Success messages for API responses
const (
	MsgRefreshTriggered = "Refresh triggered"
	MsgRefreshCoalesced = "Refresh already in flight"
	MsgSourceEnabled    = "Source polling enabled"
	MsgSourceDisabled   = "Source polling disabled"
	MsgNoticeDismissed  = "Notice dismissed"
	MsgNoticeReset      = "Notice reset"
	MsgSessionStopped   = "Session stopped"
	MsgOutputCollected  = "Output collected"
	MsgToolsSynthesized = "Tools synthesized"
)
