package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Transport errors
	ErrMsgTransport = "transport failure"

	// Authentication errors
	ErrMsgUnauthorized = "authentication required"

	// Business errors (backend rejected the request)
	ErrMsgBusiness = "backend rejected request"

	// Decode errors (payload did not match the endpoint contract)
	ErrMsgDecode = "malformed backend payload"

	// Source errors
	ErrMsgUnknownSource = "unknown data source"

	// Session errors
	ErrMsgSessionNotFound = "session not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
// The error class decides retry behavior: transport failures stay on the poll
// timer, unauthorized short-circuits polling until re-auth, business errors
// surface a message and are never retried automatically.
var (
	ErrTransport       = errors.New(ErrMsgTransport)
	ErrUnauthorized    = errors.New(ErrMsgUnauthorized)
	ErrBusiness        = errors.New(ErrMsgBusiness)
	ErrDecode          = errors.New(ErrMsgDecode)
	ErrUnknownSource   = errors.New(ErrMsgUnknownSource)
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
)
