package backend

import "errors"

// Sentinel errors for the backend error taxonomy. Callers match with
// errors.Is to pick the right user-facing message.
var (
	// ErrUnauthorized means the backend rejected the request (HTTP 401);
	// the user needs to fix their API credentials.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrUnreachable means the backend could not be contacted at all.
	ErrUnreachable = errors.New("backend unreachable")

	// ErrTimeout means the backend accepted the request but did not
	// answer within the configured bound.
	ErrTimeout = errors.New("backend request timed out")
)
