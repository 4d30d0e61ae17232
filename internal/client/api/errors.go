package api

import (
	"errors"
	"fmt"
)

// Sentinel errors let callers tell transport failures (worth retrying later)
// apart from authorization failures (worth refreshing the token for).
var (
	// ErrUnavailable wraps any failure to obtain an HTTP response at all:
	// connection refused, DNS failure, request timeout.
	ErrUnavailable = errors.New("server unavailable")

	// ErrForbidden wraps HTTP 403 responses, the server's signal that the
	// access token is expired or otherwise rejected.
	ErrForbidden = errors.New("forbidden")
)

// APIError is any other non-2xx server response. It is terminal for the
// call: neither a retry nor a token refresh will change the outcome.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}
