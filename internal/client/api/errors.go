package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned when the backend rejects the bearer
	// credential (HTTP 401). By the time a caller sees it, the stored
	// session has already been cleared; the only recovery is a fresh login.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnavailable is returned when no response reached the client at
	// all. Callers surface it with connectivity guidance; retrying the
	// action is safe.
	ErrUnavailable = errors.New("server unavailable")
)

// BackendError is a structured failure from a non-2xx response. Detail is
// the backend's human-readable message when one was parseable; otherwise
// only the status is carried.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
