package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means the credential is missing or expired.
	// The caller must force re-authentication.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the identity does not own the acted-on set.
	ErrForbidden = errors.New("not the owner of this question set")

	// ErrNotFound means the set no longer exists on the server.
	ErrNotFound = errors.New("question set not found")
)

// StatusError reports a non-2xx response outside the mapped taxonomy.
// Transport failures and plain 5xx responses both land here; they are
// recoverable by a manual retry, never fatal.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned HTTP %d", e.Op, e.Status)
}

// mapStatus translates an error status code to the client taxonomy.
func mapStatus(op string, status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &StatusError{Op: op, Status: status}
	}
}
