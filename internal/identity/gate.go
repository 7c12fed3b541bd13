// Package identity holds the client's view of the signed-in user: who they
// are and the bearer credential used on authenticated calls. The rest of the
// application consumes it through the Gate interface so session and history
// logic can run against a fake identity in tests.
package identity

import "errors"

// ErrLoginRequired signals that an action needs a credential which is
// missing or expired. Callers present a "sign in" state, not an error page.
var ErrLoginRequired = errors.New("sign in required")

// Gate supplies the current login status and credential. Implementations
// must report a credential as absent once it has expired.
type Gate interface {
	// IsLoggedIn reports whether a usable credential is present.
	IsLoggedIn() bool

	// Identity returns the signed-in user's name, or "" when logged out.
	Identity() string

	// Credential returns the bearer token, or ok=false when logged out.
	Credential() (token string, ok bool)
}

// Manager extends Gate with the login/logout lifecycle.
type Manager interface {
	Gate

	// Login stores a credential, replacing any existing one.
	Login(creds Credentials) error

	// Logout discards the stored credential.
	Logout() error
}
