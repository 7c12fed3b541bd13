package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Credentials is the stored identity record. A zero ExpiresAt means the
// token never expires client-side (the server may still reject it).
type Credentials struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// expired reports whether the credential is past its expiry at time now.
func (c Credentials) expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// FileGate is a Gate backed by a JSON credentials file. The expiry check
// runs once on load; an expired file is treated the same as a missing one.
type FileGate struct {
	path  string
	creds *Credentials
	now   func() time.Time
}

var _ Manager = (*FileGate)(nil)

// DefaultPath returns the credentials file path: QUIZDECK_CREDENTIALS if
// set, else the quizdeck directory under the user config dir.
func DefaultPath() (string, error) {
	if p := os.Getenv("QUIZDECK_CREDENTIALS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "quizdeck", "credentials.json"), nil
}

// Load reads the credentials file at path. A missing file yields a
// logged-out gate, not an error.
func Load(path string) (*FileGate, error) {
	g := &FileGate{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.Token == "" || creds.expired(g.now()) {
		return g, nil
	}

	g.creds = &creds
	return g, nil
}

// IsLoggedIn reports whether a usable credential was loaded.
func (g *FileGate) IsLoggedIn() bool {
	return g.creds != nil && !g.creds.expired(g.now())
}

// Identity returns the stored username, or "" when logged out.
func (g *FileGate) Identity() string {
	if !g.IsLoggedIn() {
		return ""
	}
	return g.creds.Username
}

// Credential returns the stored bearer token.
func (g *FileGate) Credential() (string, bool) {
	if !g.IsLoggedIn() {
		return "", false
	}
	return g.creds.Token, true
}

// Login writes the credential file and keeps the credential in memory.
func (g *FileGate) Login(creds Credentials) error {
	if creds.Token == "" {
		return errors.New("token must not be empty")
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	// Token file, keep it private.
	if err := os.WriteFile(g.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	g.creds = &creds
	return nil
}

// Logout removes the credential file. A missing file is not an error.
func (g *FileGate) Logout() error {
	g.creds = nil
	err := os.Remove(g.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
