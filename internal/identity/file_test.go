package identity

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "credentials.json")
}

func TestLoad_MissingFile(t *testing.T) {
	g, err := Load(tempPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.IsLoggedIn() {
		t.Error("expected logged-out gate for missing file")
	}
	if _, ok := g.Credential(); ok {
		t.Error("expected no credential")
	}
	if g.Identity() != "" {
		t.Errorf("Identity() = %q, want empty", g.Identity())
	}
}

func TestLoginThenLoad(t *testing.T) {
	path := tempPath(t)

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = g.Login(Credentials{Username: "an", Token: "tok-1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !g.IsLoggedIn() {
		t.Fatal("expected logged-in gate after Login")
	}

	// A fresh load sees the stored credential.
	g2, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g2.Identity() != "an" {
		t.Errorf("Identity() = %q, want %q", g2.Identity(), "an")
	}
	token, ok := g2.Credential()
	if !ok || token != "tok-1" {
		t.Errorf("Credential() = %q, %v, want tok-1, true", token, ok)
	}
}

func TestLoad_ExpiredCredential(t *testing.T) {
	path := tempPath(t)

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = g.Login(Credentials{
		Username:  "an",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Expiry is checked on load: the stale token must not surface.
	g2, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g2.IsLoggedIn() {
		t.Error("expected expired credential to read as logged out")
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	g, err := Load(tempPath(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := g.Login(Credentials{Username: "an"}); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestLogout(t *testing.T) {
	path := tempPath(t)

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := g.Login(Credentials{Username: "an", Token: "tok-1"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := g.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if g.IsLoggedIn() {
		t.Error("expected logged-out gate after Logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected credentials file to be removed")
	}

	// Logging out twice is fine.
	if err := g.Logout(); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}
