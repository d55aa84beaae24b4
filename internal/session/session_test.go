package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpen_MissingFileIsSignedOut(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.SignedIn() {
		t.Fatalf("SignedIn = true, want false")
	}
	want := filepath.Join(home, ".config", "gametrackr", "session.toml")
	if s.Path() != want {
		t.Fatalf("Path = %q, want %q", s.Path(), want)
	}
}

func TestSignIn_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.SignIn("  tok-123 ", User{Username: " link ", Email: "link@hyrule.example"}); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("session file mode = %v, want 0600", info.Mode().Perm())
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	want := Record{Token: "tok-123", User: &User{Username: "link", Email: "link@hyrule.example"}}
	if diff := cmp.Diff(want, reopened.Snapshot()); diff != "" {
		t.Fatalf("reloaded record mismatch (-want +got):\n%s", diff)
	}
	if reopened.Snapshot().DisplayName() != "link" {
		t.Fatalf("DisplayName = %q, want link", reopened.Snapshot().DisplayName())
	}
}

func TestSignIn_RequiresTokenAndUsername(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.SignIn("", User{Username: "a"}); err == nil {
		t.Fatalf("SignIn without token returned nil error")
	}
	if err := s.SignIn("t", User{}); err == nil {
		t.Fatalf("SignIn without username returned nil error")
	}
	if s.SignedIn() {
		t.Fatalf("SignedIn = true after rejected sign-in")
	}
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "session.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.SignIn("tok", User{Username: "zelda"}); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	snap := s.Snapshot()
	snap.User.Username = "ganon"
	if got := s.Snapshot().User.Username; got != "zelda" {
		t.Fatalf("Snapshot should clone user; got %q want zelda", got)
	}
}

func TestSignOut_ClearsRecordAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.SignIn("tok", User{Username: "zelda"}); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	if err := s.SignOut(); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if s.SignedIn() || s.Snapshot().User != nil {
		t.Fatalf("record after SignOut = %+v, want empty", s.Snapshot())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file still present: %v", err)
	}

	// Signing out twice is harmless.
	if err := s.SignOut(); err != nil {
		t.Fatalf("second SignOut returned error: %v", err)
	}
}

func TestOpen_PartialRecordIsSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("token = \"orphan\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.SignedIn() {
		t.Fatalf("SignedIn = true for a record without a user")
	}
}

func TestOpen_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("token = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "parse session") {
		t.Fatalf("Open error = %v, want parse session error", err)
	}
}
