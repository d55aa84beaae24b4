// Package session keeps the signed-in user's token and profile.
// The record is stored in ~/.config/gametrackr/session.toml.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// User is the profile shown in the navbar.
type User struct {
	Username string `toml:"username"`
	Email    string `toml:"email,omitempty"`
}

// Record is the persisted session.
type Record struct {
	Token string `toml:"token"`
	User  *User  `toml:"user,omitempty"`
}

// SignedIn reports whether both a token and a user are present.
func (r Record) SignedIn() bool {
	return strings.TrimSpace(r.Token) != "" && r.User != nil && strings.TrimSpace(r.User.Username) != ""
}

// DisplayName returns the username, or "" when signed out.
func (r Record) DisplayName() string {
	if r.User == nil {
		return ""
	}
	return r.User.Username
}

const defaultSessionPath = "~/.config/gametrackr/session.toml"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Session coordinates access to the record between the UI and CLI commands.
type Session struct {
	mu     sync.RWMutex
	path   string
	record Record
}

// Open reads the session file at path. A missing file yields a signed-out
// session. A record missing either the token or the user is treated as
// signed out.
func Open(path string) (*Session, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	s := &Session{path: resolved}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var rec Record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if rec.SignedIn() {
		s.record = cloneRecord(rec)
	}
	return s, nil
}

// Path returns the resolved session file path.
func (s *Session) Path() string {
	return s.path
}

// Snapshot returns a copy of the current record.
func (s *Session) Snapshot() Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecord(s.record)
}

// SignedIn reports whether a user is signed in.
func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.SignedIn()
}

// SignIn stores token and user and persists them.
func (s *Session) SignIn(token string, user User) error {
	token = strings.TrimSpace(token)
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if token == "" {
		return fmt.Errorf("token is required")
	}
	if user.Username == "" {
		return fmt.Errorf("username is required")
	}

	rec := Record{Token: token, User: &user}
	data, err := toml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.mu.Lock()
	s.record = rec
	s.mu.Unlock()
	return nil
}

// SignOut clears the record and removes the session file.
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.record = Record{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func cloneRecord(r Record) Record {
	dup := Record{Token: r.Token}
	if r.User != nil {
		u := *r.User
		dup.User = &u
	}
	return dup
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
