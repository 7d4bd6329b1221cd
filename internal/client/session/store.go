package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the persisted credential pair. It is only ever fully set
// (logged in) or fully empty (logged out); a token without a role is not
// representable through Store or Manager.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// IsLoggedIn reports whether the session carries credentials.
func (s Session) IsLoggedIn() bool {
	return s.Token != ""
}

// Store persists a session across process restarts.
type Store interface {
	// Save persists token and role as one unit.
	Save(token, role string) error
	// Clear removes both entries.
	Clear() error
	// Restore reads the stored session, returning an empty session if
	// nothing was saved.
	Restore() (Session, error)
}

// FileStore keeps the session in a JSON file with "token" and "role" keys.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "notedesk", "session.json"), nil
}

// Save writes both values atomically via a temp file rename, so a crash
// mid-write never leaves a half-updated session on disk.
func (s *FileStore) Save(token, role string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	payload, err := json.Marshal(Session{Token: token, Role: role})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore reads the session file. A missing or unreadable file restores to
// logged out rather than failing, matching a cleared store.
func (s *FileStore) Restore() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// corrupt file, treat as logged out
		return Session{}, nil
	}
	if sess.Token == "" || sess.Role == "" {
		// partial pair is not a valid session
		return Session{}, nil
	}
	return sess, nil
}
