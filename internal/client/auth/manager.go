package auth

import (
	"errors"
	"sync"

	"notedesk/internal/client/session"
)

// ErrPartialSession is returned when SetAuth is called with only one of
// token and role set.
var ErrPartialSession = errors.New("token and role must be set together")

// Manager holds the client's authentication state for the lifetime of the
// process. It is constructed once at startup and passed down explicitly;
// there is no package-level instance.
//
// States: restoring (until Restore completes), anonymous, authenticated.
// Every transition persists through the session store before the in-memory
// state changes, so a restore after a crash always agrees with the last
// completed transition.
type Manager struct {
	mu      sync.Mutex
	store   session.Store
	sess    session.Session
	loading bool
}

// NewManager creates a manager in the restoring state.
func NewManager(store session.Store) *Manager {
	return &Manager{
		store:   store,
		loading: true,
	}
}

// Restore loads the persisted session and leaves the restoring state.
// Call once at startup before consulting any other accessor.
func (m *Manager) Restore() error {
	sess, err := m.store.Restore()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = sess
	m.loading = false
	return err
}

// SetAuth atomically sets or clears the session. Both values set means
// login, both empty means logout; a partial pair is rejected so a token
// can never exist without a role.
func (m *Manager) SetAuth(token, role string) error {
	if (token == "") != (role == "") {
		return ErrPartialSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if token == "" {
		if err := m.store.Clear(); err != nil {
			return err
		}
		m.sess = session.Session{}
		m.loading = false
		return nil
	}

	if err := m.store.Save(token, role); err != nil {
		return err
	}
	m.sess = session.Session{Token: token, Role: role}
	m.loading = false
	return nil
}

// Logout clears the session.
func (m *Manager) Logout() error {
	return m.SetAuth("", "")
}

// ForceLogout tears the session down unconditionally. Used when the
// backend rejects the token; the store error, if any, is ignored because
// the in-memory session must drop regardless.
func (m *Manager) ForceLogout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.store.Clear()
	m.sess = session.Session{}
	m.loading = false
}

// Token returns the current access token, empty when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Token
}

// Role returns the current role, empty when anonymous.
func (m *Manager) Role() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.Role
}

// IsLoggedIn reports whether a session is present.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.IsLoggedIn()
}

// Loading reports whether the initial restore is still pending.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
