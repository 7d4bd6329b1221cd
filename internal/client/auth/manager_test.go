package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedesk/internal/client/session"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewManager(session.NewFileStore(path)), path
}

func TestManager_StartsRestoring(t *testing.T) {
	m, _ := newTestManager(t)

	assert.True(t, m.Loading())
	assert.False(t, m.IsLoggedIn())
}

func TestManager_RestoreEmptyStore(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.Restore())

	assert.False(t, m.Loading())
	assert.False(t, m.IsLoggedIn())
	assert.Empty(t, m.Token())
	assert.Empty(t, m.Role())
}

func TestManager_SetAuthSurvivesReload(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, m.Restore())
	require.NoError(t, m.SetAuth("T1", "user"))

	// simulate a fresh process against the same store
	reloaded := NewManager(session.NewFileStore(path))
	require.NoError(t, reloaded.Restore())

	assert.True(t, reloaded.IsLoggedIn())
	assert.Equal(t, "T1", reloaded.Token())
	assert.Equal(t, "user", reloaded.Role())
}

func TestManager_LogoutSurvivesReload(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, m.Restore())
	require.NoError(t, m.SetAuth("T1", "user"))
	require.NoError(t, m.Logout())

	reloaded := NewManager(session.NewFileStore(path))
	require.NoError(t, reloaded.Restore())

	assert.False(t, reloaded.IsLoggedIn())
	assert.Empty(t, reloaded.Token())
	assert.Empty(t, reloaded.Role())
}

func TestManager_SetAuthRejectsPartialPair(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Restore())

	assert.Equal(t, ErrPartialSession, m.SetAuth("T1", ""))
	assert.Equal(t, ErrPartialSession, m.SetAuth("", "user"))

	// state untouched by rejected calls
	assert.False(t, m.IsLoggedIn())
}

func TestManager_ForceLogout(t *testing.T) {
	m, path := newTestManager(t)
	require.NoError(t, m.Restore())
	require.NoError(t, m.SetAuth("T1", "user"))

	m.ForceLogout()

	assert.False(t, m.IsLoggedIn())
	assert.Empty(t, m.Token())

	reloaded := NewManager(session.NewFileStore(path))
	require.NoError(t, reloaded.Restore())
	assert.False(t, reloaded.IsLoggedIn())
}
