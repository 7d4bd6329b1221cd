package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestFileStore_SaveRestore(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("T1", "user"))

	restored, err := store.Restore()
	require.NoError(t, err)
	assert.Equal(t, "T1", restored.Token)
	assert.Equal(t, "user", restored.Role)
	assert.True(t, restored.IsLoggedIn())
}

func TestFileStore_RestoreEmpty(t *testing.T) {
	store := newTestStore(t)

	restored, err := store.Restore()
	require.NoError(t, err)
	assert.Empty(t, restored.Token)
	assert.Empty(t, restored.Role)
	assert.False(t, restored.IsLoggedIn())
}

func TestFileStore_Clear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("T1", "user"))
	require.NoError(t, store.Clear())

	restored, err := store.Restore()
	require.NoError(t, err)
	assert.False(t, restored.IsLoggedIn())

	// clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("T1", "user"))
	require.NoError(t, store.Save("T2", "admin"))

	restored, err := store.Restore()
	require.NoError(t, err)
	assert.Equal(t, "T2", restored.Token)
	assert.Equal(t, "admin", restored.Role)
}

func TestFileStore_CorruptFileRestoresLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := NewFileStore(path)
	restored, err := store.Restore()
	require.NoError(t, err)
	assert.False(t, restored.IsLoggedIn())
}

func TestFileStore_PartialPairRestoresLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"T1","role":""}`), 0o600))

	store := NewFileStore(path)
	restored, err := store.Restore()
	require.NoError(t, err)
	assert.False(t, restored.IsLoggedIn())
	assert.Empty(t, restored.Token)
}
