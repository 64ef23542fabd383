package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deskhide.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewStore("  ")
	assert.Error(t, err)
}

func TestSetGetAndReload(t *testing.T) {
	store, path := newTestStore(t)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, store.Set(a, true))
	require.NoError(t, store.Set(a, true))
	require.NoError(t, store.Set(b, true))
	require.NoError(t, store.Set(b, false))

	assert.True(t, store.Get(a))
	assert.False(t, store.Get(b))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Load())
	assert.Equal(t, []uuid.UUID{a}, reopened.IDs())
}

func TestRemoveAndMalformedRows(t *testing.T) {
	store, _ := newTestStore(t)
	a := uuid.New()
	require.NoError(t, store.Set(a, true))
	_, err := store.db.Exec("INSERT INTO hidden_desktops (id) VALUES ('garbage')")
	require.NoError(t, err)

	require.NoError(t, store.Load())
	assert.Equal(t, []uuid.UUID{a}, store.IDs())

	require.NoError(t, store.Remove(a))
	require.NoError(t, store.Load())
	assert.Empty(t, store.IDs())
}

func TestImport(t *testing.T) {
	store, _ := newTestStore(t)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, store.Import([]uuid.UUID{a, b, a}))
	assert.True(t, store.Get(a))
	assert.True(t, store.Get(b))

	require.NoError(t, store.Load())
	assert.Len(t, store.IDs(), 2)
}
