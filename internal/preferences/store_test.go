package preferences

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", FileName)
	store := NewFileStore(path)
	require.NoError(t, store.Load())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
	assert.Empty(t, store.IDs())
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	path := filepath.Join(t.TempDir(), FileName)
	content := a.String() + "\n\nnot-a-guid\n  " + b.String() + "  \n{" + a.String() + "}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewFileStore(path)
	require.NoError(t, store.Load())
	assert.True(t, store.Get(a))
	assert.True(t, store.Get(b))
	assert.Len(t, store.IDs(), 2)
}

func TestSetIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	store := NewFileStore(path)
	require.NoError(t, store.Load())
	a := uuid.New()

	require.NoError(t, store.Set(a, true))
	require.NoError(t, store.Set(a, true))
	assert.Equal(t, []string{a.String()}, readLines(t, path))

	require.NoError(t, store.Set(a, false))
	require.NoError(t, store.Set(a, false))
	assert.Empty(t, readLines(t, path))
	assert.False(t, store.Get(a))
}

func TestNoopSetSkipsRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	store := NewFileStore(path)
	require.NoError(t, store.Load())
	a := uuid.New()
	require.NoError(t, store.Set(a, true))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))
	require.NoError(t, store.Set(a, true))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.WithinDuration(t, past, info.ModTime(), time.Second)
}

func TestSetNetEffectSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	store := NewFileStore(path)
	require.NoError(t, store.Load())
	a, b := uuid.New(), uuid.New()

	require.NoError(t, store.Set(a, true))
	require.NoError(t, store.Set(b, false))

	reloaded := NewFileStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []desktop.ID{a}, reloaded.IDs())
	assert.True(t, reloaded.Get(a))
	assert.False(t, reloaded.Get(b))
}

func TestRemovePurgesDuplicates(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(a.String()+"\n"+b.String()+"\n"+a.String()+"\n"), 0o644))

	store := NewFileStore(path)
	require.NoError(t, store.Load())
	require.NoError(t, store.Remove(a))

	assert.Equal(t, []string{b.String()}, readLines(t, path))
	assert.False(t, store.Get(a))
}

func TestMutationsKeepUnparsableLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	path := filepath.Join(t.TempDir(), FileName)
	content := "# managed by deskhide\n" + a.String() + "\nnot-a-guid\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewFileStore(path)
	require.NoError(t, store.Load())

	require.NoError(t, store.Set(b, true))
	assert.Equal(t, []string{"# managed by deskhide", a.String(), "not-a-guid", b.String()}, readLines(t, path))

	require.NoError(t, store.Remove(a))
	assert.Equal(t, []string{"# managed by deskhide", "not-a-guid", b.String()}, readLines(t, path))
}

func TestConcurrentSetsKeepEveryID(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	first := NewFileStore(path)
	second := NewFileStore(path)
	require.NoError(t, first.Load())
	require.NoError(t, second.Load())

	ids := make([]desktop.ID, 10)
	for i := range ids {
		ids[i] = uuid.New()
	}
	var wg sync.WaitGroup
	for i, id := range ids {
		store := first
		if i%2 == 1 {
			store = second
		}
		wg.Add(1)
		go func(s *FileStore, id desktop.ID) {
			defer wg.Done()
			assert.NoError(t, s.Set(id, true))
		}(store, id)
	}
	wg.Wait()

	reloaded := NewFileStore(path)
	require.NoError(t, reloaded.Load())
	assert.Len(t, reloaded.IDs(), len(ids))
}

func TestLockBreaksStaleLock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x.lock")
	require.NoError(t, os.Mkdir(dir, 0o755))
	stale := time.Now().Add(-2 * lockStaleAfter)
	require.NoError(t, os.Chtimes(dir, stale, stale))

	ran := false
	require.NoError(t, WithLock(dir, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestNewBackends(t *testing.T) {
	tests := []struct {
		backend string
		file    string
	}{
		{"", FileName},
		{"file", FileName},
		{"SQLite", DBFileName},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dir := t.TempDir()
			store, err := New(tt.backend, dir)
			require.NoError(t, err)
			defer store.Close()

			a := uuid.New()
			require.NoError(t, store.Set(a, true))
			_, err = os.Stat(filepath.Join(dir, tt.file))
			assert.NoError(t, err)
		})
	}

	_, err := New("redis", t.TempDir())
	assert.Error(t, err)
}

func TestSQLiteImportsExistingFile(t *testing.T) {
	dir := t.TempDir()
	a := uuid.New()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(a.String()+"\n"), 0o644))

	store, err := New(BackendSQLite, dir)
	require.NoError(t, err)
	defer store.Close()
	assert.True(t, store.Get(a))
}
