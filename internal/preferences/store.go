// Package preferences persists which virtual desktops have their icons hidden.
package preferences

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/cristianoliveira/deskhide/internal/preferences/sqlite"
)

const (
	// BackendFile selects the line-oriented text file.
	BackendFile = "file"
	// BackendSQLite selects the SQLite database.
	BackendSQLite = "sqlite"

	// FileName is the name of the text file in the state directory.
	FileName = "hidden-desktops.txt"
	// DBFileName is the name of the SQLite database in the state directory.
	DBFileName = "deskhide.db"
)

// Store is the hidden preference set. An id is present iff that desktop's
// icons are hidden; absence means visible.
type Store interface {
	// Load reads the backing store into memory. Malformed entries are skipped.
	Load() error
	// Get reports whether id is hidden. It never fails.
	Get(id desktop.ID) bool
	// Set records the preference for id. Setting the current value is a no-op.
	Set(id desktop.ID, hidden bool) error
	// Remove forgets id.
	Remove(id desktop.ID) error
	// IDs returns the hidden ids.
	IDs() []desktop.ID
	Close() error
}

var _ Store = (*FileStore)(nil)
var _ Store = (*sqlite.Store)(nil)

// New opens the store for backend in dir and loads it. An unusable sqlite
// backend falls back to the text file.
func New(backend, dir string) (Store, error) {
	filePath := filepath.Join(dir, FileName)
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return openFileStore(filePath)
	case BackendSQLite:
		store, err := sqlite.NewStore(filepath.Join(dir, DBFileName))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return openFileStore(filePath)
		}
		if err := store.Load(); err != nil {
			_ = store.Close()
			colors.Warning(fmt.Sprintf("failed to load sqlite backend, falling back to file: %v", err))
			return openFileStore(filePath)
		}
		if err := importFile(store, filePath); err != nil {
			colors.Warning(fmt.Sprintf("failed to import %s into sqlite: %v", filePath, err))
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func openFileStore(path string) (Store, error) {
	store := NewFileStore(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// importFile copies the ids of an existing text file into an empty sqlite
// store so switching backends keeps the preferences.
func importFile(store *sqlite.Store, path string) error {
	if len(store.IDs()) > 0 {
		return nil
	}
	ids, err := readIDs(path)
	if err != nil || len(ids) == 0 {
		return err
	}
	colors.Info(fmt.Sprintf("importing %d hidden desktop(s) from %s", len(ids), path))
	return store.Import(ids)
}
