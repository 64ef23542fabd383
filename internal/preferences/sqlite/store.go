// Package sqlite provides a SQLite-backed preference store.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS hidden_desktops (
	id TEXT PRIMARY KEY,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);
`

// Store keeps hidden ids in the hidden_desktops table and mirrors them in
// memory for lookups.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	hidden map[desktop.ID]struct{}
}

// NewStore opens or creates the database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite store: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open db: %w", err)
	}

	store := &Store{db: db, hidden: make(map[desktop.ID]struct{})}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads every row. Rows that are not GUIDs are skipped.
func (s *Store) Load() error {
	rows, err := s.db.QueryContext(context.Background(), "SELECT id FROM hidden_desktops")
	if err != nil {
		return fmt.Errorf("sqlite store: load: %w", err)
	}
	defer rows.Close()

	hidden := make(map[desktop.ID]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("sqlite store: scan: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			colors.Debug(fmt.Sprintf("sqlite store: skipping malformed id %q", raw))
			continue
		}
		hidden[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite store: load: %w", err)
	}

	s.mu.Lock()
	s.hidden = hidden
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(id desktop.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hidden[id]
	return ok
}

func (s *Store) Set(id desktop.ID, hidden bool) error {
	s.mu.Lock()
	if hidden {
		s.hidden[id] = struct{}{}
	} else {
		delete(s.hidden, id)
	}
	s.mu.Unlock()

	if hidden {
		_, err := s.db.ExecContext(context.Background(),
			"INSERT OR IGNORE INTO hidden_desktops (id) VALUES (?)", id.String())
		if err != nil {
			return fmt.Errorf("sqlite store: set %s: %w", id, err)
		}
		return nil
	}
	return s.delete(id)
}

func (s *Store) Remove(id desktop.ID) error {
	s.mu.Lock()
	delete(s.hidden, id)
	s.mu.Unlock()
	return s.delete(id)
}

func (s *Store) delete(id desktop.ID) error {
	_, err := s.db.ExecContext(context.Background(),
		"DELETE FROM hidden_desktops WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("sqlite store: remove %s: %w", id, err)
	}
	return nil
}

func (s *Store) IDs() []desktop.ID {
	s.mu.RLock()
	ids := make([]desktop.ID, 0, len(s.hidden))
	for id := range s.hidden {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

// Import inserts ids in one transaction.
func (s *Store) Import(ids []desktop.ID) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("sqlite store: begin import: %w", err)
	}
	for _, id := range ids {
		if _, err := tx.Exec("INSERT OR IGNORE INTO hidden_desktops (id) VALUES (?)", id.String()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite store: import %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite store: commit import: %w", err)
	}

	s.mu.Lock()
	for _, id := range ids {
		s.hidden[id] = struct{}{}
	}
	s.mu.Unlock()
	return nil
}
