package preferences

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/google/uuid"
)

// FileStore keeps hidden ids in a text file, one GUID per line.
//
// Every mutation rewrites the whole file from its current contents while
// holding a directory lock, so concurrent processes do not lose updates.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	hidden map[desktop.ID]struct{}
}

// NewFileStore returns a store backed by path. Call Load before use.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, hidden: make(map[desktop.ID]struct{})}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) lockDir() string {
	return s.path + ".lock"
}

// Load reads the file, creating it empty when missing.
func (s *FileStore) Load() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("preferences: create state directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("preferences: open %s: %w", s.path, err)
	}
	defer f.Close()

	hidden := make(map[desktop.ID]struct{})
	for _, id := range parseLines(f) {
		hidden[id] = struct{}{}
	}

	s.mu.Lock()
	s.hidden = hidden
	s.mu.Unlock()
	colors.Debug(fmt.Sprintf("preferences: loaded %d hidden desktop(s) from %s", len(hidden), s.path))
	return nil
}

func (s *FileStore) Get(id desktop.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.hidden[id]
	return ok
}

// Set updates memory first and then the file. A failed write is returned
// but the in-memory value stays, so the running process keeps the user's
// choice.
func (s *FileStore) Set(id desktop.ID, hidden bool) error {
	s.mu.Lock()
	if hidden {
		s.hidden[id] = struct{}{}
	} else {
		delete(s.hidden, id)
	}
	s.mu.Unlock()
	return s.rewrite(id, hidden)
}

func (s *FileStore) Remove(id desktop.ID) error {
	return s.Set(id, false)
}

func (s *FileStore) IDs() []desktop.ID {
	s.mu.RLock()
	ids := make([]desktop.ID, 0, len(s.hidden))
	for id := range s.hidden {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sortIDs(ids)
	return ids
}

func (s *FileStore) Close() error {
	return nil
}

// rewrite reads the file, drops or appends id, and writes it back when the
// contents would change. Lines that are not ids are carried over as they are.
func (s *FileStore) rewrite(id desktop.ID, hidden bool) error {
	return WithLock(s.lockDir(), func() error {
		lines, err := readRawLines(s.path)
		if err != nil {
			return err
		}
		present := false
		kept := make([]string, 0, len(lines)+1)
		for _, line := range lines {
			if existing, err := uuid.Parse(line); err == nil && existing == id {
				if present || !hidden {
					present = true
					continue
				}
				present = true
			}
			kept = append(kept, line)
		}
		if present == hidden && len(kept) == len(lines) {
			return nil
		}
		if hidden && !present {
			kept = append(kept, id.String())
		}
		return writeLines(s.path, kept)
	})
}

// readRawLines returns the non-blank trimmed lines of path. A missing file reads
// as empty.
func readRawLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preferences: read %s: %w", path, err)
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// readIDs returns the valid ids of path in file order.
func readIDs(path string) ([]desktop.ID, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preferences: read %s: %w", path, err)
	}
	return parseLines(bytes.NewReader(data)), nil
}

func parseLines(r io.Reader) []desktop.ID {
	var ids []desktop.ID
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := uuid.Parse(line)
		if err != nil {
			colors.Debug(fmt.Sprintf("preferences: skipping malformed line %q", line))
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// writeLines replaces path through a temp file and rename.
func writeLines(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("preferences: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("preferences: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("preferences: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("preferences: replace %s: %w", path, err)
	}
	return nil
}

func sortIDs(ids []desktop.ID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
