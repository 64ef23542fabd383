// Package attrsync sets or clears the hidden attribute on desktop folder
// entries.
package attrsync

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/hooks"
	"github.com/cristianoliveira/deskhide/internal/logging"
)

// desktopIni is the shell's folder customization file. It is never touched.
const desktopIni = "desktop.ini"

// Options configures a Synchronizer. Zero fields get working defaults.
type Options struct {
	Locations Locations
	// Exclude holds doublestar patterns matched against entry names.
	Exclude  []string
	FS       Filesystem
	Notifier Notifier
	Hooks    hooks.Runner
	Logger   logging.Logger
}

// Stats counts synchronizer work since creation.
type Stats struct {
	// Scans is the number of desktop folder passes performed.
	Scans int
	// Changed is the number of entries whose attributes were written.
	Changed int
	// Failed is the number of entries or folders that could not be processed.
	Failed int
}

// Synchronizer applies the hidden preference to the desktop folders. It
// remembers the last value it applied and skips repeated requests.
type Synchronizer struct {
	mu          sync.Mutex
	locations   Locations
	exclude     []string
	fs          Filesystem
	notifier    Notifier
	hooks       hooks.Runner
	log         logging.Logger
	lastApplied *bool
	stats       Stats
}

// New returns a Synchronizer with nothing applied yet, so the first request
// always scans.
func New(opts Options) *Synchronizer {
	s := &Synchronizer{
		locations: opts.Locations,
		exclude:   opts.Exclude,
		fs:        opts.FS,
		notifier:  opts.Notifier,
		hooks:     opts.Hooks,
		log:       opts.Logger,
	}
	if s.fs == nil {
		s.fs = OSFilesystem{}
	}
	if s.notifier == nil {
		s.notifier = ShellNotifier{}
	}
	if s.hooks == nil {
		s.hooks = hooks.Nop
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	s.log = s.log.With("component", "attrsync")
	return s
}

// SetHiddenFiles makes every direct child of both desktop folders hidden or
// visible. A request equal to the last applied value does nothing.
//
// ErrUserNameMissing is returned when the user desktop cannot be located; the
// request is then not remembered so a later request retries. Folder and entry
// access problems are logged and skipped, never returned.
func (s *Synchronizer) SetHiddenFiles(hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastApplied != nil && *s.lastApplied == hidden {
		s.log.Debug("apply skipped, already applied", "hidden", hidden)
		return nil
	}
	return s.apply(hidden)
}

// ForceApply scans even when hidden equals the last applied value.
func (s *Synchronizer) ForceApply(hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(hidden)
}

// LastApplied returns the last applied value, if any.
func (s *Synchronizer) LastApplied() (hidden, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastApplied == nil {
		return false, false
	}
	return *s.lastApplied, true
}

// Reset forgets the last applied value so the next SetHiddenFiles scans.
// Used when another process may have changed the folders.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastApplied = nil
}

// Stats returns a copy of the counters.
func (s *Synchronizer) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

func (s *Synchronizer) apply(hidden bool) error {
	dirs, err := s.locations.Resolve()
	if err != nil {
		s.log.Error("cannot resolve desktop folders", "error", err)
		return err
	}

	env := "HIDDEN=" + strconv.FormatBool(hidden)
	if err := s.hooks.Run(hooks.PreApply, env); err != nil {
		return fmt.Errorf("pre-apply hook aborted: %w", err)
	}

	value := hidden
	s.lastApplied = &value
	s.stats.Scans++

	changed, failed := 0, 0
	for _, dir := range dirs {
		c, f := s.applyDir(dir, hidden)
		changed += c
		failed += f
	}
	s.stats.Changed += changed
	s.stats.Failed += failed

	if err := s.notifier.Refresh(); err != nil {
		s.log.Warn("shell refresh failed", "error", err)
	}
	colors.TraceStep("attrsync", "apply", "success", nil, map[string]any{
		"hidden":  hidden,
		"changed": changed,
		"failed":  failed,
	})

	if err := s.hooks.Run(hooks.PostApply, env); err != nil {
		s.log.Warn("post-apply hook failed", "error", err)
	}
	return nil
}

// applyDir processes the direct children of dir and returns how many entries
// were changed and how many failed.
func (s *Synchronizer) applyDir(dir string, hidden bool) (changed, failed int) {
	entries, err := s.fs.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.log.Warn("desktop folder missing, skipping", "dir", dir)
		colors.Debug(fmt.Sprintf("desktop folder %s does not exist", dir))
		return 0, 1
	case errors.Is(err, fs.ErrPermission):
		s.log.Warn("desktop folder access denied, skipping", "dir", dir, "error", err)
		colors.Debug(fmt.Sprintf("access denied to %s: %v", dir, err))
		return 0, 1
	case err != nil:
		s.log.Warn("cannot read desktop folder, skipping", "dir", dir, "error", err)
		return 0, 1
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.EqualFold(name, desktopIni) || s.excluded(name) {
			continue
		}
		path := filepath.Join(dir, name)
		ok, err := s.applyEntry(path, hidden)
		if err != nil {
			s.log.Debug("cannot update entry, skipping", "path", path, "error", err)
			failed++
			continue
		}
		if ok {
			changed++
		}
	}
	return changed, failed
}

func (s *Synchronizer) applyEntry(path string, hidden bool) (bool, error) {
	attrs, err := s.fs.Attributes(path)
	if err != nil {
		return false, err
	}
	next := attrs &^ AttributeHidden
	if hidden {
		next = attrs | AttributeHidden
	}
	if next == attrs {
		return false, nil
	}
	if err := s.fs.SetAttributes(path, next); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Synchronizer) excluded(name string) bool {
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
