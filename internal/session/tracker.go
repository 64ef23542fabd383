// Package session tracks virtual desktops and keeps the desktop folders in
// line with the active desktop's hidden preference.
package session

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/cristianoliveira/deskhide/internal/hooks"
	"github.com/cristianoliveira/deskhide/internal/logging"
	"github.com/cristianoliveira/deskhide/internal/preferences"
	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNoCurrentDesktop is returned by actions on the current desktop
	// before one is known.
	ErrNoCurrentDesktop = errors.New("no current virtual desktop")
	// ErrInvalidWallpaper is returned when a wallpaper path is not a local
	// jpeg, png or bmp file.
	ErrInvalidWallpaper = errors.New("invalid wallpaper file")
	// ErrLastDesktop is returned when removing the only desktop.
	ErrLastDesktop = errors.New("cannot remove the last virtual desktop")
)

var wallpaperTypes = []string{"image/jpeg", "image/png", "image/bmp"}

// Applier applies the hidden preference to the file system.
type Applier interface {
	SetHiddenFiles(hidden bool) error
	LastApplied() (hidden, ok bool)
	Reset()
}

// Options configures a Tracker.
type Options struct {
	Source desktop.Source
	Store  preferences.Store
	Sync   Applier
	Hooks  hooks.Runner
	Logger logging.Logger
}

// Tracker owns the ordered desktop view collection and the toggle indicator.
//
// Mutating methods are meant to run on one goroutine (the dispatch queue).
// Read accessors are safe from any goroutine.
type Tracker struct {
	source desktop.Source
	store  preferences.Store
	sync   Applier
	hooks  hooks.Runner
	log    logging.Logger

	mu        sync.RWMutex
	views     []DesktopView
	current   desktop.ID
	indicator string

	listenersMu  sync.Mutex
	listeners    map[int]func()
	nextListener int
}

// New returns an empty tracker. Call Start or Seed to populate it.
func New(opts Options) *Tracker {
	t := &Tracker{
		source:    opts.Source,
		store:     opts.Store,
		sync:      opts.Sync,
		hooks:     opts.Hooks,
		log:       opts.Logger,
		indicator: IndicatorHide,
		listeners: make(map[int]func()),
	}
	if t.hooks == nil {
		t.hooks = hooks.Nop
	}
	if t.log == nil {
		t.log = logging.Nop()
	}
	t.log = t.log.With("component", "session")
	return t
}

// Seed enumerates the desktops once and builds the view collection and the
// indicator from the stored preferences, without touching the file system.
func (t *Tracker) Seed() error {
	desktops, err := t.source.Desktops()
	if err != nil {
		return fmt.Errorf("enumerate desktops: %w", err)
	}
	cur, err := t.source.Current()
	if err != nil {
		return fmt.Errorf("current desktop: %w", err)
	}

	views := make([]DesktopView, 0, len(desktops))
	for _, d := range desktops {
		v := newView(d, t.store.Get(d.ID))
		v.IsCurrent = d.ID == cur.ID
		views = append(views, v)
	}

	t.mu.Lock()
	t.views = views
	t.current = cur.ID
	t.indicator = indicator(t.store.Get(cur.ID))
	t.mu.Unlock()
	t.log.Info("seeded desktops", "count", len(views), "current", cur.ID.String())
	t.notify()
	return nil
}

// Start seeds the tracker and applies the current desktop's preference once,
// so the folders match even if they drifted while nothing was running.
func (t *Tracker) Start() error {
	if err := t.Seed(); err != nil {
		return err
	}
	return t.ApplyCurrent()
}

// ApplyCurrent applies the current desktop's stored preference.
func (t *Tracker) ApplyCurrent() error {
	cur := t.Current()
	if cur == (desktop.ID{}) {
		return ErrNoCurrentDesktop
	}
	if err := t.sync.SetHiddenFiles(t.store.Get(cur)); err != nil {
		return fmt.Errorf("initial apply: %w", err)
	}
	return nil
}

// reloadPreferences picks up preferences written by other processes, such as
// a one-shot toggle from the command line. When the current desktop's value
// changed, the folders no longer match what this process last applied, so
// the synchronizer is reset.
func (t *Tracker) reloadPreferences() {
	cur := t.Current()
	before := t.store.Get(cur)
	if err := t.store.Load(); err != nil {
		t.log.Warn("failed to reload preferences", "error", err)
		return
	}
	after := t.store.Get(cur)

	t.mu.Lock()
	for i := range t.views {
		t.views[i].Message = message(t.store.Get(t.views[i].ID))
	}
	if cur != (desktop.ID{}) {
		t.indicator = indicator(after)
	}
	t.mu.Unlock()

	if before != after {
		t.log.Info("preference changed by another process", "desktop", cur.String(), "hidden", after)
		t.sync.Reset()
	}
}

// HandleEvent updates the tracker for one desktop event. Only a switch
// between desktops with different preferences touches the file system.
func (t *Tracker) HandleEvent(ev desktop.Event) error {
	t.log.Debug("desktop event", "kind", ev.Kind.String(), "desktop", ev.Desktop.ID.String())
	var err error
	switch ev.Kind {
	case desktop.Created:
		t.created(ev)
	case desktop.Destroyed:
		t.destroyed(ev.Desktop.ID)
	case desktop.Switched:
		err = t.switched(ev.Old, ev.New)
	case desktop.Moved:
		t.moved(ev)
	case desktop.Renamed:
		t.updateView(ev.Desktop.ID, func(v *DesktopView) { v.Name = displayName(ev.Name) })
	case desktop.WallpaperChanged:
		t.updateView(ev.Desktop.ID, func(v *DesktopView) { v.WallpaperPath = ev.WallpaperPath })
	default:
		return fmt.Errorf("unknown desktop event %s", ev.Kind)
	}
	t.notify()
	return err
}

func (t *Tracker) created(ev desktop.Event) {
	v := newView(ev.Desktop, t.store.Get(ev.Desktop.ID))
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.indexOf(ev.Desktop.ID) >= 0 {
		return
	}
	v.IsCurrent = v.ID == t.current
	at := clamp(ev.NewIndex, len(t.views))
	t.views = append(t.views, DesktopView{})
	copy(t.views[at+1:], t.views[at:])
	t.views[at] = v
}

func (t *Tracker) destroyed(id desktop.ID) {
	t.mu.Lock()
	if i := t.indexOf(id); i >= 0 {
		t.views = append(t.views[:i], t.views[i+1:]...)
	}
	t.mu.Unlock()
	if err := t.store.Remove(id); err != nil {
		t.log.Warn("failed to forget destroyed desktop", "desktop", id.String(), "error", err)
	}
}

// switched compares against the desktop the tracker last saw as current,
// which is what the folders were applied for even when intermediate switch
// events were missed.
func (t *Tracker) switched(old, next desktop.ID) error {
	t.reloadPreferences()
	_, applied := t.sync.LastApplied()

	t.mu.Lock()
	if t.current != (desktop.ID{}) {
		if old != (desktop.ID{}) && old != t.current {
			t.log.Debug("switch source differs from tracked desktop", "event", old.String(), "tracked", t.current.String())
		}
		old = t.current
	}
	oldHidden := t.store.Get(old)
	newHidden := t.store.Get(next)
	t.current = next
	for i := range t.views {
		t.views[i].IsCurrent = t.views[i].ID == next
	}
	t.indicator = indicator(newHidden)
	t.mu.Unlock()

	if oldHidden == newHidden && applied {
		return nil
	}
	if err := t.sync.SetHiddenFiles(newHidden); err != nil {
		t.log.Error("apply after switch failed", "desktop", next.String(), "error", err)
		return fmt.Errorf("apply after switch: %w", err)
	}
	return nil
}

func (t *Tracker) moved(ev desktop.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	from := t.indexOf(ev.Desktop.ID)
	if from < 0 {
		from = ev.OldIndex
	}
	if from < 0 || from >= len(t.views) {
		return
	}
	v := t.views[from]
	t.views = append(t.views[:from], t.views[from+1:]...)
	at := clamp(ev.NewIndex, len(t.views))
	t.views = append(t.views, DesktopView{})
	copy(t.views[at+1:], t.views[at:])
	t.views[at] = v
}

func (t *Tracker) updateView(id desktop.ID, fn func(*DesktopView)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOf(id); i >= 0 {
		fn(&t.views[i])
	}
}

// Toggle flips the current desktop's preference, persists it and applies it.
// When the apply fails the previous preference and indicator are restored.
func (t *Tracker) Toggle() error {
	cur := t.Current()
	if cur == (desktop.ID{}) {
		return ErrNoCurrentDesktop
	}
	t.reloadPreferences()
	return t.SetPreference(cur, !t.store.Get(cur))
}

// SetPreference records hidden for id. For the current desktop the change is
// applied to the file system like a toggle; other desktops only change their
// stored preference and showcase message.
func (t *Tracker) SetPreference(id desktop.ID, hidden bool) error {
	if t.indexOfLocked(id) < 0 {
		return fmt.Errorf("set preference for %s: %w", id, desktop.ErrUnknownDesktop)
	}
	previous := t.store.Get(id)
	isCurrent := id == t.Current()

	env := []string{"DESKTOP_ID=" + id.String(), "HIDDEN=" + strconv.FormatBool(hidden)}
	if err := t.hooks.Run(hooks.PreToggle, env...); err != nil {
		return fmt.Errorf("pre-toggle hook aborted: %w", err)
	}

	t.record(id, hidden, isCurrent)
	if isCurrent {
		if err := t.sync.SetHiddenFiles(hidden); err != nil {
			t.log.Error("toggle apply failed, restoring preference", "desktop", id.String(), "error", err)
			t.record(id, previous, true)
			return fmt.Errorf("toggle icons: %w", err)
		}
	}

	if err := t.hooks.Run(hooks.PostToggle, env...); err != nil {
		t.log.Warn("post-toggle hook failed", "error", err)
	}
	return nil
}

// record persists hidden for id and updates the display state. A failed
// write is logged; the in-memory preference still holds the new value.
func (t *Tracker) record(id desktop.ID, hidden, isCurrent bool) {
	if err := t.store.Set(id, hidden); err != nil {
		t.log.Warn("failed to persist preference", "desktop", id.String(), "error", err)
	}
	t.mu.Lock()
	if i := t.indexOf(id); i >= 0 {
		t.views[i].Message = message(hidden)
	}
	if isCurrent {
		t.indicator = indicator(hidden)
	}
	t.mu.Unlock()
	t.notify()
}

// SelectWallpaper validates path as a local jpeg, png or bmp file and sets it
// as the wallpaper of id.
func (t *Tracker) SelectWallpaper(id desktop.ID, path string) error {
	if t.indexOfLocked(id) < 0 {
		return fmt.Errorf("select wallpaper for %s: %w", id, desktop.ErrUnknownDesktop)
	}
	if err := validateWallpaper(path); err != nil {
		return err
	}
	if err := t.source.SetWallpaper(id, path); err != nil {
		return fmt.Errorf("select wallpaper: %w", err)
	}
	t.updateView(id, func(v *DesktopView) { v.WallpaperPath = path })
	t.notify()
	return nil
}

func validateWallpaper(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidWallpaper)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWallpaper, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrInvalidWallpaper, path)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWallpaper, err)
	}
	for _, allowed := range wallpaperTypes {
		if mtype.Is(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported type %s", ErrInvalidWallpaper, mtype.String())
}

// SwitchTo asks the source to activate id. The tracker updates when the
// resulting switch event arrives.
func (t *Tracker) SwitchTo(id desktop.ID) error {
	if t.indexOfLocked(id) < 0 {
		return fmt.Errorf("switch to %s: %w", id, desktop.ErrUnknownDesktop)
	}
	return t.source.SwitchTo(id)
}

// Create asks the source for a new desktop.
func (t *Tracker) Create() error {
	return t.source.Create()
}

// RemoveCurrent asks the source to remove the current desktop.
func (t *Tracker) RemoveCurrent() error {
	t.mu.RLock()
	cur, count := t.current, len(t.views)
	t.mu.RUnlock()
	if cur == (desktop.ID{}) {
		return ErrNoCurrentDesktop
	}
	if count <= 1 {
		return ErrLastDesktop
	}
	return t.source.Remove(cur)
}

// Desktops returns a copy of the ordered view collection.
func (t *Tracker) Desktops() []DesktopView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]DesktopView, len(t.views))
	copy(out, t.views)
	return out
}

// Current returns the current desktop id, or the zero id before seeding.
func (t *Tracker) Current() desktop.ID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Indicator returns the toggle label for the current desktop.
func (t *Tracker) Indicator() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.indicator
}

// Hidden reports the stored preference of id.
func (t *Tracker) Hidden(id desktop.ID) bool {
	return t.store.Get(id)
}

// Subscribe registers fn to run after every state change. The returned
// function unregisters it and is safe to call more than once.
func (t *Tracker) Subscribe(fn func()) func() {
	t.listenersMu.Lock()
	id := t.nextListener
	t.nextListener++
	t.listeners[id] = fn
	t.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.listenersMu.Lock()
			delete(t.listeners, id)
			t.listenersMu.Unlock()
		})
	}
}

func (t *Tracker) notify() {
	t.listenersMu.Lock()
	fns := make([]func(), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.listenersMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// indexOf requires t.mu.
func (t *Tracker) indexOf(id desktop.ID) int {
	for i, v := range t.views {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) indexOfLocked(id desktop.ID) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.indexOf(id)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
