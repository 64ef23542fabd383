// Package desktop models virtual desktops and the OS source that reports
// their lifecycle.
package desktop

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedPlatform is returned by the system source on platforms
	// without virtual desktop support.
	ErrUnsupportedPlatform = errors.New("virtual desktops are not supported on this platform")

	// ErrUnknownDesktop is returned when an operation names a desktop id the
	// source does not know.
	ErrUnknownDesktop = errors.New("unknown virtual desktop")
)

// ID identifies a virtual desktop. It is stable for the lifetime of the
// desktop and comparable.
type ID = uuid.UUID

// ParseID parses a desktop id in any form accepted by uuid.Parse, including
// the braced registry form.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("parse desktop id %q: %w", s, err)
	}
	return id, nil
}

// Desktop is a snapshot of one virtual desktop.
type Desktop struct {
	ID            ID
	Name          string
	WallpaperPath string
	Index         int
}

// EventKind enumerates desktop lifecycle events.
type EventKind int

const (
	Created EventKind = iota
	Destroyed
	Switched
	Moved
	Renamed
	WallpaperChanged
)

func (k EventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Destroyed:
		return "destroyed"
	case Switched:
		return "switched"
	case Moved:
		return "moved"
	case Renamed:
		return "renamed"
	case WallpaperChanged:
		return "wallpaper-changed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a lifecycle notification.
//
// Created and Destroyed carry the desktop. Switched carries Old and New.
// Moved carries the desktop with OldIndex and NewIndex. Renamed carries Name
// and WallpaperChanged carries WallpaperPath.
type Event struct {
	Kind          EventKind
	Desktop       Desktop
	Old           ID
	New           ID
	OldIndex      int
	NewIndex      int
	Name          string
	WallpaperPath string
}

// Handler receives desktop events.
type Handler func(Event)

// Registration is returned by Watch. Release stops delivery and is safe to
// call more than once.
type Registration interface {
	Release()
}

// Source enumerates virtual desktops, reports their lifecycle and performs
// the user-facing desktop actions.
type Source interface {
	Desktops() ([]Desktop, error)
	Current() (Desktop, error)
	Watch(handler Handler) (Registration, error)
	SwitchTo(id ID) error
	Create() error
	Remove(id ID) error
	SetWallpaper(id ID, path string) error
}

type registration struct {
	once    sync.Once
	release func()
}

// NewRegistration wraps release so it runs at most once.
func NewRegistration(release func()) Registration {
	return &registration{release: release}
}

func (r *registration) Release() {
	r.once.Do(func() {
		if r.release != nil {
			r.release()
		}
	})
}
