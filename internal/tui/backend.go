// Package tui provides the terminal user interface for deskhide.
package tui

import (
	"github.com/cristianoliveira/deskhide/internal/app"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/cristianoliveira/deskhide/internal/session"
)

// Backend is what the UI needs from the core.
type Backend interface {
	Desktops() []session.DesktopView
	Indicator() string
	Toggle() error
	SwitchTo(id desktop.ID) error
	Create() error
	RemoveCurrent() error
	Subscribe(fn func()) func()
}

// RuntimeBackend runs UI actions on the runtime's dispatch queue.
type RuntimeBackend struct {
	rt *app.Runtime
}

var _ Backend = (*RuntimeBackend)(nil)

// NewRuntimeBackend adapts rt for the UI.
func NewRuntimeBackend(rt *app.Runtime) *RuntimeBackend {
	if rt == nil {
		panic("NewRuntimeBackend: runtime dependency cannot be nil")
	}
	return &RuntimeBackend{rt: rt}
}

func (b *RuntimeBackend) Desktops() []session.DesktopView { return b.rt.Tracker.Desktops() }

func (b *RuntimeBackend) Indicator() string { return b.rt.Tracker.Indicator() }

func (b *RuntimeBackend) Subscribe(fn func()) func() { return b.rt.Tracker.Subscribe(fn) }

func (b *RuntimeBackend) Toggle() error {
	return b.rt.Do(func(t *session.Tracker) error { return t.Toggle() })
}

func (b *RuntimeBackend) SwitchTo(id desktop.ID) error {
	return b.rt.Do(func(t *session.Tracker) error { return t.SwitchTo(id) })
}

func (b *RuntimeBackend) Create() error {
	return b.rt.Do(func(t *session.Tracker) error { return t.Create() })
}

func (b *RuntimeBackend) RemoveCurrent() error {
	return b.rt.Do(func(t *session.Tracker) error { return t.RemoveCurrent() })
}
