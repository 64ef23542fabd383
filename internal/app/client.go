package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/deskhide/internal/attrsync"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/cristianoliveira/deskhide/internal/session"
)

// Status summarizes the current desktop.
type Status struct {
	ID        desktop.ID
	Name      string
	Hidden    bool
	Indicator string
	Desktops  int
}

// OpenFunc builds a runtime for one client operation.
type OpenFunc func() (*Runtime, error)

// Client runs one-shot operations against a freshly seeded runtime. It backs
// the CLI commands.
type Client struct {
	open OpenFunc
}

// NewClient creates a client that opens runtimes with open.
func NewClient(open OpenFunc) *Client {
	if open == nil {
		panic("NewClient: open dependency cannot be nil")
	}
	return &Client{open: open}
}

func (c *Client) withRuntime(fn func(rt *Runtime) error) error {
	rt, err := c.open()
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := rt.Seed(); err != nil {
		return err
	}
	return fn(rt)
}

// Run starts the engine and blocks until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	rt, err := c.open()
	if err != nil {
		return err
	}
	return rt.Run(ctx)
}

// Toggle flips the current desktop's preference and returns the new value.
func (c *Client) Toggle() (bool, error) {
	var hidden bool
	err := c.withRuntime(func(rt *Runtime) error {
		return rt.Do(func(t *session.Tracker) error {
			if err := t.Toggle(); err != nil {
				return err
			}
			hidden = t.Hidden(t.Current())
			return nil
		})
	})
	return hidden, err
}

// SetHidden sets the preference of the desktop named by ref, or of the
// current desktop when ref is empty.
func (c *Client) SetHidden(ref string, hidden bool) (desktop.ID, error) {
	var id desktop.ID
	err := c.withRuntime(func(rt *Runtime) error {
		return rt.Do(func(t *session.Tracker) error {
			var err error
			id, err = ResolveDesktop(t, ref)
			if err != nil {
				return err
			}
			return t.SetPreference(id, hidden)
		})
	})
	return id, err
}

// Status returns the current desktop summary.
func (c *Client) Status() (Status, error) {
	var st Status
	err := c.withRuntime(func(rt *Runtime) error {
		return rt.Do(func(t *session.Tracker) error {
			st = statusOf(t)
			return nil
		})
	})
	return st, err
}

func statusOf(t *session.Tracker) Status {
	views := t.Desktops()
	st := Status{ID: t.Current(), Indicator: t.Indicator(), Desktops: len(views)}
	st.Hidden = t.Hidden(st.ID)
	for _, v := range views {
		if v.IsCurrent {
			st.Name = v.Name
		}
	}
	return st
}

// List returns the desktops in display order.
func (c *Client) List() ([]session.DesktopView, error) {
	var views []session.DesktopView
	err := c.withRuntime(func(rt *Runtime) error {
		views = rt.Tracker.Desktops()
		return nil
	})
	return views, err
}

// Apply rescans the desktop folders for the current desktop's preference,
// ignoring what was applied before.
func (c *Client) Apply() (bool, attrsync.Stats, error) {
	var hidden bool
	var stats attrsync.Stats
	err := c.withRuntime(func(rt *Runtime) error {
		return rt.Do(func(t *session.Tracker) error {
			hidden = t.Hidden(t.Current())
			if err := rt.Sync.ForceApply(hidden); err != nil {
				return err
			}
			stats = rt.Sync.Stats()
			return nil
		})
	})
	return hidden, stats, err
}

// SetWallpaper validates path and sets it as the wallpaper of ref.
func (c *Client) SetWallpaper(ref, path string) (desktop.ID, error) {
	var id desktop.ID
	err := c.withRuntime(func(rt *Runtime) error {
		return rt.Do(func(t *session.Tracker) error {
			var err error
			id, err = ResolveDesktop(t, ref)
			if err != nil {
				return err
			}
			return t.SelectWallpaper(id, path)
		})
	})
	return id, err
}

// ResolveDesktop finds a desktop by GUID, by 1-based position or by
// case-insensitive name. An empty ref selects the current desktop.
func ResolveDesktop(t *session.Tracker, ref string) (desktop.ID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		cur := t.Current()
		if cur == (desktop.ID{}) {
			return cur, session.ErrNoCurrentDesktop
		}
		return cur, nil
	}
	views := t.Desktops()
	if id, err := desktop.ParseID(ref); err == nil {
		for _, v := range views {
			if v.ID == id {
				return id, nil
			}
		}
		return desktop.ID{}, fmt.Errorf("%s: %w", ref, desktop.ErrUnknownDesktop)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(views) {
			return desktop.ID{}, fmt.Errorf("desktop %d out of range 1-%d: %w", n, len(views), desktop.ErrUnknownDesktop)
		}
		return views[n-1].ID, nil
	}
	for _, v := range views {
		if strings.EqualFold(v.Name, ref) {
			return v.ID, nil
		}
	}
	return desktop.ID{}, fmt.Errorf("%s: %w", ref, desktop.ErrUnknownDesktop)
}
