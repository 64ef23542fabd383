// Package app wires the preference store, attribute synchronizer, session
// tracker, dispatch queue and desktop source into one runtime.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/cristianoliveira/deskhide/internal/attrsync"
	"github.com/cristianoliveira/deskhide/internal/config"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	"github.com/cristianoliveira/deskhide/internal/dispatch"
	"github.com/cristianoliveira/deskhide/internal/errors"
	"github.com/cristianoliveira/deskhide/internal/hooks"
	"github.com/cristianoliveira/deskhide/internal/logging"
	"github.com/cristianoliveira/deskhide/internal/preferences"
	"github.com/cristianoliveira/deskhide/internal/session"
)

// Options configures a Runtime.
type Options struct {
	Source   desktop.Source
	Store    preferences.Store
	Sync     attrsync.Options
	Hooks    hooks.Runner
	Logger   logging.Logger
	Reporter errors.ErrorHandler
}

// Runtime owns the core components. Every tracker mutation runs on its
// dispatch queue.
type Runtime struct {
	Source  desktop.Source
	Store   preferences.Store
	Sync    *attrsync.Synchronizer
	Tracker *session.Tracker
	Queue   *dispatch.Queue

	log       logging.Logger
	reporter  errors.ErrorHandler
	mu        sync.Mutex
	reg       desktop.Registration
	closeOnce sync.Once
	closeErr  error
}

// New builds a runtime from explicit components.
func New(opts Options) (*Runtime, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("app: desktop source cannot be nil")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("app: preference store cannot be nil")
	}
	if opts.Hooks == nil {
		opts.Hooks = hooks.Nop
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Reporter == nil {
		opts.Reporter = errors.NewDefaultCLIHandler()
	}
	if opts.Sync.Hooks == nil {
		opts.Sync.Hooks = opts.Hooks
	}
	if opts.Sync.Logger == nil {
		opts.Sync.Logger = opts.Logger
	}

	synchronizer := attrsync.New(opts.Sync)
	tracker := session.New(session.Options{
		Source: opts.Source,
		Store:  opts.Store,
		Sync:   synchronizer,
		Hooks:  opts.Hooks,
		Logger: opts.Logger,
	})
	return &Runtime{
		Source:   opts.Source,
		Store:    opts.Store,
		Sync:     synchronizer,
		Tracker:  tracker,
		Queue:    dispatch.New(0),
		log:      opts.Logger.With("component", "app"),
		reporter: opts.Reporter,
	}, nil
}

// NewFromConfig builds the runtime for this machine from the loaded
// configuration.
func NewFromConfig(reporter errors.ErrorHandler) (*Runtime, error) {
	if config.GetBool("hooks_enabled", true) {
		if err := hooks.Init(); err != nil {
			logging.Warn("hooks unavailable", "error", err)
		}
	}
	source, err := desktop.NewSystemSource(config.PollInterval())
	if err != nil {
		return nil, err
	}
	store, err := preferences.New(config.Get("storage_backend", preferences.BackendFile), config.Get("state_dir", ""))
	if err != nil {
		return nil, err
	}
	rt, err := New(Options{
		Source:   source,
		Store:    store,
		Sync:     SyncOptionsFromConfig(),
		Hooks:    hooks.Default,
		Logger:   logging.GetGlobal(),
		Reporter: reporter,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return rt, nil
}

// SyncOptionsFromConfig returns the synchronizer locations and exclusions
// from the loaded configuration.
func SyncOptionsFromConfig() attrsync.Options {
	return attrsync.Options{
		Locations: attrsync.Locations{
			UsersRoot:        config.Get("users_root", ""),
			UserDesktopDir:   config.Get("user_desktop_dir", ""),
			PublicDesktopDir: config.Get("public_desktop_dir", ""),
		},
		Exclude: config.GetList("exclude_patterns"),
	}
}

// Seed starts the queue and loads desktop state without applying it.
func (r *Runtime) Seed() error {
	r.Queue.Start()
	return r.Queue.Call(r.Tracker.Seed)
}

// Start seeds the tracker, applies the current preference once and begins
// delivering desktop events onto the queue.
//
// Only enumeration and watch failures stop the start. A failed first apply,
// such as a missing USERNAME, is reported and left for the next switch or
// toggle to retry.
func (r *Runtime) Start() error {
	r.Queue.Start()
	if err := r.Queue.Call(r.Tracker.Seed); err != nil {
		return err
	}
	if err := r.Queue.Call(r.Tracker.ApplyCurrent); err != nil {
		r.log.Warn("initial apply failed", "error", err)
		errors.Report(r.reporter, err)
	}
	reg, err := r.Source.Watch(r.handleEvent)
	if err != nil {
		return fmt.Errorf("watch desktops: %w", err)
	}
	r.mu.Lock()
	r.reg = reg
	r.mu.Unlock()
	if err := r.Queue.Post(r.resync); err != nil {
		r.log.Debug("resync skipped", "error", err)
	}
	r.log.Info("runtime started")
	return nil
}

// resync catches a switch that happened between seeding and the first watch
// snapshot, which the watcher never reports.
func (r *Runtime) resync() {
	cur, err := r.Source.Current()
	if err != nil {
		r.log.Warn("resync: current desktop", "error", err)
		return
	}
	tracked := r.Tracker.Current()
	if cur.ID == tracked {
		return
	}
	r.log.Info("resync: desktop switched during start", "from", tracked.String(), "to", cur.ID.String())
	if err := r.Tracker.HandleEvent(desktop.Event{Kind: desktop.Switched, Desktop: cur, Old: tracked, New: cur.ID}); err != nil {
		errors.Report(r.reporter, err)
	}
}

func (r *Runtime) handleEvent(ev desktop.Event) {
	err := r.Queue.Post(func() {
		if err := r.Tracker.HandleEvent(ev); err != nil {
			errors.Report(r.reporter, err)
		}
	})
	if err != nil {
		r.log.Debug("dropped desktop event", "kind", ev.Kind.String(), "error", err)
	}
}

// Do runs fn with the tracker on the queue goroutine.
func (r *Runtime) Do(fn func(t *session.Tracker) error) error {
	return r.Queue.Call(func() error { return fn(r.Tracker) })
}

// Run starts the runtime and blocks until ctx is done. The runtime is
// closed on return.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Start(); err != nil {
		if closeErr := r.Close(); closeErr != nil {
			r.log.Warn("close after failed start", "error", closeErr)
		}
		return err
	}
	<-ctx.Done()
	return r.Close()
}

// Close releases the watch, drains the queue and closes the store. Safe to
// call more than once.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		reg := r.reg
		r.mu.Unlock()
		if reg != nil {
			reg.Release()
		}
		r.Queue.Close()
		r.closeErr = r.Store.Close()
		r.log.Info("runtime stopped")
	})
	return r.closeErr
}
