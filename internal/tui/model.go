package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/errors"
	"github.com/cristianoliveira/deskhide/internal/session"
)

const statusClearDuration = 5 * time.Second

// changedMsg reports that the tracker state changed.
type changedMsg struct{}

// actionDoneMsg carries the result of a backend action.
type actionDoneMsg struct {
	action string
	err    error
}

// clearStatusMsg clears the status line if nothing newer was shown.
type clearStatusMsg struct {
	at time.Time
}

// Model is the bubbletea model listing virtual desktops.
type Model struct {
	backend     Backend
	views       []session.DesktopView
	indicator   string
	cursor      int
	keys        keyMap
	help        help.Model
	status      *errors.TUIHandler
	changes     chan struct{}
	unsubscribe func()
	width       int
}

// NewModel creates a model over backend and subscribes to its changes.
func NewModel(backend Backend) *Model {
	return NewModelWithStatus(backend, nil)
}

// NewModelWithStatus is NewModel with a shared status line. Errors reported
// to status by the engine are shown alongside the model's own messages.
func NewModelWithStatus(backend Backend, status *errors.TUIHandler) *Model {
	if backend == nil {
		panic("NewModel: backend dependency cannot be nil")
	}
	if status == nil {
		status = errors.NewTUIHandler(nil)
	}
	m := &Model{
		backend: backend,
		keys:    defaultKeyMap(),
		help:    help.New(),
		status:  status,
		changes: make(chan struct{}, 1),
	}
	m.unsubscribe = backend.Subscribe(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.refresh()
	m.cursor = m.currentIndex()
	return m
}

// Close stops listening for backend changes.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		<-changes
		return changedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case changedMsg:
		m.refresh()
		return m, m.waitForChange()
	case actionDoneMsg:
		return m, m.handleActionDone(msg)
	case clearStatusMsg:
		if latest, ok := m.status.GetLatest(); ok && !latest.Timestamp.After(msg.at) {
			m.status.Clear()
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.views)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Switch):
		if m.cursor < len(m.views) {
			id := m.views[m.cursor].ID
			return m, m.run("switch", func() error { return m.backend.SwitchTo(id) })
		}
	case key.Matches(msg, m.keys.Toggle):
		return m, m.run("toggle", m.backend.Toggle)
	case key.Matches(msg, m.keys.New):
		return m, m.run("new", m.backend.Create)
	case key.Matches(msg, m.keys.Remove):
		return m, m.run("remove", m.backend.RemoveCurrent)
	}
	return m, nil
}

// run performs a backend action off the UI goroutine.
func (m *Model) run(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn()}
	}
}

func (m *Model) handleActionDone(msg actionDoneMsg) tea.Cmd {
	if msg.err != nil {
		errors.Report(m.status, msg.err)
	} else if msg.action == "toggle" {
		m.refresh()
		m.status.Success(m.toggleResult())
	}
	latest, ok := m.status.GetLatest()
	if !ok {
		return nil
	}
	at := latest.Timestamp
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg {
		return clearStatusMsg{at: at}
	})
}

func (m *Model) toggleResult() string {
	if m.indicator == session.IndicatorShow {
		return "Icons hidden"
	}
	return "Icons visible"
}

func (m *Model) refresh() {
	m.views = m.backend.Desktops()
	m.indicator = m.backend.Indicator()
	if m.cursor >= len(m.views) {
		m.cursor = len(m.views) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentIndex() int {
	for i, v := range m.views {
		if v.IsCurrent {
			return i
		}
	}
	return 0
}

// Run starts the interactive UI and blocks until the user quits.
func Run(backend Backend, status *errors.TUIHandler) error {
	m := NewModelWithStatus(backend, status)
	defer m.Close()
	colors.SuspendTraces()
	defer colors.ResumeTraces()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
