package tui

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/deskhide/internal/desktop"
	deskerrors "github.com/cristianoliveira/deskhide/internal/errors"
	"github.com/cristianoliveira/deskhide/internal/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu        sync.Mutex
	views     []session.DesktopView
	indicator string
	switched  []desktop.ID
	toggles   int
	created   int
	removed   int
	err       error
	listener  func()
}

func newFakeBackend(n int) *fakeBackend {
	b := &fakeBackend{indicator: session.IndicatorHide}
	for i := 0; i < n; i++ {
		b.views = append(b.views, session.DesktopView{ID: uuid.New(), Name: string(rune('A' + i))})
	}
	if n > 0 {
		b.views[n-1].IsCurrent = true
	}
	return b
}

func (b *fakeBackend) Desktops() []session.DesktopView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]session.DesktopView(nil), b.views...)
}

func (b *fakeBackend) Indicator() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indicator
}

func (b *fakeBackend) Toggle() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toggles++
	if b.err != nil {
		return b.err
	}
	b.indicator = session.IndicatorShow
	return nil
}

func (b *fakeBackend) SwitchTo(id desktop.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.switched = append(b.switched, id)
	return b.err
}

func (b *fakeBackend) Create() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created++
	return b.err
}

func (b *fakeBackend) RemoveCurrent() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed++
	return b.err
}

func (b *fakeBackend) Subscribe(fn func()) func() {
	b.listener = fn
	return func() { b.listener = nil }
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command once.
func press(t *testing.T, m *Model, s string) tea.Msg {
	t.Helper()
	_, cmd := m.Update(keyMsg(s))
	if cmd == nil {
		return nil
	}
	msg := cmd()
	m.Update(msg)
	return msg
}

func TestNewModelStartsOnCurrentDesktop(t *testing.T) {
	b := newFakeBackend(3)
	m := NewModel(b)
	assert.Equal(t, 2, m.cursor)
	assert.Contains(t, m.View(), "3. ")
	assert.Contains(t, m.View(), session.IndicatorHide)
}

func TestCursorMovement(t *testing.T) {
	m := NewModel(newFakeBackend(3))
	press(t, m, "k")
	press(t, m, "up")
	press(t, m, "up")
	assert.Equal(t, 0, m.cursor)
	press(t, m, "j")
	press(t, m, "down")
	press(t, m, "down")
	assert.Equal(t, 2, m.cursor)
}

func TestEnterSwitchesToSelected(t *testing.T) {
	b := newFakeBackend(2)
	m := NewModel(b)
	press(t, m, "k")
	press(t, m, "enter")
	assert.Equal(t, []desktop.ID{b.views[0].ID}, b.switched)
}

func TestToggleUpdatesIndicatorAndStatus(t *testing.T) {
	b := newFakeBackend(1)
	m := NewModel(b)
	msg := press(t, m, "h")
	require.IsType(t, actionDoneMsg{}, msg)
	assert.Equal(t, 1, b.toggles)
	assert.Contains(t, m.View(), session.IndicatorShow)
	assert.Contains(t, m.View(), "Icons hidden")
}

func TestActionErrorsShowInStatusLine(t *testing.T) {
	b := newFakeBackend(1)
	b.err = errors.New("cannot remove the last virtual desktop")
	m := NewModel(b)
	press(t, m, "x")
	assert.Equal(t, 1, b.removed)
	latest, ok := m.status.GetLatest()
	require.True(t, ok)
	assert.Contains(t, latest.Text, "last virtual desktop")

	m.Update(clearStatusMsg{at: latest.Timestamp})
	_, ok = m.status.GetLatest()
	assert.False(t, ok)
}

func TestNewDesktopKey(t *testing.T) {
	b := newFakeBackend(1)
	m := NewModel(b)
	press(t, m, "n")
	assert.Equal(t, 1, b.created)
}

func TestChangesRefreshView(t *testing.T) {
	b := newFakeBackend(1)
	m := NewModel(b)
	cmd := m.Init()

	b.mu.Lock()
	b.views = append(b.views, session.DesktopView{ID: uuid.New(), Name: "Fresh", Message: session.MessageHidden})
	b.mu.Unlock()
	b.listener()

	msg := cmd()
	require.IsType(t, changedMsg{}, msg)
	_, next := m.Update(msg)
	assert.NotNil(t, next)
	assert.Contains(t, m.View(), "Fresh")
	assert.Contains(t, m.View(), session.MessageHidden)
}

func TestQuitUnsubscribes(t *testing.T) {
	b := newFakeBackend(1)
	m := NewModel(b)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, b.listener)
}

func TestEmptyDesktopList(t *testing.T) {
	m := NewModel(newFakeBackend(0))
	assert.Contains(t, m.View(), "No desktops found")
	press(t, m, "enter")
	press(t, m, "j")
	assert.Equal(t, 0, m.cursor)
}

func TestSharedStatusShowsEngineErrors(t *testing.T) {
	status := deskerrors.NewTUIHandler(nil)
	m := NewModelWithStatus(newFakeBackend(1), status)
	defer m.Close()

	status.Error("desktop watch: boom")

	assert.Contains(t, m.View(), "desktop watch: boom")
}
