//go:build windows

package desktop

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const virtualDesktopsKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\VirtualDesktops`

const (
	vkControl = 0x11
	vkLWin    = 0x5B
	vkLeft    = 0x25
	vkRight   = 0x27
	vkD       = 0x44
	vkF4      = 0x73

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002

	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02

	// keyDelay gives explorer time to process each shortcut.
	keyDelay = 50 * time.Millisecond
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent           = user32.NewProc("keybd_event")
	procSystemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// SystemSource reads virtual desktops from the registry and drives them with
// the standard keyboard shortcuts.
type SystemSource struct {
	poller *Poller
}

var _ Source = (*SystemSource)(nil)

// NewSystemSource returns the registry backed source polling every interval.
func NewSystemSource(interval time.Duration) (*SystemSource, error) {
	s := &SystemSource{}
	s.poller = NewPoller(registrySnapshotter{}, interval)
	if _, err := (registrySnapshotter{}).Snapshot(); err != nil {
		return nil, err
	}
	return s, nil
}

type registrySnapshotter struct{}

func (registrySnapshotter) Snapshot() (Snapshot, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, virtualDesktopsKey, registry.QUERY_VALUE)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open virtual desktops key: %w", err)
	}
	defer k.Close()

	raw, _, err := k.GetBinaryValue("VirtualDesktopIDs")
	if err != nil {
		return Snapshot{}, fmt.Errorf("read VirtualDesktopIDs: %w", err)
	}
	ids, err := idsFromRegistryBytes(raw)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	for i, id := range ids {
		d := Desktop{ID: id, Index: i}
		d.Name, d.WallpaperPath = readDesktopValues(id)
		snap.Desktops = append(snap.Desktops, d)
	}

	if cur, _, err := k.GetBinaryValue("CurrentVirtualDesktop"); err == nil {
		if id, err := idFromRegistryBytes(cur); err == nil {
			snap.Current = id
		}
	}
	if snap.Current == (ID{}) && len(snap.Desktops) > 0 {
		snap.Current = snap.Desktops[0].ID
	}
	return snap, nil
}

func readDesktopValues(id ID) (name, wallpaper string) {
	path := virtualDesktopsKey + `\Desktops\` + registryKeyName(id)
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE)
	if err != nil {
		return "", ""
	}
	defer k.Close()
	name, _, _ = k.GetStringValue("Name")
	wallpaper, _, _ = k.GetStringValue("Wallpaper")
	return name, wallpaper
}

func (s *SystemSource) snapshot() (Snapshot, error) {
	return registrySnapshotter{}.Snapshot()
}

func (s *SystemSource) Desktops() ([]Desktop, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Desktops, nil
}

func (s *SystemSource) Current() (Desktop, error) {
	snap, err := s.snapshot()
	if err != nil {
		return Desktop{}, err
	}
	d, ok := snap.Find(snap.Current)
	if !ok {
		return Desktop{}, ErrUnknownDesktop
	}
	return d, nil
}

func (s *SystemSource) Watch(handler Handler) (Registration, error) {
	return s.poller.Watch(handler)
}

// SwitchTo steps left or right with Ctrl+Win+Arrow until id is current.
func (s *SystemSource) SwitchTo(id ID) error {
	snap, err := s.snapshot()
	if err != nil {
		return err
	}
	target, ok := snap.Find(id)
	if !ok {
		return fmt.Errorf("switch to %s: %w", id, ErrUnknownDesktop)
	}
	current, ok := snap.Find(snap.Current)
	if !ok {
		return fmt.Errorf("switch to %s: %w", id, ErrUnknownDesktop)
	}
	steps := target.Index - current.Index
	arrow := byte(vkRight)
	if steps < 0 {
		arrow = vkLeft
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		if err := pressShortcut(arrow); err != nil {
			return fmt.Errorf("switch to %s: %w", id, err)
		}
	}
	return nil
}

// Create adds a desktop with Ctrl+Win+D. Explorer switches to it.
func (s *SystemSource) Create() error {
	return pressShortcut(vkD)
}

// Remove switches to id and closes it with Ctrl+Win+F4.
func (s *SystemSource) Remove(id ID) error {
	if err := s.SwitchTo(id); err != nil {
		return err
	}
	return pressShortcut(vkF4)
}

// SetWallpaper stores path as the desktop's wallpaper and applies it
// immediately when the desktop is current.
func (s *SystemSource) SetWallpaper(id ID, path string) error {
	keyPath := virtualDesktopsKey + `\Desktops\` + registryKeyName(id)
	k, _, err := registry.CreateKey(registry.CURRENT_USER, keyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("set wallpaper: open desktop key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue("Wallpaper", path); err != nil {
		return fmt.Errorf("set wallpaper: %w", err)
	}

	snap, err := s.snapshot()
	if err != nil || snap.Current != id {
		return nil
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("set wallpaper: %w", err)
	}
	r, _, callErr := procSystemParametersInfo.Call(
		spiSetDeskWallpaper, 0, uintptr(unsafe.Pointer(p)), spifUpdateIniFile|spifSendChange)
	if r == 0 {
		return fmt.Errorf("set wallpaper: SystemParametersInfo: %w", callErr)
	}
	return nil
}

// pressShortcut sends Ctrl+Win+key.
func pressShortcut(key byte) error {
	if err := procKeybdEvent.Find(); err != nil {
		return errors.Join(ErrUnsupportedPlatform, err)
	}
	keyEvent(vkControl, 0)
	keyEvent(vkLWin, keyeventfExtendedKey)
	keyEvent(key, extendedFlag(key))
	keyEvent(key, extendedFlag(key)|keyeventfKeyUp)
	keyEvent(vkLWin, keyeventfExtendedKey|keyeventfKeyUp)
	keyEvent(vkControl, keyeventfKeyUp)
	time.Sleep(keyDelay)
	return nil
}

func extendedFlag(key byte) uintptr {
	if key == vkLeft || key == vkRight {
		return keyeventfExtendedKey
	}
	return 0
}

func keyEvent(key byte, flags uintptr) {
	procKeybdEvent.Call(uintptr(key), 0, flags, 0)
}
