package session

import "github.com/cristianoliveira/deskhide/internal/desktop"

const (
	// IndicatorHide is the toggle label while icons are visible.
	IndicatorHide = "Hide Icons"
	// IndicatorShow is the toggle label while icons are hidden.
	IndicatorShow = "Show Icons"
	// MessageHidden is the showcase message of a hidden desktop.
	MessageHidden = "Icons hidden"
	// NoName is displayed for desktops without a name.
	NoName = "(no name)"
)

// DesktopView is the display state of one desktop.
type DesktopView struct {
	ID            desktop.ID
	Name          string
	WallpaperPath string
	IsCurrent     bool
	Message       string
}

func newView(d desktop.Desktop, hidden bool) DesktopView {
	return DesktopView{
		ID:            d.ID,
		Name:          displayName(d.Name),
		WallpaperPath: d.WallpaperPath,
		Message:       message(hidden),
	}
}

func displayName(name string) string {
	if name == "" {
		return NoName
	}
	return name
}

func message(hidden bool) string {
	if hidden {
		return MessageHidden
	}
	return ""
}

func indicator(hidden bool) string {
	if hidden {
		return IndicatorShow
	}
	return IndicatorHide
}
