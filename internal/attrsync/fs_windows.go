//go:build windows

package attrsync

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const (
	shcneAssocChanged = 0x08000000
	shcnfFlush        = 0x1000
)

var (
	shell32            = windows.NewLazySystemDLL("shell32.dll")
	procSHChangeNotify = shell32.NewProc("SHChangeNotify")
)

func getAttributes(path string) (uint32, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return windows.GetFileAttributes(p)
}

func setAttributes(path string, attrs uint32) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return windows.SetFileAttributes(p, attrs)
}

// ShellNotifier flushes the shell's association cache so Explorer redraws
// desktop icons.
type ShellNotifier struct{}

func (ShellNotifier) Refresh() error {
	if err := procSHChangeNotify.Find(); err != nil {
		return fmt.Errorf("SHChangeNotify: %w", err)
	}
	procSHChangeNotify.Call(shcneAssocChanged, shcnfFlush, 0, 0)
	return nil
}
