//go:build !windows

package attrsync

import "errors"

// errNoAttributes is returned where Windows file attributes do not exist.
var errNoAttributes = errors.New("file attributes are only supported on windows")

func getAttributes(string) (uint32, error) {
	return 0, errNoAttributes
}

func setAttributes(string, uint32) error {
	return errNoAttributes
}

// ShellNotifier does nothing outside Windows.
type ShellNotifier struct{}

func (ShellNotifier) Refresh() error { return nil }
