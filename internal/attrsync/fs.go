package attrsync

import (
	"io/fs"
	"os"
)

// AttributeHidden is the hidden bit of Windows file attributes.
const AttributeHidden uint32 = 0x2

// Filesystem is the part of the file system the synchronizer touches.
type Filesystem interface {
	ReadDir(dir string) ([]fs.DirEntry, error)
	Attributes(path string) (uint32, error)
	SetAttributes(path string, attrs uint32) error
}

// Notifier tells the shell to redraw the desktop.
type Notifier interface {
	Refresh() error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func() error

func (f NotifierFunc) Refresh() error { return f() }

// OSFilesystem is the real file system.
type OSFilesystem struct{}

var _ Filesystem = OSFilesystem{}

func (OSFilesystem) ReadDir(dir string) ([]fs.DirEntry, error) {
	return os.ReadDir(dir)
}

func (OSFilesystem) Attributes(path string) (uint32, error) {
	return getAttributes(path)
}

func (OSFilesystem) SetAttributes(path string, attrs uint32) error {
	return setAttributes(path, attrs)
}
