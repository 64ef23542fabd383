package session

import "io/fs"

// deniedFS fails every directory read with a permission error.
type deniedFS struct{}

func (deniedFS) ReadDir(string) ([]fs.DirEntry, error) { return nil, fs.ErrPermission }
func (deniedFS) Attributes(string) (uint32, error)     { return 0, fs.ErrPermission }
func (deniedFS) SetAttributes(string, uint32) error    { return fs.ErrPermission }
