package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const logFilePrefix = "deskhide_"

// rotate removes the oldest log files in dir when the number of files exceeds maxFiles.
// Only files named "deskhide_*.log" are considered.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	type logFile struct {
		path    string
		modUnix int64
	}
	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		var mod int64
		if info, err := entry.Info(); err == nil {
			mod = info.ModTime().UnixNano()
		}
		files = append(files, logFile{path: filepath.Join(dir, name), modUnix: mod})
	}
	if len(files) <= maxFiles {
		return nil
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].modUnix == files[j].modUnix {
			return files[i].path < files[j].path
		}
		return files[i].modUnix < files[j].modUnix
	})
	for _, f := range files[:len(files)-maxFiles] {
		os.Remove(f.path) // ignore errors
	}
	return nil
}
