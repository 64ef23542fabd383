package preferences

import (
	"fmt"
	"os"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 50 * time.Millisecond
	// lockStaleAfter is the age after which a leftover lock directory from a
	// crashed process is broken.
	lockStaleAfter = 30 * time.Second
)

// Lock represents a directory-based lock.
type Lock struct {
	dir string
}

// NewLock creates a new lock at the given directory path.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir}
}

// Acquire creates the lock directory, retrying until timeout.
func (l *Lock) Acquire() error {
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, 0o755)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if info, statErr := os.Stat(l.dir); statErr == nil && time.Since(info.ModTime()) > lockStaleAfter {
			_ = os.Remove(l.dir)
			continue
		}
		if time.Since(start) > lockTimeout {
			return fmt.Errorf("lock %s held by another process after %s", l.dir, lockTimeout)
		}
		time.Sleep(lockRetry)
	}
}

// Release releases the lock by removing the directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock.
func WithLock(dir string, fn func() error) error {
	lock := NewLock(dir)
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer lock.Release()
	return fn()
}
