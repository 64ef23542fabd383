package attrsync

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvError reports a required environment variable that is not set.
type EnvError struct {
	Var string
}

func (e *EnvError) Error() string {
	return "environment variable " + e.Var + " is not set"
}

// Hint tells the user how to fix the environment.
func (e *EnvError) Hint() string {
	return "set " + e.Var + " or configure user_desktop_dir"
}

// ErrUserNameMissing is returned when the user desktop cannot be located
// because USERNAME is unset and no override is configured.
var ErrUserNameMissing error = &EnvError{Var: "USERNAME"}

// Locations describes where the two desktop folders live.
type Locations struct {
	// UsersRoot holds per-user profile directories, e.g. C:\Users.
	UsersRoot string
	// UserDesktopDir overrides the per-user desktop when set.
	UserDesktopDir string
	// PublicDesktopDir is the desktop shared by all users.
	PublicDesktopDir string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Resolve returns the user desktop followed by the public desktop. Empty
// public paths are left out.
func (l Locations) Resolve() ([]string, error) {
	userDesktop := strings.TrimSpace(l.UserDesktopDir)
	if userDesktop == "" {
		lookup := l.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		name, ok := lookup("USERNAME")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, ErrUserNameMissing
		}
		userDesktop = filepath.Join(l.UsersRoot, name, "Desktop")
	}

	dirs := []string{userDesktop}
	if public := strings.TrimSpace(l.PublicDesktopDir); public != "" && public != userDesktop {
		dirs = append(dirs, public)
	}
	return dirs, nil
}
