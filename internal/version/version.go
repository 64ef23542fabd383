// Package version provides version information for deskhide.
package version

import "runtime"

// Version is the version of deskhide. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// Full returns the version string with the target platform, as printed by
// the version command.
func Full() string {
	return "deskhide " + String() + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
