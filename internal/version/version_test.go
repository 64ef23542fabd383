package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{"development version without commit", "development", "unknown", "development"},
		{"release version with commit", "1.0.0", "abc1234", "1.0.0+abc1234"},
		{"unknown commit shows only version", "2.0.0", "unknown", "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit := Version, Commit
			defer func() {
				Version, Commit = origVersion, origCommit
			}()

			Version = tt.version
			Commit = tt.commit
			assert.Equal(t, tt.expected, String())
		})
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	assert.Contains(t, Full(), "deskhide ")
	assert.Contains(t, Full(), runtime.GOOS+"/"+runtime.GOARCH)
}
