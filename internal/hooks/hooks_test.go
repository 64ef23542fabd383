package hooks

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cristianoliveira/deskhide/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHooks(t *testing.T, failureMode string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	t.Setenv("DESKHIDE_HOOKS_DIR", filepath.Join(tmpDir, "hooks"))
	t.Setenv("DESKHIDE_HOOKS_FAILURE_MODE", failureMode)
	config.Load()
	require.NoError(t, Init())
	return filepath.Join(tmpDir, "hooks")
}

func writeScript(t *testing.T, dir, point, name, body string, mode os.FileMode) {
	t.Helper()
	hookDir := filepath.Join(dir, point)
	require.NoError(t, os.MkdirAll(hookDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hookDir, name), []byte("#!/bin/sh\n"+body+"\n"), mode))
}

func TestInitCreatesHooksDir(t *testing.T) {
	dir := setupHooks(t, "warn")
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunWithoutHookDirIsNoop(t *testing.T) {
	setupHooks(t, "abort")
	assert.NoError(t, Run(PreToggle, "HIDDEN=true"))
}

func TestRunPassesPrefixedEnvInOrder(t *testing.T) {
	dir := setupHooks(t, "abort")
	out := filepath.Join(t.TempDir(), "out.txt")
	writeScript(t, dir, PostToggle, "20-second.sh", `echo "second $DESKHIDE_HIDDEN" >> `+out, 0755)
	writeScript(t, dir, PostToggle, "10-first.sh", `echo "first $DESKHIDE_DESKTOP_ID $DESKHIDE_HOOK_POINT" >> `+out, 0755)

	require.NoError(t, Run(PostToggle, "DESKTOP_ID=abc", "HIDDEN=true"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{"first abc post-toggle", "second true"}, lines)
}

func TestNonExecutableScriptIsSkipped(t *testing.T) {
	dir := setupHooks(t, "abort")
	writeScript(t, dir, PreApply, "fail.sh", "exit 1", 0644)
	assert.NoError(t, Run(PreApply))
}

func TestFailureModes(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"abort", true},
		{"warn", false},
		{"ignore", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := setupHooks(t, tt.mode)
			writeScript(t, dir, PreToggle, "fail.sh", "exit 1", 0755)
			err := Run(PreToggle)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "hook fail.sh failed")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDisabledHooksDoNotRun(t *testing.T) {
	t.Setenv("DESKHIDE_HOOKS_ENABLED", "false")
	dir := setupHooks(t, "abort")
	writeScript(t, dir, PreToggle, "fail.sh", "exit 1", 0755)
	assert.NoError(t, Run(PreToggle))
}

func TestRunnerFuncAndNop(t *testing.T) {
	var got []string
	r := RunnerFunc(func(point string, env ...string) error {
		got = append(got, point)
		got = append(got, env...)
		return nil
	})
	require.NoError(t, r.Run(PreApply, "HIDDEN=false"))
	assert.Equal(t, []string{"pre-apply", "HIDDEN=false"}, got)
	assert.NoError(t, Nop.Run(PostApply))
}
