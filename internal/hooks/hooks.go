// Package hooks runs user scripts around toggles and attribute applies.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/cristianoliveira/deskhide/internal/colors"
	"github.com/cristianoliveira/deskhide/internal/config"
)

// Hook points.
const (
	PreToggle  = "pre-toggle"
	PostToggle = "post-toggle"
	PreApply   = "pre-apply"
	PostApply  = "post-apply"
)

// Failure modes.
const (
	FailureModeIgnore = "ignore"
	FailureModeWarn   = "warn"
	FailureModeAbort  = "abort"
)

// hookTimeout bounds a single script run.
const hookTimeout = 30 * time.Second

// Runner executes hooks for a hook point. Components take a Runner so tests
// can record hook invocations without spawning processes.
type Runner interface {
	Run(hookPoint string, envVars ...string) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(hookPoint string, envVars ...string) error

func (f RunnerFunc) Run(hookPoint string, envVars ...string) error {
	return f(hookPoint, envVars...)
}

// Default runs hooks from the configured hooks directory.
var Default Runner = RunnerFunc(Run)

// Nop is a Runner that does nothing.
var Nop Runner = RunnerFunc(func(string, ...string) error { return nil })

// Init ensures the hooks directory exists.
func Init() error {
	dir := getHooksDir()
	if err := os.MkdirAll(dir, config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create hooks directory %s: %w", dir, err)
	}
	return nil
}

func getHooksDir() string {
	return config.Get("hooks_dir", "")
}

func getFailureMode() string {
	return config.Get("hooks_failure_mode", FailureModeWarn)
}

func hooksEnabled() bool {
	return config.GetBool("hooks_enabled", true)
}

// isExecutable reports whether a hook file can be run directly.
func isExecutable(name string, info os.FileInfo) bool {
	if runtime.GOOS == "windows" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".exe", ".bat", ".cmd":
			return true
		}
		return false
	}
	return info.Mode()&0111 != 0
}

// runSyncHook executes a hook script and applies the failure mode.
func runSyncHook(scriptPath, scriptName string, env []string, failureMode string) error {
	ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, scriptPath)
	cmd.Env = env
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	if len(output) > 0 {
		colors.Debug(fmt.Sprintf("hook %s output: %s", scriptName, strings.TrimSpace(string(output))))
	}
	if err == nil {
		colors.Debug(fmt.Sprintf("hook %s completed in %.2fs", scriptName, duration.Seconds()))
		return nil
	}

	switch failureMode {
	case FailureModeAbort:
		return fmt.Errorf("hook %s failed: %w, output: %s", scriptName, err, output)
	case FailureModeWarn:
		colors.Warning(fmt.Sprintf("hook %s failed: %v", scriptName, err))
	}
	return nil
}

// Run executes the executable scripts in hooks_dir/<hookPoint>/ in lexical
// order. envVars are KEY=VALUE pairs; keys are exported with the DESKHIDE_
// prefix. Only the abort failure mode returns an error.
func Run(hookPoint string, envVars ...string) error {
	if !hooksEnabled() {
		return nil
	}
	dir := getHooksDir()
	if dir == "" {
		return nil
	}
	hookDir := filepath.Join(dir, hookPoint)
	files, err := os.ReadDir(hookDir)
	if err != nil {
		return nil
	}

	type scriptInfo struct {
		path string
		name string
	}
	var scripts []scriptInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		scriptPath := filepath.Join(hookDir, f.Name())
		info, err := os.Stat(scriptPath)
		if err != nil || !isExecutable(f.Name(), info) {
			continue
		}
		scripts = append(scripts, scriptInfo{path: scriptPath, name: f.Name()})
	}
	if len(scripts) == 0 {
		return nil
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].name < scripts[j].name
	})

	failureMode := getFailureMode()
	env := buildEnv(hookPoint, failureMode, envVars)
	colors.Debug(fmt.Sprintf("running %s hooks (%d script(s))", hookPoint, len(scripts)))

	for _, script := range scripts {
		if err := runSyncHook(script.path, script.name, env, failureMode); err != nil {
			return err
		}
	}
	return nil
}

func buildEnv(hookPoint, failureMode string, envVars []string) []string {
	env := os.Environ()
	env = append(env,
		config.EnvPrefix+"HOOK_POINT="+hookPoint,
		config.EnvPrefix+"HOOKS_FAILURE_MODE="+failureMode,
		config.EnvPrefix+"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		env = append(env, config.EnvPrefix+"BINARY="+exe)
	}
	for _, v := range envVars {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 {
			continue
		}
		env = append(env, config.EnvPrefix+parts[0]+"="+parts[1])
	}
	return env
}
