package colors

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStream(t *testing.T, stream **os.File, fn func()) string {
	t.Helper()
	old := *stream
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*stream = w
	defer func() { *stream = old }()

	fn()
	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

type recordingLogger struct {
	levels   []string
	messages []string
}

func (r *recordingLogger) record(level, msg string) {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, msg)
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg) }

func TestError(t *testing.T) {
	output := captureStream(t, &os.Stderr, func() { Error("something went wrong") })
	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "something went wrong")
	assert.Contains(t, output, Red)
}

func TestSuccess(t *testing.T) {
	output := captureStream(t, &os.Stdout, func() { Success("icons hidden") })
	assert.Contains(t, output, checkmark)
	assert.Contains(t, output, "icons hidden")
	assert.Contains(t, output, Green)
}

func TestQuietSuppressesInfoButNotWarnings(t *testing.T) {
	SetQuiet(true)
	defer SetQuiet(false)

	stdout := captureStream(t, &os.Stdout, func() { Info("hello") })
	assert.Empty(t, stdout)
	stderr := captureStream(t, &os.Stderr, func() { Warning("careful") })
	assert.Contains(t, stderr, "careful")
}

func TestDebugOnlyWhenEnabled(t *testing.T) {
	SetDebug(false)
	assert.Empty(t, captureStream(t, &os.Stderr, func() { Debug("hidden") }))

	SetDebug(true)
	defer SetDebug(false)
	assert.Contains(t, captureStream(t, &os.Stderr, func() { Debug("shown") }), "shown")
}

func TestLoggerMirror(t *testing.T) {
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	captureStream(t, &os.Stderr, func() {
		Error("e")
		Warning("w")
	})
	captureStream(t, &os.Stdout, func() { Info("i") })

	assert.Equal(t, []string{"error", "warn", "info"}, rec.levels)
	assert.Equal(t, []string{"e", "w", "i"}, rec.messages)
}

func TestTraceStepWritesJSON(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	output := captureStream(t, &os.Stderr, func() {
		TraceStep("attrsync", "scan", "failed", errors.New("boom"), map[string]any{"location": "desk"})
	})
	var entry Trace
	require.NoError(t, json.Unmarshal(bytes.TrimSpace([]byte(output)), &entry))
	assert.Equal(t, "error", entry.Level)
	assert.Equal(t, "attrsync", entry.Component)
	assert.Equal(t, "failed", entry.Outcome)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, "desk", entry.Fields["location"])
}

func TestTraceStepNeedsDebug(t *testing.T) {
	SetDebug(false)
	output := captureStream(t, &os.Stderr, func() {
		TraceStep("session", "switch", "completed", nil, nil)
	})
	assert.Empty(t, output)
}

func TestSuspendTraces(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)
	SuspendTraces()
	defer ResumeTraces()

	output := captureStream(t, &os.Stderr, func() {
		TraceStep("session", "switch", "completed", nil, nil)
	})
	assert.Empty(t, output)
}
