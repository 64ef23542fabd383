package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var (
	traceMu        sync.Mutex
	traceSuspended atomic.Bool
)

// Trace is one JSON line describing an engine step, written to stderr in
// debug mode so scripts can follow applies and switches.
type Trace struct {
	Time      string         `json:"time"`
	Level     string         `json:"level"`
	Component string         `json:"component"`
	Action    string         `json:"action"`
	Outcome   string         `json:"outcome"`
	Error     string         `json:"error,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// SuspendTraces stops trace output until ResumeTraces. The TUI owns the
// terminal while it runs.
func SuspendTraces() {
	traceSuspended.Store(true)
}

// ResumeTraces re-enables trace output.
func ResumeTraces() {
	traceSuspended.Store(false)
}

// TraceStep writes a trace line for component/action. A non-nil err makes it
// an error-level line carrying the message.
func TraceStep(component, action, outcome string, err error, fields map[string]any) {
	if !debugEnabled || traceSuspended.Load() {
		return
	}

	entry := Trace{
		Time:      time.Now().UTC().Format(time.RFC3339),
		Level:     "info",
		Component: component,
		Action:    action,
		Outcome:   outcome,
		Fields:    fields,
	}
	if err != nil {
		entry.Level = "error"
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		errorFallback(fmt.Sprintf("failed to encode trace: %v", marshalErr))
		return
	}

	traceMu.Lock()
	defer traceMu.Unlock()
	if _, writeErr := fmt.Fprintf(os.Stderr, "%s\n", data); writeErr != nil {
		errorFallback(fmt.Sprintf("failed to write trace: %v", writeErr))
	}
}
