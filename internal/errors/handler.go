// Package errors routes user-facing messages to the CLI or the TUI.
package errors

import (
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/deskhide/internal/colors"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// Actionable is implemented by errors that carry a hint telling the user how
// to fix the condition.
type Actionable interface {
	error
	Hint() string
}

// Describe renders err for display, appending the hint of the first
// actionable error in its chain.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var actionable Actionable
	if stderrors.As(err, &actionable) && actionable.Hint() != "" {
		return err.Error() + " (" + actionable.Hint() + ")"
	}
	return err.Error()
}

// Report sends err to h as an error message. Nil errors are ignored.
func Report(h ErrorHandler, err error) {
	if h == nil || err == nil {
		return
	}
	h.Error(Describe(err))
}

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
type CLIHandler struct {
	out        ColorOutput
	mu         sync.Mutex
	inHandling bool
}

type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.out.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.out.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.out.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.out.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.out.Success(msg)
}

// consoleOutput prints handler messages through the colors package.
type consoleOutput struct{}

func (consoleOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (consoleOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (consoleOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (consoleOutput) Success(msgs ...string) { colors.Success(msgs...) }

// NewDefaultCLIHandler returns a handler that prints to the console.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(consoleOutput{})
}
