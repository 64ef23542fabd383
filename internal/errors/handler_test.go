package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeOutput struct {
	errors, warnings, infos, successes []string
}

func (f *fakeOutput) Error(msgs ...string)   { f.errors = append(f.errors, msgs...) }
func (f *fakeOutput) Warning(msgs ...string) { f.warnings = append(f.warnings, msgs...) }
func (f *fakeOutput) Info(msgs ...string)    { f.infos = append(f.infos, msgs...) }
func (f *fakeOutput) Success(msgs ...string) { f.successes = append(f.successes, msgs...) }

type hinted struct{ hint string }

func (h hinted) Error() string { return "username missing" }
func (h hinted) Hint() string  { return h.hint }

func TestCLIHandlerRoutesMessages(t *testing.T) {
	out := &fakeOutput{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"e"}, out.errors)
	assert.Equal(t, []string{"w"}, out.warnings)
	assert.Equal(t, []string{"i"}, out.infos)
	assert.Equal(t, []string{"s"}, out.successes)
}

func TestDescribeAppendsHint(t *testing.T) {
	err := fmt.Errorf("toggle: %w", hinted{hint: "set USERNAME"})
	assert.Equal(t, "toggle: username missing (set USERNAME)", Describe(err))
	assert.Equal(t, "plain", Describe(stderrors.New("plain")))
	assert.Equal(t, "", Describe(nil))
}

func TestReport(t *testing.T) {
	out := &fakeOutput{}
	h := NewCLIHandler(out)

	Report(h, nil)
	Report(nil, stderrors.New("ignored"))
	Report(h, hinted{hint: "fix it"})

	assert.Equal(t, []string{"username missing (fix it)"}, out.errors)
}

func TestTUIHandlerKeepsBoundedHistory(t *testing.T) {
	var seen []Message
	h := NewTUIHandler(func(msg Message) { seen = append(seen, msg) })

	for i := 0; i < maxTUIMessages+5; i++ {
		h.Info(fmt.Sprintf("msg %d", i))
	}
	h.Error("last")

	latest, ok := h.GetLatest()
	assert.True(t, ok)
	assert.Equal(t, "last", latest.Text)
	assert.Equal(t, MessageTypeError, latest.Type)
	assert.Len(t, h.GetAll(), maxTUIMessages)
	assert.Len(t, seen, maxTUIMessages+6)

	h.Clear()
	_, ok = h.GetLatest()
	assert.False(t, ok)
}
