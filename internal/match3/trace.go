package match3

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Trace is a line-oriented, indented record of every engine decision.
// A nil *Trace discards everything.
type Trace struct {
	lines  []string
	depth  int
	logger *log.Logger
}

// NewTrace creates a trace. If logger is non-nil every line is also
// written to it at debug level.
func NewTrace(logger *log.Logger) *Trace {
	return &Trace{logger: logger}
}

// Logf appends one line at the current depth.
func (t *Trace) Logf(format string, args ...any) {
	if t == nil {
		return
	}
	t.push(fmt.Sprintf(format, args...))
}

// Group opens a nested block: the label, then "{" on its own line.
func (t *Trace) Group(label string) {
	if t == nil {
		return
	}
	t.push(label)
	t.push("{")
	t.depth++
}

// End closes the innermost block. Extra calls are ignored.
func (t *Trace) End() {
	if t == nil || t.depth == 0 {
		return
	}
	t.depth--
	t.push("}")
}

// Depth returns the current nesting level.
func (t *Trace) Depth() int {
	if t == nil {
		return 0
	}
	return t.depth
}

// Lines returns a copy of the recorded lines.
func (t *Trace) Lines() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Reset drops every line and closes all blocks.
func (t *Trace) Reset() {
	if t == nil {
		return
	}
	t.lines = t.lines[:0]
	t.depth = 0
}

// String joins the lines with newlines.
func (t *Trace) String() string {
	if t == nil {
		return ""
	}
	return strings.Join(t.lines, "\n")
}

func (t *Trace) push(msg string) {
	line := strings.Repeat("  ", t.depth) + msg
	t.lines = append(t.lines, line)
	if t.logger != nil {
		t.logger.Debug(msg, "depth", t.depth)
	}
}
