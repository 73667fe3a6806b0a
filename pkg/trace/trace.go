// Package trace emits the human-readable resolution trace.
// Output is purely cosmetic: disabling it never changes a result.
package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Tracer writes trace lines to an io.Writer while enabled.
// Safe for concurrent use; lines from parallel calls may interleave.
type Tracer struct {
	mu      sync.Mutex
	w       io.Writer
	enabled atomic.Bool
}

// New returns an enabled Tracer writing to w (os.Stdout when nil).
func New(w io.Writer) *Tracer {
	if w == nil {
		w = os.Stdout
	}
	t := &Tracer{w: w}
	t.enabled.Store(true)
	return t
}

// Discard returns a disabled Tracer.
func Discard() *Tracer {
	t := &Tracer{w: io.Discard}
	return t
}

// SetEnabled toggles trace output.
func (t *Tracer) SetEnabled(v bool) {
	if t == nil {
		return
	}
	t.enabled.Store(v)
}

// Enabled reports whether trace output is on. A nil Tracer is disabled.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled.Load()
}

// Printf writes a formatted line (newline appended).
func (t *Tracer) Printf(format string, args ...any) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format+"\n", args...)
}

// Progress writes a carriage-return prefixed counter without a newline,
// overwriting the previous progress line on a terminal.
func (t *Tracer) Progress(n int, done bool) {
	if !t.Enabled() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if done {
		fmt.Fprintf(t.w, "\r  %d lines.          \n", n)
		return
	}
	fmt.Fprintf(t.w, "\r  %d lines...          ", n)
}
