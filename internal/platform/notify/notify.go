// Package notify delivers transient, user-facing notifications. Every
// failed or completed store operation is reported here exactly once;
// errors never propagate past the operation that produced them.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives transient user-facing messages.
type Notifier interface {
	Successf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ---------------------------------------------------------------------------
// Terminal notifier
// ---------------------------------------------------------------------------

// Terminal writes notifications to a writer, one per line, prefixed by
// severity. It is the CLI's stand-in for the original UI's toast layer.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a Terminal notifier writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Successf(format string, args ...interface{}) {
	t.write("OK", format, args...)
}

func (t *Terminal) Errorf(format string, args ...interface{}) {
	t.write("ERROR", format, args...)
}

func (t *Terminal) write(level, format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

// ---------------------------------------------------------------------------
// Recorder (test double)
// ---------------------------------------------------------------------------

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Successf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, fmt.Sprintf(format, args...))
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Reset clears all captured notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = nil
	r.Errors = nil
}
