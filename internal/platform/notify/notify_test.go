package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminal_WritesPrefixedLines(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf)

	n.Successf("logged out %s", "successfully")
	n.Errorf("failed to fetch %s", "doctors")

	out := buf.String()
	if !strings.Contains(out, "[OK] logged out successfully") {
		t.Errorf("missing success line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] failed to fetch doctors") {
		t.Errorf("missing error line, got %q", out)
	}
}

func TestRecorder_CapturesAndResets(t *testing.T) {
	r := &Recorder{}
	r.Successf("a")
	r.Errorf("b %d", 2)

	if len(r.Successes) != 1 || r.Successes[0] != "a" {
		t.Errorf("unexpected successes: %v", r.Successes)
	}
	if len(r.Errors) != 1 || r.Errors[0] != "b 2" {
		t.Errorf("unexpected errors: %v", r.Errors)
	}

	r.Reset()
	if len(r.Successes) != 0 || len(r.Errors) != 0 {
		t.Error("expected recorder to be empty after Reset")
	}
}
