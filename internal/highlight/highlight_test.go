package highlight

import (
	"strings"
	"testing"
)

func TestApply_WholeWordSingleWrap(t *testing.T) {
	h := New("**", "**")
	got := h.Apply("I need a cardiologue")
	if got != "I need a **cardiologue**" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestApply_CaseInsensitiveUsesTableCasing(t *testing.T) {
	h := New("**", "**")
	// The replacement carries the table's casing, matching the original
	// client's behavior.
	got := h.Apply("See a Cardiologue soon")
	if got != "See a **cardiologue** soon" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestApply_NoPartialWordMatch(t *testing.T) {
	h := New("**", "**")
	got := h.Apply("cardiologues are great")
	if strings.Contains(got, "**") {
		t.Errorf("expected no match inside a longer word, got %q", got)
	}
}

func TestApply_MultipleTermsAndOccurrences(t *testing.T) {
	h := New("<strong>", "</strong>")
	got := h.Apply("a dentist or a dermatologist, maybe a dentist again")
	if strings.Count(got, "<strong>dentist</strong>") != 2 {
		t.Errorf("expected both dentist occurrences wrapped, got %q", got)
	}
	if !strings.Contains(got, "<strong>dermatologist</strong>") {
		t.Errorf("expected dermatologist wrapped, got %q", got)
	}
}

func TestApply_FrenchAccents(t *testing.T) {
	h := New("**", "**")
	got := h.Apply("consultez un pédiatre")
	if got != "consultez un **pédiatre**" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestApply_UntouchedText(t *testing.T) {
	h := New("**", "**")
	in := "drink water and rest"
	if got := h.Apply(in); got != in {
		t.Errorf("expected text untouched, got %q", got)
	}
}

func TestApply_EmptyInput(t *testing.T) {
	h := New("**", "**")
	if got := h.Apply(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestNewWithTable(t *testing.T) {
	h := NewWithTable("[", "]", []Term{{EN: "xray"}})
	if got := h.Apply("book an xray today"); got != "book an [xray] today" {
		t.Errorf("unexpected result %q", got)
	}
}
