package directory

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/platform/notify"
)

// ── Mock backend ──

type mockListBackend struct {
	doctors []api.Doctor
	err     error
}

func (m *mockListBackend) ListDoctors(_ context.Context) ([]api.Doctor, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.doctors, nil
}

var sampleDoctors = []api.Doctor{
	{ID: "doc1", Name: "Dr. Amal", Speciality: "Dermatologist", Available: true},
	{ID: "doc2", Name: "Dr. Karim", Speciality: "Neurologist"},
	{ID: "doc3", Name: "Dr. Nadia", Speciality: "dermatologist", Available: true},
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	backend := &mockListBackend{doctors: sampleDoctors}
	c := NewCache(backend, &notify.Recorder{}, zerolog.Nop())

	c.Refresh(context.Background())
	if got := c.Doctors(); len(got) != 3 || got[0].ID != "doc1" {
		t.Fatalf("unexpected doctors: %+v", got)
	}

	backend.doctors = sampleDoctors[:1]
	c.Refresh(context.Background())
	if got := c.Doctors(); len(got) != 1 {
		t.Errorf("expected wholesale replacement, got %d doctors", len(got))
	}
}

func TestRefresh_FailureKeepsPriorList(t *testing.T) {
	backend := &mockListBackend{doctors: sampleDoctors}
	rec := &notify.Recorder{}
	c := NewCache(backend, rec, zerolog.Nop())
	c.Refresh(context.Background())

	backend.err = fmt.Errorf("connection refused")
	c.Refresh(context.Background())

	if got := c.Doctors(); len(got) != 3 {
		t.Errorf("expected prior list kept on failure, got %d doctors", len(got))
	}
	if len(rec.Errors) != 1 || rec.Errors[0] != "Failed to fetch doctors." {
		t.Errorf("unexpected notifications: %v", rec.Errors)
	}
}

func TestBySpeciality_CaseInsensitive(t *testing.T) {
	c := NewCache(&mockListBackend{doctors: sampleDoctors}, &notify.Recorder{}, zerolog.Nop())
	c.Refresh(context.Background())

	got := c.BySpeciality("DERMATOLOGIST")
	if len(got) != 2 || got[0].ID != "doc1" || got[1].ID != "doc3" {
		t.Errorf("unexpected filter result: %+v", got)
	}
}

func TestByID(t *testing.T) {
	c := NewCache(&mockListBackend{doctors: sampleDoctors}, &notify.Recorder{}, zerolog.Nop())
	c.Refresh(context.Background())

	if d := c.ByID("doc2"); d == nil || d.Name != "Dr. Karim" {
		t.Errorf("unexpected doctor: %+v", d)
	}
	if d := c.ByID("nope"); d != nil {
		t.Errorf("expected nil for unknown id, got %+v", d)
	}
}

func TestDoctors_ReturnsCopy(t *testing.T) {
	c := NewCache(&mockListBackend{doctors: sampleDoctors}, &notify.Recorder{}, zerolog.Nop())
	c.Refresh(context.Background())

	got := c.Doctors()
	got[0].Name = "mutated"
	if c.Doctors()[0].Name != "Dr. Amal" {
		t.Error("expected cache to be isolated from caller mutation")
	}
}
