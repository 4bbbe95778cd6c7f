package doctor

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/platform/notify"
)

// ── Mock backend ──

type mockBackend struct {
	mu sync.Mutex

	appointments []api.Appointment
	dashboard    *api.DashboardData
	profile      *api.Doctor

	apptErr   error
	dashErr   error
	mutateErr error

	apptCalls int
	dashCalls int
	cancelled []string
	completed []string
}

func (m *mockBackend) GetDoctorProfile(_ context.Context, token string) (*api.Doctor, error) {
	return m.profile, nil
}

func (m *mockBackend) GetDoctorAppointments(_ context.Context, token string) ([]api.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apptCalls++
	if m.apptErr != nil {
		return nil, m.apptErr
	}
	out := make([]api.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *mockBackend) GetDoctorDashboard(_ context.Context, token string) (*api.DashboardData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashCalls++
	if m.dashErr != nil {
		return nil, m.dashErr
	}
	return m.dashboard, nil
}

func (m *mockBackend) CancelAppointment(_ context.Context, token, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mutateErr != nil {
		return "", m.mutateErr
	}
	m.cancelled = append(m.cancelled, id)
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Cancelled = true
		}
	}
	return "Appointment cancelled", nil
}

func (m *mockBackend) CompleteAppointment(_ context.Context, token, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mutateErr != nil {
		return "", m.mutateErr
	}
	m.completed = append(m.completed, id)
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Completed = true
		}
	}
	return "Appointment completed", nil
}

func newTestSession(token string, backend Backend) (*Session, *notify.Recorder) {
	rec := &notify.Recorder{}
	return NewSession(token, backend, rec, zerolog.Nop()), rec
}

// ── Loaders ──

func TestLoadAppointments_ReversesDeliveryOrder(t *testing.T) {
	backend := &mockBackend{appointments: []api.Appointment{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}}
	s, _ := newTestSession("dtok", backend)

	s.LoadAppointments(context.Background())

	got := s.Appointments()
	if len(got) != 3 || got[0].ID != "a3" || got[1].ID != "a2" || got[2].ID != "a1" {
		t.Errorf("expected [a3 a2 a1], got %+v", got)
	}
}

func TestLoadAppointments_NoTokenNoCall(t *testing.T) {
	backend := &mockBackend{}
	s, rec := newTestSession("", backend)

	s.LoadAppointments(context.Background())
	if backend.apptCalls != 0 {
		t.Errorf("expected no network call without token, got %d", backend.apptCalls)
	}
	if len(rec.Errors) != 0 {
		t.Errorf("missing token is a silent no-op, got %v", rec.Errors)
	}
}

func TestLoadAppointments_FailureKeepsPriorList(t *testing.T) {
	backend := &mockBackend{appointments: []api.Appointment{{ID: "a1"}, {ID: "a2"}}}
	s, rec := newTestSession("dtok", backend)
	s.LoadAppointments(context.Background())

	backend.apptErr = fmt.Errorf("connection refused")
	s.LoadAppointments(context.Background())

	if got := s.Appointments(); len(got) != 2 {
		t.Errorf("expected prior list kept, got %+v", got)
	}
	if len(rec.Errors) != 1 || rec.Errors[0] != "Failed to fetch appointments." {
		t.Errorf("unexpected notifications: %v", rec.Errors)
	}
}

func TestLoadDashboard_StoresWholesale(t *testing.T) {
	backend := &mockBackend{dashboard: &api.DashboardData{Earnings: 500, Appointments: 10, Patients: 7}}
	s, _ := newTestSession("dtok", backend)

	s.LoadDashboard(context.Background())

	d := s.Dashboard()
	if d == nil || d.Earnings != 500 || d.Appointments != 10 || d.Patients != 7 {
		t.Errorf("unexpected dashboard: %+v", d)
	}
}

func TestLoadProfile(t *testing.T) {
	backend := &mockBackend{profile: &api.Doctor{ID: "doc1", Name: "Dr. Amal"}}
	s, _ := newTestSession("dtok", backend)

	s.LoadProfile(context.Background())
	if p := s.Profile(); p == nil || p.Name != "Dr. Amal" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

// ── Mutations ──

func TestCancel_TriggersExactlyOneResyncEach(t *testing.T) {
	backend := &mockBackend{
		appointments: []api.Appointment{{ID: "a1"}, {ID: "a2"}},
		dashboard:    &api.DashboardData{Appointments: 2},
	}
	s, rec := newTestSession("dtok", backend)

	s.Cancel(context.Background(), "a1")

	if backend.apptCalls != 1 {
		t.Errorf("expected exactly one appointments re-fetch, got %d", backend.apptCalls)
	}
	if backend.dashCalls != 1 {
		t.Errorf("expected exactly one dashboard re-fetch, got %d", backend.dashCalls)
	}
	if len(rec.Successes) != 1 || rec.Successes[0] != "Appointment cancelled" {
		t.Errorf("unexpected notifications: %v", rec.Successes)
	}

	for _, a := range s.Appointments() {
		if a.ID == "a1" && !a.Cancelled {
			t.Error("expected resynced list to reflect the cancellation")
		}
	}
}

func TestCancel_FailureTriggersNoResync(t *testing.T) {
	backend := &mockBackend{
		appointments: []api.Appointment{{ID: "a1"}},
		mutateErr:    &api.BackendError{Op: "cancel appointment", Message: "already cancelled"},
	}
	s, rec := newTestSession("dtok", backend)

	s.Cancel(context.Background(), "a1")

	if backend.apptCalls != 0 || backend.dashCalls != 0 {
		t.Errorf("expected no re-fetches on failure, got %d/%d", backend.apptCalls, backend.dashCalls)
	}
	if len(rec.Errors) != 1 || rec.Errors[0] != "already cancelled" {
		t.Errorf("unexpected notifications: %v", rec.Errors)
	}
}

func TestComplete_MirrorsCancel(t *testing.T) {
	backend := &mockBackend{
		appointments: []api.Appointment{{ID: "a1"}},
		dashboard:    &api.DashboardData{},
	}
	s, rec := newTestSession("dtok", backend)

	s.Complete(context.Background(), "a1")

	if len(backend.completed) != 1 || backend.completed[0] != "a1" {
		t.Errorf("unexpected completions: %v", backend.completed)
	}
	if backend.apptCalls != 1 || backend.dashCalls != 1 {
		t.Errorf("expected one resync each, got %d/%d", backend.apptCalls, backend.dashCalls)
	}
	if len(rec.Successes) != 1 {
		t.Errorf("expected one success notification, got %v", rec.Successes)
	}
}

func TestMutate_NoTokenNoCall(t *testing.T) {
	backend := &mockBackend{appointments: []api.Appointment{{ID: "a1"}}}
	s, _ := newTestSession("", backend)

	s.Cancel(context.Background(), "a1")
	if len(backend.cancelled) != 0 || backend.apptCalls != 0 {
		t.Error("expected no calls without a token")
	}
}

// Two rapid cancels for different ids must both land; each resync
// re-fetches wholesale, so resolution order cannot corrupt state.
func TestConcurrentCancels_BothApply(t *testing.T) {
	backend := &mockBackend{
		appointments: []api.Appointment{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}},
		dashboard:    &api.DashboardData{},
	}
	s, _ := newTestSession("dtok", backend)

	var wg sync.WaitGroup
	for _, id := range []string{"a1", "a2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.Cancel(context.Background(), id)
		}(id)
	}
	wg.Wait()

	if len(backend.cancelled) != 2 {
		t.Fatalf("expected both cancellations to land, got %v", backend.cancelled)
	}

	cancelled := map[string]bool{}
	for _, a := range s.Appointments() {
		cancelled[a.ID] = a.Cancelled
	}
	if !cancelled["a1"] || !cancelled["a2"] || cancelled["a3"] {
		t.Errorf("final state does not reflect both cancellations: %v", cancelled)
	}
}
