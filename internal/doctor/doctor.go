// Package doctor holds the doctor-scoped session state: the doctor's
// own profile, the appointment list and the dashboard aggregates. Every
// mutation is followed by a wholesale re-fetch of the dependent state
// rather than a local patch, keeping the client consistent with the
// authoritative backend.
package doctor

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/platform/notify"
)

// Backend is the slice of the API client the doctor session needs.
type Backend interface {
	GetDoctorProfile(ctx context.Context, token string) (*api.Doctor, error)
	GetDoctorAppointments(ctx context.Context, token string) ([]api.Appointment, error)
	GetDoctorDashboard(ctx context.Context, token string) (*api.DashboardData, error)
	CancelAppointment(ctx context.Context, token, appointmentID string) (string, error)
	CompleteAppointment(ctx context.Context, token, appointmentID string) (string, error)
}

// Session is the doctor-side state context. All operations require a
// non-empty token; without one they log an error and perform no network
// call. Safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	opMu    sync.Mutex
	backend Backend
	notify  notify.Notifier
	log     zerolog.Logger

	token        string
	profile      *api.Doctor
	appointments []api.Appointment
	dashboard    *api.DashboardData
}

// NewSession builds a Session bound to the given doctor token.
func NewSession(token string, backend Backend, n notify.Notifier, logger zerolog.Logger) *Session {
	return &Session{
		backend: backend,
		notify:  n,
		log:     logger.With().Str("component", "doctor-session").Logger(),
		token:   token,
	}
}

// SetToken replaces the session's doctor token.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) currentToken(op string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		s.log.Error().Str("op", op).Msg("no doctor token available")
		return "", false
	}
	return s.token, true
}

func (s *Session) notifyFailure(err error, fallback string) {
	if be, ok := api.AsBackendError(err); ok && be.UserMessage() != "" {
		s.notify.Errorf("%s", be.UserMessage())
		return
	}
	s.notify.Errorf("%s", fallback)
}

// ---------------------------------------------------------------------------
// Loaders
// ---------------------------------------------------------------------------

// LoadAppointments fetches the doctor's appointments and stores them in
// reverse of the server's delivery order, most recent first. On failure
// the prior list is kept.
func (s *Session) LoadAppointments(ctx context.Context) {
	token, ok := s.currentToken("load appointments")
	if !ok {
		return
	}

	appts, err := s.backend.GetDoctorAppointments(ctx, token)
	if err != nil {
		s.log.Error().Err(err).Msg("load appointments")
		s.notifyFailure(err, "Failed to fetch appointments.")
		return
	}

	reversed := make([]api.Appointment, len(appts))
	for i, a := range appts {
		reversed[len(appts)-1-i] = a
	}

	s.mu.Lock()
	s.appointments = reversed
	s.mu.Unlock()
}

// LoadProfile fetches the doctor's own profile.
func (s *Session) LoadProfile(ctx context.Context) {
	token, ok := s.currentToken("load profile")
	if !ok {
		return
	}

	profile, err := s.backend.GetDoctorProfile(ctx, token)
	if err != nil {
		s.log.Error().Err(err).Msg("load profile")
		s.notifyFailure(err, "Failed to fetch profile data.")
		return
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

// LoadDashboard fetches the backend-computed dashboard aggregates. The
// client never derives these from the appointment list.
func (s *Session) LoadDashboard(ctx context.Context) {
	token, ok := s.currentToken("load dashboard")
	if !ok {
		return
	}

	dash, err := s.backend.GetDoctorDashboard(ctx, token)
	if err != nil {
		s.log.Error().Err(err).Msg("load dashboard")
		s.notifyFailure(err, "Failed to fetch dashboard data.")
		return
	}

	s.mu.Lock()
	s.dashboard = dash
	s.mu.Unlock()
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// Cancel posts a cancellation for the given appointment id. On success
// the appointment list and dashboard are re-fetched wholesale; there is
// no optimistic local mutation. On failure nothing changes.
func (s *Session) Cancel(ctx context.Context, appointmentID string) {
	s.mutate(ctx, "cancel appointment", appointmentID, s.backend.CancelAppointment, "Failed to cancel appointment.")
}

// Complete marks the given appointment completed, then resynchronizes
// like Cancel.
func (s *Session) Complete(ctx context.Context, appointmentID string) {
	s.mutate(ctx, "complete appointment", appointmentID, s.backend.CompleteAppointment, "Failed to complete appointment.")
}

func (s *Session) mutate(
	ctx context.Context,
	op, appointmentID string,
	call func(ctx context.Context, token, id string) (string, error),
	fallback string,
) {
	// Serialize mutation+resync pairs so a slow re-fetch from an earlier
	// mutation can never overwrite the state of a later one.
	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, ok := s.currentToken(op)
	if !ok {
		return
	}

	msg, err := call(ctx, token, appointmentID)
	if err != nil {
		s.log.Error().Err(err).Str("appointment_id", appointmentID).Msg(op)
		s.notifyFailure(err, fallback)
		return
	}

	s.notify.Successf("%s", msg)
	s.LoadAppointments(ctx)
	s.LoadDashboard(ctx)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Appointments returns a copy of the stored list, most recent first.
func (s *Session) Appointments() []api.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Profile returns the cached doctor profile, or nil.
func (s *Session) Profile() *api.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Dashboard returns the cached dashboard aggregates, or nil.
func (s *Session) Dashboard() *api.DashboardData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dashboard == nil {
		return nil
	}
	d := *s.dashboard
	return &d
}
