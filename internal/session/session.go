// Package session holds the client's authentication state: the patient
// and doctor bearer tokens and the cached patient profile. Tokens are
// initialized from durable storage at construction so a restart does
// not lose the session.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/platform/notify"
	"github.com/medibook/medibook/internal/platform/storage"
)

// Role selects which of the two sessions a token belongs to.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func (r Role) storageKey() string {
	if r == RoleDoctor {
		return storage.KeyDoctorToken
	}
	return storage.KeyPatientToken
}

// ProfileBackend is the slice of the API client the session store needs.
type ProfileBackend interface {
	GetUserProfile(ctx context.Context, token string) (*api.UserProfile, error)
}

// Store is the shared session state. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	storage *storage.Store
	backend ProfileBackend
	notify  notify.Notifier
	log     zerolog.Logger

	tokens  map[Role]string
	profile *api.UserProfile
}

// NewStore builds a Store with tokens loaded from st.
func NewStore(st *storage.Store, backend ProfileBackend, n notify.Notifier, logger zerolog.Logger) *Store {
	return &Store{
		storage: st,
		backend: backend,
		notify:  n,
		log:     logger.With().Str("component", "session").Logger(),
		tokens: map[Role]string{
			RolePatient: st.Get(storage.KeyPatientToken),
			RoleDoctor:  st.Get(storage.KeyDoctorToken),
		},
	}
}

// Token returns the stored token for role, or "" when logged out.
func (s *Store) Token(role Role) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[role]
}

// SetToken stores a token in memory and durable storage. An empty value
// means "logged out" for that role. Setting a new non-empty patient
// token triggers a profile load, mirroring the original client's
// token-change effect.
func (s *Store) SetToken(ctx context.Context, role Role, value string) {
	s.mu.Lock()
	prev := s.tokens[role]
	s.tokens[role] = value
	if err := s.storage.Set(role.storageKey(), value); err != nil {
		s.log.Error().Err(err).Str("role", string(role)).Msg("persist token")
	}
	s.mu.Unlock()

	if role == RolePatient && value != "" && value != prev {
		s.LoadUserProfile(ctx)
	}
}

// Logout clears both tokens and the cached patient profile, from memory
// and from durable storage, and raises a success notification. Doctor
// session state held elsewhere is intentionally left alone.
func (s *Store) Logout() {
	s.mu.Lock()
	s.tokens[RolePatient] = ""
	s.tokens[RoleDoctor] = ""
	s.profile = nil
	if err := s.storage.Remove(storage.KeyPatientToken); err != nil {
		s.log.Error().Err(err).Msg("clear patient token")
	}
	if err := s.storage.Remove(storage.KeyDoctorToken); err != nil {
		s.log.Error().Err(err).Msg("clear doctor token")
	}
	s.mu.Unlock()

	s.notify.Successf("Logged out successfully.")
}

// LoadUserProfile fetches the patient profile. Without a patient token
// this is a no-op. On failure the prior profile is kept and a
// notification raised; the error never propagates to callers.
func (s *Store) LoadUserProfile(ctx context.Context) {
	token := s.Token(RolePatient)
	if token == "" {
		return
	}

	profile, err := s.backend.GetUserProfile(ctx, token)
	if err != nil {
		s.log.Error().Err(err).Msg("load user profile")
		if be, ok := api.AsBackendError(err); ok && be.UserMessage() != "" {
			s.notify.Errorf("%s", be.UserMessage())
		} else {
			s.notify.Errorf("Failed to load user profile.")
		}
		return
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}

// UserProfile returns the cached patient profile, or nil when none is
// loaded.
func (s *Store) UserProfile() *api.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// ---------------------------------------------------------------------------
// Token inspection
// ---------------------------------------------------------------------------

// TokenInfo is the claim subset shown by `medibook whoami`.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (i TokenInfo) Expired() bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(time.Now())
}

// TokenInfo decodes the stored token's claims without verifying the
// signature; the backend issued the token and remains the authority.
// Opaque non-JWT tokens yield an error.
func (s *Store) TokenInfo(role Role) (TokenInfo, error) {
	raw := s.Token(role)
	if raw == "" {
		return TokenInfo{}, fmt.Errorf("no %s token stored", role)
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode %s token: %w", role, err)
	}

	info := TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
