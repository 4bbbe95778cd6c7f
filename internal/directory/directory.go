// Package directory caches the doctor directory. The cache is replaced
// wholesale on every successful refresh; there is no incremental
// update.
package directory

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/platform/notify"
)

// ListBackend is the slice of the API client the cache needs.
type ListBackend interface {
	ListDoctors(ctx context.Context) ([]api.Doctor, error)
}

// Cache holds the client's copy of the doctor list.
type Cache struct {
	mu      sync.Mutex
	backend ListBackend
	notify  notify.Notifier
	log     zerolog.Logger
	doctors []api.Doctor
}

// NewCache builds an empty Cache. Call Refresh to populate it.
func NewCache(backend ListBackend, n notify.Notifier, logger zerolog.Logger) *Cache {
	return &Cache{
		backend: backend,
		notify:  n,
		log:     logger.With().Str("component", "directory").Logger(),
	}
}

// Refresh fetches the directory and replaces the cached list. On
// failure the prior list is kept and a notification raised; errors do
// not propagate.
func (c *Cache) Refresh(ctx context.Context) {
	doctors, err := c.backend.ListDoctors(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("refresh directory")
		if be, ok := api.AsBackendError(err); ok && be.UserMessage() != "" {
			c.notify.Errorf("%s", be.UserMessage())
		} else {
			c.notify.Errorf("Failed to fetch doctors.")
		}
		return
	}

	c.mu.Lock()
	c.doctors = doctors
	c.mu.Unlock()
}

// Doctors returns a copy of the cached list in directory order.
func (c *Cache) Doctors() []api.Doctor {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Doctor, len(c.doctors))
	copy(out, c.doctors)
	return out
}

// BySpeciality returns the cached doctors matching the given speciality,
// case-insensitively, preserving directory order.
func (c *Cache) BySpeciality(speciality string) []api.Doctor {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []api.Doctor
	for _, d := range c.doctors {
		if strings.EqualFold(d.Speciality, speciality) {
			out = append(out, d)
		}
	}
	return out
}

// ByID returns the cached doctor with the given id, or nil.
func (c *Cache) ByID(id string) *api.Doctor {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.doctors {
		if d.ID == id {
			doc := d
			return &doc
		}
	}
	return nil
}
