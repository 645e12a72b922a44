package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waltwissle/Photo-Shoot-Registration/internal/metrics"
	"github.com/waltwissle/Photo-Shoot-Registration/internal/registration"
)

const (
	DefaultIdleTTL     = 30 * time.Minute
	DefaultMaxSessions = 10000
)

var ErrStoreFull = errors.New("too many form sessions")

type entry struct {
	form     *registration.Form
	lastSeen time.Time
}

// Store keeps one registration.Form per browser or API client. Sessions idle
// for longer than the TTL are dropped by Sweep.
type Store struct {
	newForm     func() *registration.Form
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

type Option func(*Store)

// WithMaxSessions caps how many sessions are held at once. n <= 0 keeps the
// default.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

func NewStore(idleTTL time.Duration, newForm func() *registration.Form, opts ...Option) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	s := &Store{
		newForm:     newForm,
		idleTTL:     idleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[uuid.UUID]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) IdleTTL() time.Duration { return s.idleTTL }

// Blank returns a form that is not stored, for rendering an empty page to a
// visitor who has not posted anything yet.
func (s *Store) Blank() *registration.Form {
	return s.newForm()
}

// Create stores a new form session. When the store is full it sweeps idle
// sessions once before giving up with ErrStoreFull.
func (s *Store) Create() (uuid.UUID, *registration.Form, error) {
	if s.Len() >= s.maxSessions {
		s.Sweep()
	}

	id := uuid.New()
	form := s.newForm()

	s.mu.Lock()
	if len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		return uuid.Nil, nil, ErrStoreFull
	}
	s.sessions[id] = &entry{form: form, lastSeen: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.FormSessions.Set(float64(n))
	return id, form, nil
}

// Get returns the form for id and marks the session as active.
func (s *Store) Get(id uuid.UUID) (*registration.Form, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.form, true
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.FormSessions.Set(float64(n))
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and returns how many were removed. A form that is
// mid-submission is kept until the request settles.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) && e.form.State() != registration.StateSubmitting {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.FormSessions.Set(float64(n))
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
