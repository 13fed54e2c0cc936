package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zekroTJA/timedmap"

	"registration-form/pkg/form"
	"registration-form/pkg/validation"
)

// Session is the form state of one page session. All access goes through Do, so
// events of a session are handled one at a time.
type Session struct {
	ID         string
	mu         sync.Mutex
	controller *form.Controller
}

// Do runs fn with exclusive access to the session's form
func (s *Session) Do(fn func(c *form.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.controller)
}

// SessionService keeps page sessions in memory until they have been idle for the timeout
type SessionService struct {
	schema   *validation.Schema
	clock    func() time.Time
	sessions *timedmap.TimedMap
	mu       sync.Mutex
	timeout  time.Duration
}

// NewSessionService creates a session store whose forms validate against schema
func NewSessionService(schema *validation.Schema, timeout time.Duration, clock func() time.Time) *SessionService {
	if clock == nil {
		clock = time.Now
	}
	cleanup := timeout / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &SessionService{
		schema:   schema,
		clock:    clock,
		sessions: timedmap.New(cleanup),
		timeout:  timeout,
	}
}

// Resolve returns the live session with the given id, or a fresh one when the id
// is empty, unknown or expired. The session's idle timer is reset either way.
func (s *SessionService) Resolve(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if session, ok := s.sessions.GetValue(id).(*Session); ok {
			// SetExpires restarts the idle timer, Refresh would extend it
			if err := s.sessions.SetExpires(id, s.timeout); err == nil {
				return session
			}
		}
	}

	session := &Session{
		ID:         uuid.NewString(),
		controller: form.NewController(s.schema, s.clock),
	}
	s.sessions.Set(session.ID, session, s.timeout)

	log.WithFields(log.Fields{
		"session": session.ID,
		"ttl":     s.timeout.String(),
	}).Debug("Started form session")
	return session
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	return s.sessions.Size()
}

// Close stops the expiry cleaner
func (s *SessionService) Close() {
	s.sessions.StopCleaner()
}
