// Package session keeps the per-browser page state of the error-reporting pages in memory.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pitchboard/pkg/reporting"
)

const (
	CookieName = "pb_session"
	contextKey = "session"
)

// LocalError is an error shown on the page. It is never submitted on its own.
type LocalError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// State is everything one page keeps between user actions.
type State struct {
	Error        *LocalError     `json:"error,omitempty"`
	Message      string          `json:"message,omitempty"`
	LastReportID string          `json:"last_report_id,omitempty"`
	DialogShown  bool            `json:"dialog_shown"`
	// DialogURL is the dialog waiting to be opened by the next page render.
	DialogURL    string          `json:"dialog_url,omitempty"`
	User         *reporting.User `json:"user,omitempty"`
}

type entry struct {
	state    State
	lastSeen time.Time
}

// Store holds session states keyed by cookie value. Idle sessions are dropped after ttl.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the state for id; unknown ids yield an empty state.
func (s *Store) Get(id string) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.sessions[id]; ok {
		return e.state
	}
	return State{}
}

// Update applies fn to the state for id under the store lock and returns the result.
func (s *Store) Update(id string, fn func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		e = &entry{}
		s.sessions[id] = e
	}
	fn(&e.state)
	e.lastSeen = s.now()
	return e.state
}

// Prune removes sessions idle for longer than the ttl and reports how many it removed.
func (s *Store) Prune() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Middleware makes sure every request carries a session cookie and exposes its id via ID.
func Middleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, id, 0, "/", "", secure, true)
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

// ID returns the session id set by Middleware, or "" when the middleware did not run.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
