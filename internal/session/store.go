package session

import (
	"net/http"
	"sync"
	"time"
	"travel-time-service/internal/ports"

	"github.com/google/uuid"
)

// CookieName carries the session id.
const CookieName = "session_id"

const cookieMaxAge = 30 * 24 * time.Hour

// Session is the per-browser OAuth state.
type Session struct {
	State         string
	Credential    *ports.Credential
	SpreadsheetID string
}

// Store keeps sessions in memory. Sessions are lost on restart.
// Ids are only ever issued by the store; a cookie naming an unknown id
// is replaced rather than adopted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewStore() *Store {
	return &Store{sessions: map[string]Session{}}
}

// Get returns a copy of the session for id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// Update applies fn to the session for id, creating it if needed.
func (s *Store) Update(id string, fn func(*Session)) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[id]
	fn(&sess)
	s.sessions[id] = sess
	return sess
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// ID returns the request's session id when its cookie names a session in
// the store. Otherwise a new session is created and its id set on w.
func (s *Store) ID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if _, ok := s.Get(c.Value); ok {
			return c.Value
		}
	}

	id := uuid.NewString()
	s.Update(id, func(*Session) {})
	setCookie(w, id)
	return id
}

// Rotate moves the session stored under oldID to a fresh id, sets the new
// cookie on w and returns the new id. The old id stops working.
func (s *Store) Rotate(w http.ResponseWriter, oldID string) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = s.sessions[oldID]
	delete(s.sessions, oldID)
	s.mu.Unlock()

	setCookie(w, id)
	return id
}

func setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cookieMaxAge.Seconds()),
	})
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
