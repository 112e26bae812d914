package report

import (
	"sync"
	"time"

	"betreport/models"
	"betreport/service"

	"github.com/google/uuid"
)

// Session keeps an uploaded ledger around so the user can re-filter it without uploading again
type Session struct {
	ID        string
	UserID    string
	Filename  string
	Ledger    *service.Ledger
	Window    models.TimeWindow
	CreatedAt time.Time
	LastUsed  time.Time
}

// SessionStore holds report sessions keyed by session ID
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions expire ttl after their last use
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a new session for a freshly ingested ledger
func (s *SessionStore) Create(userID, filename string, ledger *service.Ledger, window models.TimeWindow) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filename:  filename,
		Ledger:    ledger,
		Window:    window,
		CreatedAt: now,
		LastUsed:  now,
	}
	s.sessions[session.ID] = session
	return *session
}

// Get returns the session if it exists, belongs to userID and has not expired
func (s *SessionStore) Get(id, userID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.UserID != userID || s.expired(session) {
		return Session{}, false
	}
	return *session, true
}

// UpdateWindow records the window last shown for a session and refreshes its expiry
func (s *SessionStore) UpdateWindow(id string, window models.TimeWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.Window = window
		session.LastUsed = s.now()
	}
}

// Cleanup removes expired sessions and returns how many were removed
func (s *SessionStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if s.expired(session) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ExpiresAt returns when a session last used at lastUsed expires
func (s *SessionStore) ExpiresAt(lastUsed time.Time) time.Time {
	return lastUsed.Add(s.ttl)
}

func (s *SessionStore) expired(session *Session) bool {
	return s.now().Sub(session.LastUsed) > s.ttl
}
