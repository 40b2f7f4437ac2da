package services

import (
	"sync"

	"github.com/dmitrijs2005/coinbank/internal/client/models"
)

// SessionState holds the single active session. Readers may be anywhere
// (the API client, loaders, the poller); only the session manager mutates it.
type SessionState struct {
	mu      sync.RWMutex
	session models.Session
	active  bool
}

func NewSessionState() *SessionState {
	return &SessionState{}
}

// Current returns a copy of the active session.
func (s *SessionState) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.active
}

// Token implements api.TokenSource.
func (s *SessionState) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return ""
	}
	return s.session.SessionID
}

func (s *SessionState) set(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.active = true
}

func (s *SessionState) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = models.Session{}
	s.active = false
}
