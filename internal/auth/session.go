package auth

import (
	"fmt"
	"sync"
)

// SessionPersister stores session headers outside the process, e.g. in the
// CLI configuration file.
type SessionPersister interface {
	SaveSession(authToken, userID string) error
}

// Session holds the two authentication headers of a client. It is safe to
// read from concurrent requests; Set and Clear are meant to be called by
// login and logout only.
type Session struct {
	mutex     sync.RWMutex
	authToken string
	userID    string
	persister SessionPersister
}

// NewSession creates a session from an existing token and user id. Both may
// be empty for an anonymous session.
func NewSession(authToken, userID string) *Session {
	return &Session{
		authToken: authToken,
		userID:    userID,
	}
}

// WithPersister makes Set and Clear write the headers through persister.
func (s *Session) WithPersister(persister SessionPersister) *Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.persister = persister

	return s
}

// AuthHeaders returns the token and user id, empty when not logged in.
func (s *Session) AuthHeaders() (string, string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.authToken, s.userID
}

// Authenticated reports whether both headers are set.
func (s *Session) Authenticated() bool {
	authToken, userID := s.AuthHeaders()

	return authToken != "" && userID != ""
}

// Set replaces the session headers. The persister runs first; when it fails
// the headers are left unchanged.
func (s *Session) Set(authToken, userID string) error {
	s.mutex.RLock()
	persister := s.persister
	s.mutex.RUnlock()

	if persister != nil {
		err := persister.SaveSession(authToken, userID)
		if err != nil {
			return fmt.Errorf("persisting session: %w", err)
		}
	}

	s.mutex.Lock()
	s.authToken = authToken
	s.userID = userID
	s.mutex.Unlock()

	return nil
}

// Clear drops the session headers.
func (s *Session) Clear() error {
	return s.Set("", "")
}
