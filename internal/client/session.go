package client

import (
	"sync"

	"github.com/rpggio/cadence/internal/domain/account"
)

// Session holds the signed-in user and their bearer token.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *account.User
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user, if known.
func (s *Session) User() *account.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Active reports whether a token is held.
func (s *Session) Active() bool {
	return s.Token() != ""
}

func (s *Session) set(token string, user *account.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.set("", nil)
}
