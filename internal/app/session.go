package app

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// User is the locally remembered profile. No credentials are kept or checked.
type User struct {
	Username string `json:"username"`
}

// Session tracks who is using the app, persisted under the "user" key
type Session struct {
	kv     domain.KeyValueStore
	logger *slog.Logger

	mu   sync.RWMutex
	user *User
}

// NewSession creates a logged-out session. Call Hydrate to restore a saved user.
func NewSession(kv domain.KeyValueStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{kv: kv, logger: logger}
}

// Hydrate restores the saved user, if any
func (s *Session) Hydrate() {
	var u User
	ok, err := s.kv.Get(domain.KeyUser, &u)
	if err != nil {
		s.logger.Warn("saved user unreadable", "error", err)
		return
	}
	if !ok || u.Username == "" {
		return
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// Login remembers username as the current user. A blank name is ignored.
func (s *Session) Login(username string) bool {
	username = strings.TrimSpace(username)
	if username == "" {
		return false
	}

	u := User{Username: username}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	if err := s.kv.Set(domain.KeyUser, u); err != nil {
		s.logger.Error("failed to persist user", "error", err)
	}
	s.logger.Info("logged in", "username", username)
	return true
}

// Logout forgets the current user
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.kv.Delete(domain.KeyUser); err != nil {
		s.logger.Error("failed to clear user", "error", err)
	}
	s.logger.Info("logged out")
}

// User returns the current user, or nil when logged out
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is remembered
func (s *Session) Authenticated() bool {
	return s.User() != nil
}
