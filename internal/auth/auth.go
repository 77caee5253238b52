package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Service gates the application behind a single username/password pair.
// The password is held only as a sha256 hex digest. Sessions are kept in
// memory; a process restart simply requires logging in again.
type Service struct {
	username       string
	passwordSHA256 string
	ttl            time.Duration

	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func New(username, passwordSHA256 string, ttl time.Duration) *Service {
	return &Service{
		username:       username,
		passwordSHA256: strings.ToLower(passwordSHA256),
		ttl:            ttl,
		sessions:       make(map[string]time.Time),
		now:            time.Now,
	}
}

// Verify reports whether the given credentials match the configured pair.
// The username compare is case-insensitive, the digest compare is
// constant-time.
func (s *Service) Verify(username, password string) bool {
	if !strings.EqualFold(username, s.username) {
		return false
	}
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(s.passwordSHA256)) == 1
}

// Login verifies credentials and, on success, issues a session token.
func (s *Service) Login(username, password string) (string, bool) {
	if !s.Verify(username, password) {
		return "", false
	}
	token, err := newToken()
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = s.now().Add(s.ttl)
	return token, true
}

// Check reports whether the token belongs to a live session. Expired
// sessions are dropped on sight.
func (s *Service) Check(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(expiry) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Logout ends the session for the given token.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
