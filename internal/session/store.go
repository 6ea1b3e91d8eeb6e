// Package session implements an in-process session store. Cookie values
// are "token.signature" where the signature is an HMAC-SHA256 of the token
// under the server secret, so a cookie minted under a different secret (or
// edited by hand) never reaches the token map.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a session stays valid after login.
const DefaultTTL = 24 * time.Hour

type entry struct {
	userID    int64
	expiresAt time.Time
}

// Store maps session tokens to user ids. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	secret   []byte
	ttl      time.Duration
	sessions map[string]entry
}

// NewStore creates a session store signing cookies with secret. A ttl of 0
// falls back to DefaultTTL.
func NewStore(secret string, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Store{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

// Create opens a session for userID and returns the signed cookie value.
func (s *Store) Create(userID int64) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = entry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return token + "." + s.sign(token)
}

// Lookup resolves a cookie value to a user id. Expired sessions are
// removed on sight.
func (s *Store) Lookup(value string) (int64, bool) {
	token, ok := s.verify(value)
	if !ok {
		return 0, false
	}

	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}

	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, false
	}

	return e.userID, true
}

// Destroy invalidates the session behind a cookie value. Unknown or
// malformed values are ignored.
func (s *Store) Destroy(value string) {
	token, ok := s.verify(value)
	if !ok {
		return
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// TTL reports the configured session lifetime, for cookie expiry.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify splits a cookie value and checks its signature, returning the
// bare token.
func (s *Store) verify(value string) (string, bool) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(token))) {
		return "", false
	}
	return token, true
}
