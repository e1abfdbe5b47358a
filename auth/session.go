package auth

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"log"
	"sync"
	"time"
)

// sessionTokenLength is the number of random bytes in a session token.
const sessionTokenLength = 24

// sessionEntry is the server-side record for one live session.
type sessionEntry struct {
	userID    int64
	expiresAt time.Time
	lastTouch time.Time
}

// SessionStore is the in-process session manager. It maps opaque tokens to
// user identities, enforces the fixed expiry window, and bounds memory with
// a periodic prune of untouched entries. All mutations go through the mutex;
// the store is safe for concurrent use by request handlers and the pruner.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

// NewSessionStore creates a SessionStore whose sessions expire ttl after
// issuance.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}
}

// Issue creates a new session bound to userID and returns the opaque token
// to be delivered to the client as a cookie value.
func (s *SessionStore) Issue(userID int64) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	s.sessions[token] = &sessionEntry{
		userID:    userID,
		expiresAt: now.Add(s.ttl),
		lastTouch: now,
	}
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the identity bound to the token if the session is still
// active. A missing, expired, or invalidated session yields (0, false);
// it never errors, the caller maps the false case to an unauthenticated
// rejection. Resolving an active session refreshes its last-touch time.
func (s *SessionStore) Resolve(token string) (int64, bool) {
	if token == "" {
		return 0, false
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[token]
	if !ok {
		return 0, false
	}
	if now.After(entry.expiresAt) {
		delete(s.sessions, token)
		return 0, false
	}
	entry.lastTouch = now
	return entry.userID, true
}

// Invalidate destroys the session bound to the token. It is idempotent:
// invalidating an unknown or already-invalidated token is a no-op.
func (s *SessionStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Len returns the number of entries currently held, including ones past
// their expiry that have not been resolved or pruned yet.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartPruner launches the background sweep goroutine. Every interval it
// removes entries whose last-touch time is older than the interval,
// independent of per-session expiry, so the table stays bounded even if
// clients never log out. Closing stopChan stops the goroutine.
func (s *SessionStore) StartPruner(interval time.Duration, stopChan <-chan struct{}) {
	go func() {
		defer log.Println("Session pruner stopped.")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := s.prune(interval); removed > 0 {
					log.Printf("Session pruner removed %d stale session(s)", removed)
				}
			case <-stopChan:
				return
			}
		}
	}()
}

// prune removes entries untouched for longer than retention and returns how
// many were removed.
func (s *SessionStore) prune(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, entry := range s.sessions {
		if entry.lastTouch.Before(cutoff) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// newSessionToken returns an unguessable token: 24 random bytes, base32
// encoded without padding so it is cookie- and shell-friendly.
func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return enc.EncodeToString(b), nil
}
