package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// tokenBytes is the entropy of a session token: 32 bytes = 256 bits. The
// keyspace is treated as collision-free, so tokens are minted without a
// uniqueness check.
const tokenBytes = 32

// Session authorizes a bearer token to act as the admin identity until a
// fixed expiry. Sessions live only in process memory; a restart clears them.
type Session struct {
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore holds sessions keyed by opaque token. Implementations store
// and return entries verbatim; expiry policy belongs to the Authenticator.
type SessionStore interface {
	Get(token string) (Session, bool)
	Put(token string, s Session)
	// Delete removes the entry if present and reports whether it existed.
	Delete(token string) bool
	// Sweep removes every session expired as of now and returns the count.
	Sweep(now time.Time) int
}

// MemoryStore is the default SessionStore: a process-wide map. The map is
// guarded by a mutex since the HTTP server handles requests in parallel.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(token string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

func (m *MemoryStore) Put(token string, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
}

func (m *MemoryStore) Delete(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[token]
	delete(m.sessions, token)
	return ok
}

func (m *MemoryStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored sessions, expired entries included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// newSessionToken generates a cryptographically random token, hex encoded.
func newSessionToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
