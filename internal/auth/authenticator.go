package auth

import (
	"net/http"
	"time"

	"github.com/NihalNavath/Campus-Navigator/internal/metrics"
)

// DefaultSessionTTL matches the cookie max age set at login; the two expiry
// windows must stay numerically consistent.
const DefaultSessionTTL = 24 * time.Hour

// Authenticator verifies the admin credential and manages session tokens.
// All failure modes degrade to a boolean false; nothing here returns an error
// to callers beyond token generation itself.
type Authenticator struct {
	verifier CredentialVerifier
	store    SessionStore
	username string
	ttl      time.Duration

	now func() time.Time // injectable for expiry tests
}

// New builds an Authenticator. A zero ttl falls back to DefaultSessionTTL.
func New(verifier CredentialVerifier, store SessionStore, username string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Authenticator{
		verifier: verifier,
		store:    store,
		username: username,
		ttl:      ttl,
		now:      time.Now,
	}
}

// VerifyCredentials returns true iff the pair matches the configured admin
// identity.
func (a *Authenticator) VerifyCredentials(username, password string) bool {
	if a == nil || a.verifier == nil {
		return false
	}
	return a.verifier.Verify(username, password)
}

// CreateSession mints a random token and stores a session expiring after the
// configured TTL. The token is the bearer credential returned to the caller.
func (a *Authenticator) CreateSession() (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	now := a.now()
	a.store.Put(token, Session{
		Username:  a.username,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	})
	metrics.SessionsCreatedTotal.Inc()
	return token, nil
}

// ValidateSession fails closed: empty or unknown tokens are invalid. An entry
// found past its expiry is deleted on the spot; there is no background sweep.
func (a *Authenticator) ValidateSession(token string) bool {
	if token == "" {
		return false
	}

	s, ok := a.store.Get(token)
	if !ok {
		return false
	}

	if a.now().After(s.ExpiresAt) {
		a.store.Delete(token)
		metrics.SessionsExpiredTotal.Inc()
		return false
	}

	return true
}

// GetSession returns the session record only while ValidateSession would
// return true.
func (a *Authenticator) GetSession(token string) (Session, bool) {
	if !a.ValidateSession(token) {
		return Session{}, false
	}
	return a.store.Get(token)
}

// DeleteSession removes the entry if present. Idempotent.
func (a *Authenticator) DeleteSession(token string) bool {
	return a.store.Delete(token)
}

// IsAuthenticated extracts the session token from the request cookie and
// delegates to ValidateSession.
func (a *Authenticator) IsAuthenticated(r *http.Request) bool {
	return a.ValidateSession(TokenFromRequest(r))
}

// SweepExpired removes every expired session. Expiry is otherwise enforced
// lazily at lookup, so sessions that are never re-validated would sit in the
// store forever; callers wanting bounded memory can invoke this manually.
func (a *Authenticator) SweepExpired() int {
	removed := a.store.Sweep(a.now())
	if removed > 0 {
		metrics.SessionsExpiredTotal.Add(float64(removed))
	}
	return removed
}
