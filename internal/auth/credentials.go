package auth

import "crypto/subtle"

// CredentialVerifier answers whether a username/password pair identifies the
// admin. The catalog has exactly one admin identity, but the interface keeps
// call sites ignorant of that so a real credential store can be swapped in
// later.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentials verifies against a single configured identity.
type StaticCredentials struct {
	Username string
	Password string
}

// Verify returns true iff both fields exactly match the configured identity.
// Comparison is constant-time so timing does not leak how much of a guess
// matched.
func (c StaticCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}
