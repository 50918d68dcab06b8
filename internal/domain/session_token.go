package domain

import "errors"

var (
	// ErrEmptyToken is returned when an empty token is passed where a session token is required.
	ErrEmptyToken = errors.New("empty session token")
	// ErrPersistence is returned when the session token could not be written to the session store.
	ErrPersistence = errors.New("session persistence failed")
	// ErrRejectedCredentials is returned when the authenticator explicitly refused the credentials.
	ErrRejectedCredentials = errors.New("rejected credentials")
	// ErrTransportUnavailable is returned when the authenticator could not be reached or failed.
	ErrTransportUnavailable = errors.New("authenticator unavailable")
)

// SessionToken is the opaque proof of an authenticated session.
// A non-empty token means the user is authenticated.
type SessionToken string

// String returns the raw token.
func (t SessionToken) String() string {
	return string(t)
}

// IsZero reports whether the token is empty.
func (t SessionToken) IsZero() bool {
	return t == ""
}
