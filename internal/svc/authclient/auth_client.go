package authclient

import (
	"context"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
)

// Authenticator verifies credentials against the remote authentication service.
type Authenticator interface {
	// Login submits the credentials and returns the issued session token.
	// Returns the token and true if the credentials were accepted,
	// "" and false with a nil error if they were explicitly rejected,
	// and a non-nil error if the service could not be reached or failed.
	Login(ctx context.Context, identifier, secret string) (domain.SessionToken, bool, error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(ctx context.Context, identifier, secret string) (domain.SessionToken, bool, error)

// Login implements Authenticator.
func (f AuthenticatorFunc) Login(ctx context.Context, identifier, secret string) (domain.SessionToken, bool, error) {
	return f(ctx, identifier, secret)
}
