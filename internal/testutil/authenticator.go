package testutil

import (
	"context"
	"sync"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
)

// StubAuthenticator answers Login with a fixed result. When Release is set,
// every call blocks until a value is sent on it or the context ends.
type StubAuthenticator struct {
	mu sync.Mutex

	Token domain.SessionToken
	OK    bool
	Err   error

	Release chan struct{}
	Started chan struct{} // Receives once per call after it is counted, if set

	calls []domain.Credentials
}

var _ authclient.Authenticator = (*StubAuthenticator)(nil)

// Login implements authclient.Authenticator.
func (a *StubAuthenticator) Login(ctx context.Context, identifier, secret string) (domain.SessionToken, bool, error) {
	a.mu.Lock()
	a.calls = append(a.calls, domain.Credentials{Identifier: identifier, Secret: secret})
	release, started := a.Release, a.Started
	token, ok, err := a.Token, a.OK, a.Err
	a.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}

	return token, ok, err
}

// Calls returns the credentials of every Login call, in order.
func (a *StubAuthenticator) Calls() []domain.Credentials {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]domain.Credentials(nil), a.calls...)
}
