// Package sessionsvc owns the client session state machine.
//
// A Controller starts in StateUnchecked, resolves to StateAuthenticated or
// StateUnauthenticated exactly once through Bootstrap, and afterwards only
// moves between those two through SignIn and SignOut.
package sessionsvc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	"github.com/mkrupp/homecase-sessiongate/internal/repo/session"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
)

// Observer is notified synchronously of every state transition.
// It must not call Controller mutators.
type Observer func(state domain.SessionState)

// Controller is the single source of truth for the session state.
type Controller struct {
	store session.Store
	log   logging.Logger

	// transition serializes Bootstrap, SignIn and SignOut including publication.
	transition sync.Mutex

	m         sync.RWMutex
	state     domain.SessionState
	token     domain.SessionToken
	observers []subscription
	nextID    int
}

type subscription struct {
	id       int
	observer Observer
}

// NewController creates a Controller in StateUnchecked backed by store.
func NewController(store session.Store) *Controller {
	return &Controller{
		store: store,
		log:   logging.GetLogger("svc.sessionsvc.controller"),
		state: domain.StateUnchecked,
	}
}

// State returns the current session state.
func (c *Controller) State() domain.SessionState {
	c.m.RLock()
	defer c.m.RUnlock()

	return c.state
}

// Token returns the current session token, empty unless authenticated.
func (c *Controller) Token() domain.SessionToken {
	c.m.RLock()
	defer c.m.RUnlock()

	return c.token
}

// Subscribe registers an observer and returns a function that removes it.
// Observers are notified in subscription order.
func (c *Controller) Subscribe(observer Observer) (unsubscribe func()) {
	c.m.Lock()
	defer c.m.Unlock()

	id := c.nextID
	c.nextID++
	c.observers = append(c.observers, subscription{id: id, observer: observer})

	return func() {
		c.m.Lock()
		defer c.m.Unlock()

		c.observers = slices.DeleteFunc(c.observers, func(s subscription) bool {
			return s.id == id
		})
	}
}

// Bootstrap reads the session store once and resolves the state. A stored,
// non-empty token resolves to StateAuthenticated; anything else, including a
// failed read, to StateUnauthenticated. Later calls do not touch the store and
// return the current state.
func (c *Controller) Bootstrap(ctx context.Context) domain.SessionState {
	c.transition.Lock()
	defer c.transition.Unlock()

	if state := c.State(); state != domain.StateUnchecked {
		c.log.DebugContext(ctx, "bootstrap skipped", "state", state)

		return state
	}

	c.setState(domain.StateChecking, "")

	value, ok, err := c.store.Get(ctx, session.TokenKey)

	switch token := domain.SessionToken(value); {
	case err != nil:
		c.log.WarnContext(ctx, "read stored session failed", "error", err)
		c.setState(domain.StateUnauthenticated, "")
	case !ok || token.IsZero():
		c.log.DebugContext(ctx, "no stored session")
		c.setState(domain.StateUnauthenticated, "")
	default:
		c.logToken(ctx, "stored session restored", token)
		c.setState(domain.StateAuthenticated, token)
	}

	return c.State()
}

// SignIn persists token and transitions to StateAuthenticated.
// If the token cannot be persisted the state is left unchanged and the
// returned error wraps domain.ErrPersistence.
func (c *Controller) SignIn(ctx context.Context, token domain.SessionToken) (err error) {
	if token.IsZero() {
		return domain.ErrEmptyToken
	}

	c.transition.Lock()
	defer c.transition.Unlock()

	if err := c.store.Set(ctx, session.TokenKey, token.String()); err != nil {
		c.log.ErrorContext(ctx, "persist session failed", "error", err)

		return errors.Join(domain.ErrPersistence, fmt.Errorf("set token: %w", err))
	}

	c.logToken(ctx, "signed in", token)
	c.setState(domain.StateAuthenticated, token)

	return nil
}

// SignOut clears the stored session and transitions to StateUnauthenticated.
// A failure to clear the store is logged and does not block the transition.
func (c *Controller) SignOut(ctx context.Context) {
	c.transition.Lock()
	defer c.transition.Unlock()

	if err := c.store.Remove(ctx, session.TokenKey); err != nil {
		c.log.WarnContext(ctx, "clear stored session failed", "error", err)
	}

	c.log.InfoContext(ctx, "signed out")
	c.setState(domain.StateUnauthenticated, "")
}

// setState must be called with c.transition held.
func (c *Controller) setState(state domain.SessionState, token domain.SessionToken) {
	c.m.Lock()
	previous := c.state
	c.state = state
	c.token = token

	observers := make([]Observer, 0, len(c.observers))
	for _, sub := range c.observers {
		observers = append(observers, sub.observer)
	}
	c.m.Unlock()

	if previous == state {
		return
	}

	for _, observer := range observers {
		observer(state)
	}
}

func (c *Controller) logToken(ctx context.Context, msg string, token domain.SessionToken) {
	info := authclient.Inspect(token)
	if !info.Structured {
		c.log.InfoContext(ctx, msg)

		return
	}

	c.log.InfoContext(ctx, msg, logging.Group("token", tokenAttrs(info)...))
}

func tokenAttrs(info authclient.TokenInfo) []any {
	attrs := []any{"sub", info.Subject}

	if !info.ExpiresAt.IsZero() {
		attrs = append(attrs, "exp", info.ExpiresAt.UTC().Format(time.RFC3339))
	}

	return attrs
}
