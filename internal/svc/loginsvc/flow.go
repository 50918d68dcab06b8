// Package loginsvc orchestrates a sign-in form: validation, the call to the
// authenticator, and the mapping of every result to a notice or a session
// transition.
package loginsvc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	context_ "github.com/mkrupp/homecase-sessiongate/internal/infra/context"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/navgate"
)

// ErrNoNavigator is returned by OpenSignUp when the flow has no Navigator.
var ErrNoNavigator = errors.New("no navigator")

// Notifier presents blocking, dismissible notices.
type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, notice domain.Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, notice domain.Notice) {
	f(ctx, notice)
}

// SessionSigner turns an issued token into a signed-in session.
type SessionSigner interface {
	SignIn(ctx context.Context, token domain.SessionToken) error
}

// Navigator switches routes within the sign-in tree.
type Navigator interface {
	Navigate(route string) error
}

// Flow is one mounted sign-in form. At most one submission is in flight at a
// time, and nothing is applied after Close.
type Flow struct {
	form      *Form
	auth      authclient.Authenticator
	session   SessionSigner
	notifier  Notifier
	navigator Navigator
	log       logging.Logger

	m        sync.Mutex
	inFlight bool
	cancel   context.CancelFunc
	closed   atomic.Bool
}

// NewFlow creates a Flow with an empty form using LoginSchema.
// navigator may be nil if the host offers no sign-up route.
func NewFlow(
	auth authclient.Authenticator,
	session SessionSigner,
	notifier Notifier,
	navigator Navigator,
) *Flow {
	return &Flow{
		form:      NewForm(LoginSchema()),
		auth:      auth,
		session:   session,
		notifier:  notifier,
		navigator: navigator,
		log:       logging.GetLogger("svc.loginsvc.flow"),
	}
}

// Form returns the form edited by the user.
func (f *Flow) Form() *Form {
	return f.form
}

// Submit runs one sign-in attempt with the current form values.
//
// Validation failures end in OutcomeNeedsCorrection without a request. Otherwise
// the authenticator decides between OutcomeAccepted (the session is signed in),
// OutcomeRejected and OutcomeUnreachable, each with its own notice. A submit
// while another is pending returns OutcomeBusy; a result arriving after Close
// returns OutcomeDiscarded. Submit never retries.
func (f *Flow) Submit(ctx context.Context) (outcome Outcome) {
	ctx = context_.EnsureTraceID(ctx)

	ctx, creds, outcome, ok := f.begin(ctx)
	if !ok {
		return outcome
	}
	defer f.end()

	ctx = context_.WithIdentifier(ctx, creds.Identifier)
	log := f.log

	defer func() {
		switch outcome.Kind {
		case OutcomeAccepted:
			log.InfoContext(ctx, "sign-in accepted")
		case OutcomeDiscarded:
			log.DebugContext(ctx, "sign-in result discarded", "error", outcome.err)
		default:
			log.WarnContext(ctx, "sign-in failed", "outcome", outcome.Kind, "error", outcome.err)
		}
	}()

	token, accepted, err := f.auth.Login(ctx, creds.Identifier, creds.Secret)

	if discardErr := f.discarded(ctx); discardErr != nil {
		return Outcome{Kind: OutcomeDiscarded, err: discardErr}
	}

	switch {
	case err != nil:
		return f.fail(ctx, OutcomeUnreachable, ConnectionNotice(),
			errors.Join(domain.ErrTransportUnavailable, fmt.Errorf("login: %w", err)))
	case !accepted || token.IsZero():
		return f.fail(ctx, OutcomeRejected, RejectedNotice(), domain.ErrRejectedCredentials)
	}

	if err := f.session.SignIn(ctx, token); err != nil {
		// Close cancels ctx, which aborts a pending write.
		if discardErr := f.discarded(ctx); discardErr != nil {
			return Outcome{Kind: OutcomeDiscarded, err: errors.Join(discardErr, err)}
		}

		return f.fail(ctx, OutcomePersistenceFailed, SignInIncompleteNotice(), fmt.Errorf("sign in: %w", err))
	}

	return Outcome{Kind: OutcomeAccepted}
}

// Close tears the flow down. A pending submission is cancelled and its result
// is discarded. Close is idempotent.
func (f *Flow) Close() {
	f.m.Lock()
	f.closed.Store(true)
	cancel := f.cancel
	f.m.Unlock()

	if cancel != nil {
		cancel()
	}
}

// OpenSignUp switches the sign-in tree to the sign-up route.
func (f *Flow) OpenSignUp() error {
	if f.navigator == nil {
		return ErrNoNavigator
	}

	if err := f.navigator.Navigate(navgate.RouteSignUp); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	return nil
}

// begin validates the form and claims the in-flight slot.
// ok is false when the submission ends here.
func (f *Flow) begin(ctx context.Context) (_ context.Context, _ domain.Credentials, _ Outcome, ok bool) {
	f.m.Lock()
	defer f.m.Unlock()

	if f.closed.Load() {
		return ctx, domain.Credentials{}, Outcome{Kind: OutcomeDiscarded, err: domain.ErrFlowClosed}, false
	}

	if f.inFlight {
		f.log.DebugContext(ctx, "submit ignored, already in flight")

		return ctx, domain.Credentials{}, Outcome{Kind: OutcomeBusy, err: domain.ErrSubmissionInFlight}, false
	}

	f.form.TouchAll()

	if errs := f.form.Errors(); len(errs) > 0 {
		f.log.DebugContext(ctx, "submit needs correction", "errors", errs.Error())

		return ctx, domain.Credentials{}, Outcome{Kind: OutcomeNeedsCorrection, Errors: errs, err: errs}, false
	}

	ctx, f.cancel = context.WithCancel(ctx)
	f.inFlight = true

	return ctx, f.form.Credentials(), Outcome{}, true
}

func (f *Flow) end() {
	f.m.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.inFlight = false
	f.m.Unlock()

	cancel()
}

func (f *Flow) discarded(ctx context.Context) error {
	if f.closed.Load() {
		return domain.ErrFlowClosed
	}

	if err := ctx.Err(); err != nil {
		return errors.Join(domain.ErrFlowClosed, err)
	}

	return nil
}

func (f *Flow) fail(ctx context.Context, kind OutcomeKind, notice domain.Notice, err error) Outcome {
	f.notifier.Notify(ctx, notice)

	return Outcome{Kind: kind, Notice: &notice, err: err}
}
