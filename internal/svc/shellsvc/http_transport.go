package shellsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	http_ "github.com/mkrupp/homecase-sessiongate/internal/infra/transport/http"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/loginsvc"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/navgate"
)

var (
	// ErrNotReady is returned while the stored session has not been resolved.
	ErrNotReady = errors.New("session not resolved")
	// ErrNoLoginForm is returned when signing in while the sign-in surface is not shown.
	ErrNoLoginForm = errors.New("sign-in form not mounted")
	// ErrNoRoute is returned when the route parameter is missing.
	ErrNoRoute = errors.New("no route")
)

// HTTPTransportConfig contains configuration parameters for the shell's HTTP transport.
type HTTPTransportConfig struct {
	http_.HTTPTransportConfig
}

// ViewResponse is the body of every successful shell response.
type ViewResponse struct {
	View   navgate.View   `json:"view"`
	Notice *domain.Notice `json:"notice,omitempty"`
}

// LoginResponse is the body returned by POST /login.
type LoginResponse struct {
	ViewResponse

	Outcome loginsvc.OutcomeKind      `json:"outcome"`
	Errors  loginsvc.ValidationErrors `json:"errors,omitempty"`
}

// HTTPTransport exposes a Shell over HTTP.
type HTTPTransport struct {
	shell *Shell
	log   logging.Logger
	cfg   HTTPTransportConfig
	mux   *http.ServeMux
}

// NewHTTPTransport creates a new HTTPTransport driving shell.
func NewHTTPTransport(shell *Shell, cfg HTTPTransportConfig) *HTTPTransport {
	ht := &HTTPTransport{
		shell: shell,
		log:   logging.GetLogger("svc.shellsvc.http_transport"),
		cfg:   cfg,
		mux:   http.NewServeMux(),
	}

	ht.mux.HandleFunc("GET /view", ht.HandleView)
	ht.mux.HandleFunc("POST /login", ht.HandleLogin)
	ht.mux.HandleFunc("POST /logout", ht.HandleLogout)
	ht.mux.HandleFunc("POST /navigate", ht.HandleNavigate)
	ht.mux.HandleFunc("POST /signup", ht.HandleSignUp)
	ht.mux.HandleFunc("POST /dismiss", ht.HandleDismiss)

	return ht
}

// ServeHTTP implements http.Handler with the following routes:
// - GET /view: the rendered view and pending notice
// - POST /login: submit the sign-in form
// - POST /logout: end the session
// - POST /navigate: switch route within the mounted tree
// - POST /signup: open the sign-up route
// - POST /dismiss: dismiss the pending notice.
func (ht *HTTPTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ht.mux.ServeHTTP(w, r)
}

var _ http_.HTTPTransport = (*HTTPTransport)(nil)

// HandleView returns the current view.
func (ht *HTTPTransport) HandleView(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleView(w, r)
}

func (ht *HTTPTransport) handleView(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "view failed", "error", err)
		}
	}(r.Context())

	return ht.writeJSON(w, http.StatusOK, ht.viewResponse())
}

// HandleLogin submits the sign-in form.
// Expects form parameters: identifier, secret.
// The status code reflects the outcome; the body carries the outcome, the
// visible field errors and the notice, if any.
func (ht *HTTPTransport) HandleLogin(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleLogin(w, r)
}

func (ht *HTTPTransport) handleLogin(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	var outcome loginsvc.Outcome

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "login request failed", "error", err)
		} else {
			log.DebugContext(ctx, "login request handled", "outcome", outcome.Kind)
		}
	}(r.Context())

	if err := ht.ready(w); err != nil {
		return err
	}

	flow := ht.shell.Flow()
	if flow == nil {
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)

		return ErrNoLoginForm
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return fmt.Errorf("parse form: %w", err)
	}

	for _, field := range []loginsvc.Field{loginsvc.FieldIdentifier, loginsvc.FieldSecret} {
		if !r.PostForm.Has(string(field)) {
			continue
		}

		if err := flow.Form().SetValue(field, r.PostForm.Get(string(field))); err != nil {
			return fmt.Errorf("set %s: %w", field, err)
		}
	}

	outcome = flow.Submit(r.Context())

	// Failures replace the notice through Notify and acceptance clears it on render.
	if outcome.Kind == loginsvc.OutcomeNeedsCorrection {
		ht.shell.Dismiss()
	}

	resp := LoginResponse{
		ViewResponse: ht.viewResponse(),
		Outcome:      outcome.Kind,
		Errors:       flow.Form().VisibleErrors(),
	}

	return ht.writeJSON(w, outcomeStatus(outcome.Kind), resp)
}

// HandleLogout ends the session.
func (ht *HTTPTransport) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleLogout(w, r)
}

func (ht *HTTPTransport) handleLogout(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "logout failed", "error", err)
		} else {
			log.DebugContext(ctx, "logged out")
		}
	}(r.Context())

	if err := ht.ready(w); err != nil {
		return err
	}

	ht.shell.SignOut(r.Context())

	return ht.writeJSON(w, http.StatusOK, ht.viewResponse())
}

// HandleNavigate switches the route within the mounted tree.
// Expects form parameter: route.
func (ht *HTTPTransport) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleNavigate(w, r)
}

func (ht *HTTPTransport) handleNavigate(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "navigate failed", "error", err)
		} else {
			log.DebugContext(ctx, "navigated")
		}
	}(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return fmt.Errorf("parse form: %w", err)
	}

	route := r.PostForm.Get("route")
	if route == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)

		return ErrNoRoute
	}

	if err := ht.shell.Navigate(route); err != nil {
		ht.navigateError(w, err)

		return fmt.Errorf("navigate %q: %w", route, err)
	}

	return ht.writeJSON(w, http.StatusOK, ht.viewResponse())
}

// HandleSignUp opens the sign-up route from the sign-in form.
func (ht *HTTPTransport) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleSignUp(w, r)
}

func (ht *HTTPTransport) handleSignUp(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "open sign-up failed", "error", err)
		}
	}(r.Context())

	if err := ht.ready(w); err != nil {
		return err
	}

	flow := ht.shell.Flow()
	if flow == nil {
		http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)

		return ErrNoLoginForm
	}

	if err := flow.OpenSignUp(); err != nil {
		ht.navigateError(w, err)

		return fmt.Errorf("open sign-up: %w", err)
	}

	return ht.writeJSON(w, http.StatusOK, ht.viewResponse())
}

// HandleDismiss dismisses the pending notice.
func (ht *HTTPTransport) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	_ = ht.handleDismiss(w, r)
}

func (ht *HTTPTransport) handleDismiss(w http.ResponseWriter, r *http.Request) (err error) {
	log := ht.log.With(logging.Group("http", "method", r.Method, "url", r.URL.String()))

	defer func(ctx context.Context) {
		if err != nil {
			log.ErrorContext(ctx, "dismiss failed", "error", err)
		}
	}(r.Context())

	ht.shell.Dismiss()

	return ht.writeJSON(w, http.StatusOK, ht.viewResponse())
}

func (ht *HTTPTransport) ready(w http.ResponseWriter) error {
	if ht.shell.View().Surface == domain.SurfaceNone {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return ErrNotReady
	}

	return nil
}

func (ht *HTTPTransport) navigateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, navgate.ErrNotMounted):
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	case errors.Is(err, navgate.ErrUnknownRoute):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (ht *HTTPTransport) viewResponse() ViewResponse {
	return ViewResponse{
		View:   ht.shell.View(),
		Notice: ht.shell.Notice(),
	}
}

func (ht *HTTPTransport) writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}

func outcomeStatus(kind loginsvc.OutcomeKind) int {
	switch kind {
	case loginsvc.OutcomeAccepted:
		return http.StatusOK
	case loginsvc.OutcomeNeedsCorrection:
		return http.StatusUnprocessableEntity
	case loginsvc.OutcomeRejected:
		return http.StatusUnauthorized
	case loginsvc.OutcomeUnreachable:
		return http.StatusBadGateway
	case loginsvc.OutcomePersistenceFailed:
		return http.StatusInternalServerError
	case loginsvc.OutcomeBusy:
		return http.StatusConflict
	case loginsvc.OutcomeDiscarded:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
