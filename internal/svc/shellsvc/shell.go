// Package shellsvc is a headless host application for the session gate. It
// renders the gate's views into memory and drives the sign-in flow over HTTP.
package shellsvc

import (
	"context"
	"sync"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/authclient"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/loginsvc"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/navgate"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/sessionsvc"
)

// Shell mounts a sign-in flow whenever the unauthenticated surface is shown
// and tears it down when the surface goes away.
type Shell struct {
	ctrl *sessionsvc.Controller
	auth authclient.Authenticator
	gate *navgate.Gate
	log  logging.Logger

	m      sync.Mutex
	flow   *loginsvc.Flow
	notice *domain.Notice
}

var (
	_ navgate.Renderer   = (*Shell)(nil)
	_ loginsvc.Notifier  = (*Shell)(nil)
	_ loginsvc.Navigator = (*Shell)(nil)
)

// NewShell creates a Shell rendering ctrl's state with the given route trees.
func NewShell(ctrl *sessionsvc.Controller, auth authclient.Authenticator, trees navgate.Trees) *Shell {
	s := &Shell{
		ctrl: ctrl,
		auth: auth,
		log:  logging.GetLogger("svc.shellsvc.shell"),
	}

	s.gate = navgate.NewGate(ctrl, trees, s)

	return s
}

// Bootstrap resolves the stored session. Must run before serving.
func (s *Shell) Bootstrap(ctx context.Context) domain.SessionState {
	return s.ctrl.Bootstrap(ctx)
}

// View returns the currently rendered view.
func (s *Shell) View() navgate.View {
	return s.gate.View()
}

// Render implements navgate.Renderer.
func (s *Shell) Render(view navgate.View) {
	s.m.Lock()
	defer s.m.Unlock()

	s.log.Debug("render", "surface", view.Surface, "tree", view.Tree, "route", view.Route)

	switch {
	case view.Surface == domain.SurfaceUnauthenticated && s.flow == nil:
		s.flow = loginsvc.NewFlow(s.auth, s.ctrl, s, s)
	case view.Surface != domain.SurfaceUnauthenticated && s.flow != nil:
		s.flow.Close()
		s.flow = nil
	}

	if view.Surface == domain.SurfaceAuthenticated {
		s.notice = nil
	}
}

// Notify implements loginsvc.Notifier by keeping the notice until dismissed.
func (s *Shell) Notify(ctx context.Context, notice domain.Notice) {
	s.m.Lock()
	defer s.m.Unlock()

	s.log.DebugContext(ctx, "notice", "kind", notice.Kind)
	s.notice = &notice
}

// Notice returns the pending notice, if any.
func (s *Shell) Notice() *domain.Notice {
	s.m.Lock()
	defer s.m.Unlock()

	return s.notice
}

// Dismiss clears the pending notice.
func (s *Shell) Dismiss() {
	s.m.Lock()
	defer s.m.Unlock()

	s.notice = nil
}

// Navigate implements loginsvc.Navigator.
func (s *Shell) Navigate(route string) error {
	return s.gate.Navigate(route) //nolint:wrapcheck
}

// SignOut ends the session.
func (s *Shell) SignOut(ctx context.Context) {
	s.ctrl.SignOut(ctx)
}

// Flow returns the mounted sign-in flow, nil unless the unauthenticated
// surface is shown.
func (s *Shell) Flow() *loginsvc.Flow {
	s.m.Lock()
	defer s.m.Unlock()

	return s.flow
}

// Close unmounts everything.
func (s *Shell) Close() {
	s.gate.Close()

	s.m.Lock()
	defer s.m.Unlock()

	if s.flow != nil {
		s.flow.Close()
		s.flow = nil
	}
}
