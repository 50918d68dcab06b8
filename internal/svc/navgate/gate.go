// Package navgate selects the route tree presented to the user from the
// session state.
package navgate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mkrupp/homecase-sessiongate/internal/domain"
	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
	"github.com/mkrupp/homecase-sessiongate/internal/svc/sessionsvc"
)

var (
	// ErrNotMounted is returned when navigating while no route tree is rendered.
	ErrNotMounted = errors.New("no route tree mounted")
	// ErrUnknownRoute is returned when navigating to a route outside the mounted tree.
	ErrUnknownRoute = errors.New("unknown route")
)

// View is what the host application renders.
type View struct {
	Surface domain.Surface `json:"surface"`
	Tree    string         `json:"tree,omitempty"`
	Route   string         `json:"route,omitempty"`
}

// Renderer presents a View. It must not call Gate.Navigate.
type Renderer interface {
	Render(view View)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(view View)

// Render implements Renderer.
func (f RendererFunc) Render(view View) {
	f(view)
}

// StateSource publishes session state transitions.
type StateSource interface {
	State() domain.SessionState
	Subscribe(observer sessionsvc.Observer) (unsubscribe func())
}

// Select maps a session state to the surface that must be rendered.
func Select(state domain.SessionState) domain.Surface {
	switch state {
	case domain.StateAuthenticated:
		return domain.SurfaceAuthenticated
	case domain.StateUnauthenticated:
		return domain.SurfaceUnauthenticated
	case domain.StateUnchecked, domain.StateChecking:
		return domain.SurfaceNone
	default:
		return domain.SurfaceNone
	}
}

// Gate re-evaluates the rendered view on every session state transition.
// It only observes its StateSource and never reads the session store.
type Gate struct {
	trees    Trees
	renderer Renderer
	log      logging.Logger

	renderMu sync.Mutex // serializes evaluate and Navigate including rendering
	m        sync.RWMutex
	view     View
	rendered bool

	unsubscribe func()
}

// NewGate subscribes to src and renders the view for its current state.
func NewGate(src StateSource, trees Trees, renderer Renderer) *Gate {
	g := &Gate{
		trees:    trees,
		renderer: renderer,
		log:      logging.GetLogger("svc.navgate.gate"),
	}

	g.unsubscribe = src.Subscribe(g.evaluate)

	// Read the state under renderMu so a concurrent transition is never
	// overwritten by a stale initial evaluation.
	g.renderMu.Lock()
	g.apply(src.State())
	g.renderMu.Unlock()

	return g
}

// View returns the currently rendered view.
func (g *Gate) View() View {
	g.m.RLock()
	defer g.m.RUnlock()

	return g.view
}

// Navigate replaces the active route within the mounted tree.
func (g *Gate) Navigate(route string) error {
	g.renderMu.Lock()
	defer g.renderMu.Unlock()

	g.m.Lock()

	tree, ok := g.mounted()
	if !ok {
		g.m.Unlock()

		return ErrNotMounted
	}

	if !tree.Has(route) {
		g.m.Unlock()

		return fmt.Errorf("%w: %q in %s", ErrUnknownRoute, route, tree.Name)
	}

	g.view.Route = route
	view := g.view
	g.m.Unlock()

	g.log.Debug("navigate", "tree", view.Tree, "route", route)
	g.renderer.Render(view)

	return nil
}

// Close stops observing the state source.
func (g *Gate) Close() {
	g.unsubscribe()
}

func (g *Gate) evaluate(state domain.SessionState) {
	g.renderMu.Lock()
	defer g.renderMu.Unlock()

	g.apply(state)
}

// apply must be called with g.renderMu held.
func (g *Gate) apply(state domain.SessionState) {
	surface := Select(state)

	g.m.Lock()

	if g.rendered && g.view.Surface == surface {
		g.m.Unlock()

		return
	}

	g.view = View{Surface: surface}

	if tree, ok := g.treeFor(surface); ok {
		g.view.Tree = tree.Name
		g.view.Route = tree.Entry
	}

	g.rendered = true
	view := g.view
	g.m.Unlock()

	g.log.Debug("render", "state", state, "surface", surface, "tree", view.Tree, "route", view.Route)
	g.renderer.Render(view)
}

// mounted must be called with g.m held.
func (g *Gate) mounted() (RouteTree, bool) {
	return g.treeFor(g.view.Surface)
}

func (g *Gate) treeFor(surface domain.Surface) (RouteTree, bool) {
	switch surface {
	case domain.SurfaceAuthenticated:
		return g.trees.Authenticated, true
	case domain.SurfaceUnauthenticated:
		return g.trees.Unauthenticated, true
	case domain.SurfaceNone:
		return RouteTree{}, false
	default:
		return RouteTree{}, false
	}
}
