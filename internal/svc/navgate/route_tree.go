package navgate

import "slices"

// Route names of the default trees.
const (
	RouteLogin    = "Login"
	RouteSignUp   = "SignUp"
	RouteMainTabs = "MainTabs"
)

// RouteTree is a navigable collection of routes reachable from a single entry.
type RouteTree struct {
	Name   string
	Entry  string
	Routes []string
}

// Has reports whether route belongs to the tree.
func (t RouteTree) Has(route string) bool {
	return slices.Contains(t.Routes, route)
}

// Trees holds the two surfaces the gate switches between.
type Trees struct {
	Unauthenticated RouteTree
	Authenticated   RouteTree
}

// DefaultTrees returns the sign-in tree (Login, SignUp) and the application
// tree (MainTabs).
func DefaultTrees() Trees {
	return Trees{
		Unauthenticated: RouteTree{
			Name:   "Auth",
			Entry:  RouteLogin,
			Routes: []string{RouteLogin, RouteSignUp},
		},
		Authenticated: RouteTree{
			Name:   "App",
			Entry:  RouteMainTabs,
			Routes: []string{RouteMainTabs},
		},
	}
}
