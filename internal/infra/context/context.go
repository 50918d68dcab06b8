// Package context carries request-scoped values (trace ID, sign-in identifier)
// through the session gate so that logs and outgoing requests can be correlated.
package context

type contextKey string
