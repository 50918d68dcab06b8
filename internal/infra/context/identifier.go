package context

import (
	"context"
)

const contextKeyIdentifier = contextKey("identifier")

// IdentifierFromContext extracts the sign-in identifier of the current submission.
func IdentifierFromContext(ctx context.Context) (string, bool) {
	identifier, ok := ctx.Value(contextKeyIdentifier).(string)

	return identifier, ok
}

// WithIdentifier attaches the sign-in identifier of the current submission to the context.
func WithIdentifier(ctx context.Context, identifier string) context.Context {
	return context.WithValue(ctx, contextKeyIdentifier, identifier)
}
