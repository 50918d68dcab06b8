package domain

import "log/slog"

// Credentials holds the values of a single sign-in submission.
// They live only for the duration of that submission and are never persisted.
type Credentials struct {
	Identifier string // Username or e-mail entered by the user
	Secret     string // Password entered by the user
}

// LogValue implements slog.LogValuer so that the secret never reaches a log sink.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("identifier", c.Identifier),
		slog.String("secret", "[redacted]"),
	)
}
