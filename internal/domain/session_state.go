package domain

// SessionState is the state of the client session state machine.
type SessionState int

const (
	// StateUnchecked is the initial state, before the session store has been read.
	StateUnchecked SessionState = iota
	// StateChecking means the session store read is in flight.
	StateChecking
	// StateAuthenticated means a session token is present and accepted.
	StateAuthenticated
	// StateUnauthenticated means there is no valid session token.
	StateUnauthenticated
)

//nolint:gochecknoglobals
var sessionStateNames = map[SessionState]string{
	StateUnchecked:       "unchecked",
	StateChecking:        "checking",
	StateAuthenticated:   "authenticated",
	StateUnauthenticated: "unauthenticated",
}

// String returns the lower-case name of the state.
func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}

	return "unknown"
}

// Resolved reports whether the bootstrap check has completed.
func (s SessionState) Resolved() bool {
	return s == StateAuthenticated || s == StateUnauthenticated
}
