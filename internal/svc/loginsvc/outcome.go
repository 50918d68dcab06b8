package loginsvc

import (
	"github.com/mkrupp/homecase-sessiongate/internal/domain"
)

// OutcomeKind is the terminal state of one submission.
type OutcomeKind int

const (
	// OutcomeNeedsCorrection means the form failed validation; no request was made.
	OutcomeNeedsCorrection OutcomeKind = iota
	// OutcomeAccepted means the credentials were accepted and the session is signed in.
	OutcomeAccepted
	// OutcomeRejected means the authenticator refused the credentials.
	OutcomeRejected
	// OutcomeUnreachable means the authenticator could not be reached.
	OutcomeUnreachable
	// OutcomePersistenceFailed means the credentials were accepted but the session could not be stored.
	OutcomePersistenceFailed
	// OutcomeBusy means a previous submission is still pending; nothing happened.
	OutcomeBusy
	// OutcomeDiscarded means the flow was torn down before the result arrived.
	OutcomeDiscarded
)

//nolint:gochecknoglobals
var outcomeKindNames = map[OutcomeKind]string{
	OutcomeNeedsCorrection:   "needs_correction",
	OutcomeAccepted:          "accepted",
	OutcomeRejected:          "rejected",
	OutcomeUnreachable:       "unreachable",
	OutcomePersistenceFailed: "persistence_failed",
	OutcomeBusy:              "busy",
	OutcomeDiscarded:         "discarded",
}

// String returns the snake-case name of the outcome.
func (k OutcomeKind) String() string {
	if name, ok := outcomeKindNames[k]; ok {
		return name
	}

	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome describes how a submission ended.
type Outcome struct {
	Kind   OutcomeKind      `json:"kind"`
	Errors ValidationErrors `json:"errors,omitempty"` // Set for OutcomeNeedsCorrection
	Notice *domain.Notice   `json:"notice,omitempty"` // The notice handed to the Notifier, if any

	err error
}

// Err returns the error behind a non-accepted outcome, nil for OutcomeAccepted.
func (o Outcome) Err() error {
	return o.err
}
