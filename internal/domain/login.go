package domain

import "errors"

var (
	// ErrValidation is matched by validation failures of a sign-in form.
	ErrValidation = errors.New("validation failed")
	// ErrSubmissionInFlight is returned when a form is submitted while a previous submission is pending.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrFlowClosed is returned when a result arrives after the sign-in view was torn down.
	ErrFlowClosed = errors.New("login flow closed")
)
