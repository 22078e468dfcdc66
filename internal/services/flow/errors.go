package flow

import "errors"

// Define errors
var (
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrNilSessionRepo = errors.New("session repository cannot be nil")
	ErrNilEventRepo   = errors.New("event repository cannot be nil")
	ErrNilClock       = errors.New("clock cannot be nil")
	ErrInvalidInput   = errors.New("input cannot be nil or empty")

	// ErrNoActiveFlow is returned when an intent arrives for a user with no
	// matching flow in progress
	ErrNoActiveFlow = errors.New("no active flow for user")

	// ErrMissingName is returned by Confirm when the draft has no name; the
	// session state is preserved so the user can supply one
	ErrMissingName = errors.New("event name is missing")

	// ErrInvalidImportance is returned for labels outside the closed set
	ErrInvalidImportance = errors.New("importance must be one of 高, 中, 低")
)
