package session

import (
	"github.com/eventline-bot/eventline/internal/models"
)

// GetInput identifies the session to fetch
type GetInput struct {
	UserID string
}

// GetOutput contains a copy of the session
type GetOutput struct {
	Session *models.Session
}

// MutateInput carries the user and the mutation to apply under lock
type MutateInput struct {
	UserID string

	// Fn receives the live session; changes made to it are kept
	Fn func(*models.Session)
}

// MutateOutput contains a copy of the session after the mutation
type MutateOutput struct {
	Session *models.Session
}

// ClearFlowInput identifies which flow sub-state to remove; FlowNone matches
// whichever flow is active
type ClearFlowInput struct {
	UserID string
	Kind   models.FlowKind
}

// ClearFlowOutput reports whether a matching flow was cleared
type ClearFlowOutput struct {
	Cleared bool
}
