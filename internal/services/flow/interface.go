package flow

import "context"

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/eventline-bot/eventline/internal/services/flow Service

// Service drives the multi-step event creation dialogue. Both presentation
// variants (guided quick-reply and single-screen form) run through the same
// operations; the transition table keys on the variant.
type Service interface {
	// StartFlow begins a creation flow for the user, resetting any other flow
	StartFlow(ctx context.Context, input *StartFlowInput) (*StartFlowOutput, error)

	// Advance feeds one parsed intent into the user's active flow
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// Confirm validates the draft, commits it to the event store exactly once,
	// and clears the flow sub-state
	Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error)

	// Cancel discards the draft without touching the event store
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// CreateEvent commits an event directly from the one-line command grammar,
	// bypassing the conversational flow
	CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error)
}
