package reminder

import "context"

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/eventline-bot/eventline/internal/services/reminder Service,Notifier

// Service runs the importance-tiered reminder sweep.
type Service interface {
	// Run performs one sweep: query the lookahead window, filter by cadence,
	// push the grouped digest to every recipient, and mark same-day events
	Run(ctx context.Context) (*RunOutput, error)

	// ManualRemind triggers a sweep on demand and returns the user-facing
	// acknowledgement text
	ManualRemind(ctx context.Context, input *ManualRemindInput) (*ManualRemindOutput, error)
}

// Notifier delivers a text message to a user outside of a reply context.
type Notifier interface {
	Push(ctx context.Context, userID string, text string) error
}
