package event

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/eventline-bot/eventline/internal/repositories/event Repository

// Repository is the durable event store. Reads issued immediately after a
// write may not reflect it; callers must not rely on read-after-write.
type Repository interface {
	// CreateEvent persists a new event and assigns it an ID
	CreateEvent(ctx context.Context, input *CreateEventInput) (*CreateEventOutput, error)

	// QueryRange returns events with start <= time <= end, ascending by time
	QueryRange(ctx context.Context, input *QueryRangeInput) (*QueryRangeOutput, error)

	// UpdateReminderStatus changes the reminder status of one event
	UpdateReminderStatus(ctx context.Context, input *UpdateReminderStatusInput) error
}
