package event

import (
	"time"

	"github.com/eventline-bot/eventline/internal/models"
)

// CreateEventInput holds the fields of the event to persist
type CreateEventInput struct {
	Name       string
	Time       time.Time
	Category   string
	Importance models.Importance
	Notes      string
}

// CreateEventOutput contains the stored event, ID assigned
type CreateEventOutput struct {
	Event *models.Event
}

// QueryRangeInput bounds a time-range query, both ends inclusive
type QueryRangeInput struct {
	Start time.Time
	End   time.Time
}

// QueryRangeOutput contains the matching events sorted ascending by time
type QueryRangeOutput struct {
	Events []*models.Event
}

// UpdateReminderStatusInput identifies the event and the new status
type UpdateReminderStatusInput struct {
	EventID string
	Status  models.ReminderStatus
}
