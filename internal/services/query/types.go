package query

import (
	"time"

	"github.com/eventline-bot/eventline/internal/common/clock"
	"github.com/eventline-bot/eventline/internal/models"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
	sessionRepo "github.com/eventline-bot/eventline/internal/repositories/session"
)

// Config holds the dependencies for the query service
type Config struct {
	SessionRepo sessionRepo.Repository
	EventRepo   eventRepo.Repository
	Clock       clock.Clock
}

// RelativeRange names a range resolved against the current time.
type RelativeRange string

const (
	// RangeToday covers the current calendar day
	RangeToday RelativeRange = "today"

	// RangeNext7Days covers today through seven days from now
	RangeNext7Days RelativeRange = "next7days"

	// RangeMonth covers the current calendar month
	RangeMonth RelativeRange = "month"

	// RangeYear covers the current calendar year
	RangeYear RelativeRange = "year"
)

// Result is a resolved query: the bounds, the matches, and the rendered
// summary text.
type Result struct {
	Start   time.Time
	End     time.Time
	Events  []*models.Event
	Message string
}

// QueryRangeInput bounds an explicit range query, both ends inclusive
type QueryRangeInput struct {
	Start time.Time
	End   time.Time
}

// QueryRangeOutput contains the resolved result
type QueryRangeOutput struct {
	Result Result
}

// QueryDayInput selects a single calendar day
type QueryDayInput struct {
	Day time.Time
}

// QueryDayOutput contains the resolved result
type QueryDayOutput struct {
	Result Result
}

// QueryRelativeInput selects a named range
type QueryRelativeInput struct {
	Range RelativeRange
}

// QueryRelativeOutput contains the resolved result
type QueryRelativeOutput struct {
	Result Result
}

// BeginRangeSelectionInput records the picked start date for the user
type BeginRangeSelectionInput struct {
	UserID string
	Start  time.Time
}

// BeginRangeSelectionOutput acknowledges the recorded start date
type BeginRangeSelectionOutput struct {
	Start time.Time
}

// CompleteRangeSelectionInput pairs the picked end date with the stored start
type CompleteRangeSelectionInput struct {
	UserID string
	End    time.Time
}

// CompleteRangeSelectionOutput carries either the resolved result or a
// rejection explaining what to pick again.
type CompleteRangeSelectionOutput struct {
	Result *Result

	// Reject is non-empty when the selection was refused; the stored start
	// date survives unless it was never set
	Reject string
}
