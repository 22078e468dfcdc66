package models

import (
	"time"
)

// Importance is the reminder tier of an event. The labels are the
// user-facing ones, so they double as wire values.
type Importance string

const (
	// ImportanceHigh events are reminded every day inside the lookahead window
	ImportanceHigh Importance = "高"

	// ImportanceMedium events are reminded on the day and three days before
	ImportanceMedium Importance = "中"

	// ImportanceLow events are reminded on the day only
	ImportanceLow Importance = "低"
)

// Importances lists the accepted importance labels in display order.
var Importances = []Importance{ImportanceHigh, ImportanceMedium, ImportanceLow}

// Valid reports whether i is one of the three accepted labels.
func (i Importance) Valid() bool {
	switch i {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	}
	return false
}

// Event categories. The set is closed; CategoryEvent is the default.
const (
	CategoryMeeting  = "會議"
	CategoryEvent    = "活動"
	CategoryReminder = "提醒"
	CategoryTask     = "任務"
	CategoryOther    = "其他"
)

// Categories lists the accepted category labels in display order.
var Categories = []string{CategoryMeeting, CategoryEvent, CategoryReminder, CategoryTask, CategoryOther}

// ValidCategory reports whether c is one of the accepted category labels.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ReminderStatus tracks whether the reminder scheduler has consumed an event.
// It is owned exclusively by the scheduler after creation.
type ReminderStatus string

const (
	// ReminderStatusPending indicates the event has not been reminded yet
	ReminderStatusPending ReminderStatus = "未提醒"

	// ReminderStatusSent indicates a same-day reminder has gone out
	ReminderStatusSent ReminderStatus = "已提醒"
)

// Event is a committed calendar event. Time is UTC at minute precision.
type Event struct {
	// ID is the unique identifier for the event
	ID string `json:"id"`

	// Name is the event title, non-empty once committed
	Name string `json:"name"`

	// Time is when the event happens, UTC, minute precision
	Time time.Time `json:"time"`

	// Category is one of the fixed category labels
	Category string `json:"category"`

	// Importance drives the reminder cadence
	Importance Importance `json:"importance"`

	// Notes is free text, may be empty
	Notes string `json:"notes"`

	// ReminderStatus is updated by the reminder scheduler only
	ReminderStatus ReminderStatus `json:"reminder_status"`

	// CreatedAt is when the event was committed
	CreatedAt time.Time `json:"created_at"`
}
