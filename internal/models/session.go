package models

import (
	"time"
)

// FlowKind identifies which creation flow variant a user is in. A user is in
// at most one flow at a time; starting either variant resets the other.
type FlowKind string

const (
	// FlowNone means no creation flow is active
	FlowNone FlowKind = ""

	// FlowGuided is the sequential quick-reply flow, one field per turn
	FlowGuided FlowKind = "guided"

	// FlowForm is the single-screen flex-form flow, selectable fields in any order
	FlowForm FlowKind = "form"
)

// Step is the position inside a creation flow. Both variants share the same
// step progression; they differ only in how inputs arrive.
type Step string

const (
	StepSelectingDateTime      Step = "selecting_datetime"
	StepSelectingImportance    Step = "selecting_importance"
	StepSelectingCategory      Step = "selecting_category"
	StepWaitingForName         Step = "waiting_for_name"
	StepWaitingForNotes        Step = "waiting_for_notes"
	StepWaitingForConfirmation Step = "waiting_for_confirmation"
)

// Draft is a partially built event. Zero values mean "not yet provided";
// Notes is a pointer so an explicit empty note is distinct from never asked.
type Draft struct {
	// When is the event time, nil until chosen
	When *time.Time

	// Importance is empty until chosen
	Importance Importance

	// Category is empty until chosen
	Category string

	// Name is empty until provided
	Name string

	// Notes is nil until provided; a pointer to "" means explicitly no notes
	Notes *string
}

// FlowState is the per-flow sub-state of a session.
type FlowState struct {
	// Kind is which variant produced this state
	Kind FlowKind

	// Step is the current position in the flow
	Step Step

	// Draft holds the fields collected so far
	Draft Draft
}

// Session is the per-user conversation state. It is created lazily on first
// interaction and evicted after a period of inactivity.
type Session struct {
	// UserID is the messaging-platform user identity
	UserID string

	// Flow is the active creation flow, nil when none
	Flow *FlowState

	// PendingQueryStart is set while a two-step date-range query is being built
	PendingQueryStart *time.Time

	// UpdatedAt is when the session was last touched
	UpdatedAt time.Time
}
