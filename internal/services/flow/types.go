package flow

import (
	"time"

	"github.com/eventline-bot/eventline/internal/common/clock"
	"github.com/eventline-bot/eventline/internal/models"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
	sessionRepo "github.com/eventline-bot/eventline/internal/repositories/session"
)

// Config holds the dependencies for the flow service
type Config struct {
	SessionRepo sessionRepo.Repository
	EventRepo   eventRepo.Repository
	Clock       clock.Clock
}

// IntentKind discriminates the closed set of inbound intents. The transport
// layer's parsing stage produces these; nothing else drives transitions.
type IntentKind string

const (
	// IntentPickTime carries an already-parsed event time (picker payload or preset)
	IntentPickTime IntentKind = "pick_time"

	// IntentSetImportance carries an importance label
	IntentSetImportance IntentKind = "set_importance"

	// IntentSetCategory carries a category label
	IntentSetCategory IntentKind = "set_category"

	// IntentFreeText carries raw user text; its meaning depends on the step
	IntentFreeText IntentKind = "free_text"

	// IntentNeedNotes carries the yes/no answer to the form variant's notes question
	IntentNeedNotes IntentKind = "need_notes"
)

// Intent is one parsed inbound input.
type Intent struct {
	Kind IntentKind

	// When is set for IntentPickTime
	When *time.Time

	// Label is set for IntentSetImportance and IntentSetCategory
	Label string

	// Text is set for IntentFreeText
	Text string

	// WantNotes is set for IntentNeedNotes
	WantNotes bool
}

// Prompt tells the transport what to render after a transition. When Reject
// is non-empty the input was refused and Step/Draft are unchanged.
type Prompt struct {
	Flow  models.FlowKind
	Step  models.Step
	Draft models.Draft

	// Ack acknowledges a form field that was just set
	Ack string

	// Reject restates what the current step expects
	Reject string

	// AskNotesChoice asks the form variant's yes/no notes question instead of
	// prompting for note text
	AskNotesChoice bool
}

// StartFlowInput selects the user and variant to start
type StartFlowInput struct {
	UserID string
	Kind   models.FlowKind
}

// StartFlowOutput contains the opening prompt
type StartFlowOutput struct {
	Prompt Prompt
}

// AdvanceInput feeds one intent into the user's flow
type AdvanceInput struct {
	UserID string
	Intent Intent
}

// AdvanceOutput contains the next prompt
type AdvanceOutput struct {
	Prompt Prompt
}

// ConfirmInput identifies the user and which variant's confirmation was tapped
type ConfirmInput struct {
	UserID string
	Kind   models.FlowKind
}

// ConfirmOutput contains the committed event
type ConfirmOutput struct {
	Event *models.Event
}

// CancelInput identifies the user and variant to cancel; FlowNone cancels
// whatever flow is active
type CancelInput struct {
	UserID string
	Kind   models.FlowKind
}

// CancelOutput reports whether there was anything to cancel
type CancelOutput struct {
	Cancelled bool
}

// CreateEventInput holds a fully specified event from the command grammar
type CreateEventInput struct {
	Name       string
	When       time.Time
	Category   string
	Importance string
	Notes      string
}

// CreateEventOutput contains the committed event
type CreateEventOutput struct {
	Event *models.Event
}
