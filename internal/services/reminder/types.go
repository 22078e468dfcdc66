package reminder

import (
	"github.com/eventline-bot/eventline/internal/common/clock"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
)

// Config holds the dependencies for the reminder service
type Config struct {
	EventRepo eventRepo.Repository
	Notifier  Notifier
	Clock     clock.Clock

	// Recipients are the user IDs every reminder digest goes to
	Recipients []string
}

// RunOutput summarizes one sweep
type RunOutput struct {
	// Reminded is how many events made it into the digest
	Reminded int

	// Notified is how many recipients the digest was delivered to
	Notified int

	// Marked is how many same-day events were flagged as reminded
	Marked int
}

// ManualRemindInput identifies who asked for the manual sweep
type ManualRemindInput struct {
	UserID string
}

// ManualRemindOutput carries the acknowledgement text to reply with
type ManualRemindOutput struct {
	Message string
}
