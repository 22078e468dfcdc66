package reminder

import "github.com/eventline-bot/eventline/internal/models"

// lookaheadDays is how far the daily sweep looks for upcoming events. It
// matches the longest cadence, the daily one for high-importance events.
const lookaheadDays = 7

// ShouldRemind reports whether an event of the given importance gets a
// reminder when its date is daysUntil days away. High fires every day inside
// the lookahead window, medium on the day and exactly three days before, low
// on the day only.
func ShouldRemind(importance models.Importance, daysUntil int) bool {
	switch importance {
	case models.ImportanceHigh:
		return daysUntil >= 0 && daysUntil <= lookaheadDays
	case models.ImportanceMedium:
		return daysUntil == 0 || daysUntil == 3
	case models.ImportanceLow:
		return daysUntil == 0
	}
	return false
}
