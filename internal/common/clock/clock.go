package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/eventline-bot/eventline/internal/common/clock Clock

// Clock abstracts the wall clock so cadence and session-expiry logic can be
// tested without waiting for real time.
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns a Clock backed by the system clock.
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}
