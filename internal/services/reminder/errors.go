package reminder

import "errors"

// Define errors
var (
	ErrNilConfig    = errors.New("config cannot be nil")
	ErrNilEventRepo = errors.New("event repository cannot be nil")
	ErrNilNotifier  = errors.New("notifier cannot be nil")
	ErrNilClock     = errors.New("clock cannot be nil")
	ErrNilService   = errors.New("service cannot be nil")
	ErrInvalidInput = errors.New("input cannot be nil or empty")
)
