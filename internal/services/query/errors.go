package query

import "errors"

// Define errors
var (
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrNilSessionRepo = errors.New("session repository cannot be nil")
	ErrNilEventRepo   = errors.New("event repository cannot be nil")
	ErrNilClock       = errors.New("clock cannot be nil")
	ErrInvalidInput   = errors.New("input cannot be nil or empty")
)
