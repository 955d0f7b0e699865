package alerta_errors

import "errors"

// Common errors
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyExists    = errors.New("already exists")
	ErrQueueFull        = errors.New("queue full")
)

// Relay validation errors. Distinguished so the relay can pick the right
// client-facing message.
var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message exceeds maximum length")
)
