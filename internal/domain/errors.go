package domain

import "errors"

var (
	// ErrInvalidInput is returned for an empty student name or an answer outside 1..4.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState indicates a question index/prize pair that does not match the bank or the attempt.
	ErrInvalidState = errors.New("invalid quiz state")
	// ErrNotAuthenticated is returned when no attempt has been started for a session.
	ErrNotAuthenticated = errors.New("no student for session")
	// ErrOutOfRange indicates a bank lookup outside [0, Len).
	ErrOutOfRange = errors.New("index out of range")
	// ErrStorageCorrupt indicates the persisted results could not be parsed.
	ErrStorageCorrupt = errors.New("results storage corrupt")
	// ErrInvalidBank indicates question bank content that fails validation.
	ErrInvalidBank = errors.New("invalid question bank")
)
