package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from transport errors raised by the board client.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates missing or malformed configuration or event data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an operation is not available for an item type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTooManyItems indicates more associated items than one page can enumerate.
	ErrTooManyItems = errors.New("too many items")
)
