package records

import "errors"

// Sentinel errors for the records service layer.
var (
	// ErrConflict is returned when an insert violates a unique constraint.
	ErrConflict      = errors.New("record already exists")
	ErrNotFound      = errors.New("record not found")
	ErrUnknownKind   = errors.New("unknown record kind")
	ErrInvalidStatus = errors.New("status not allowed for record kind")
)
