package newsletter

import "errors"

var (
	// ErrUnavailable is returned when an operation needs the store and none
	// is configured.
	ErrUnavailable = errors.New("newsletter store unavailable")
)
