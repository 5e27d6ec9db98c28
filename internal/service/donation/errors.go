package donation

import "errors"

var (
	// ErrCheckoutFailed wraps any processor failure while creating a session.
	ErrCheckoutFailed = errors.New("checkout failed")
	// ErrUnavailable is returned when a webhook arrives and no store is configured.
	ErrUnavailable = errors.New("donation store unavailable")
)
