package payment

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured    = errors.New("payment processor not configured")
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleSignature   = errors.New("webhook timestamp outside tolerance")
)

// APIError is a non-2xx answer from the processor.
type APIError struct {
	Status  int
	Type    string
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("stripe: %s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("stripe: %s (status %d)", e.Message, e.Status)
}
