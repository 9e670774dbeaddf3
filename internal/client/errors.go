package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no client matches the given id.
	ErrNotFound = errors.New("client not found")

	// ErrDebtNotFound is returned when the client exists but holds no debt
	// entry with the given id.
	ErrDebtNotFound = errors.New("debt not found")

	// ErrPhoneTaken is returned when another client already uses the phone number.
	ErrPhoneTaken = errors.New("phone number already in use")
)

// ValidationError reports a missing required request field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
