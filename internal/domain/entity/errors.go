package entity

import (
	"errors"
	"fmt"
)

// Standard domain errors
var (
	ErrInternalServer      = errors.New("an internal error occurred")
	ErrInvalidRequest      = errors.New("invalid request parameters")
	ErrResourceNotFound    = errors.New("the requested resource was not found")
	ErrMalformedCompletion = errors.New("unexpected completion response format")
)

// CompletionStatusError is returned when the completion service answers with a non-success status.
type CompletionStatusError struct {
	StatusCode int
	Body       string
}

func (e *CompletionStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("completion service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("completion service returned status %d: %s", e.StatusCode, e.Body)
}
