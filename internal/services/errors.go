package services

import "fmt"

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// ErrMissingMessage is returned when a chat request carries no usable message.
var ErrMissingMessage = &ValidationError{Message: "message is required"}

// UnreachableError wraps a transport failure talking to the completion provider.
type UnreachableError struct{ Err error }

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("completion provider unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// UpstreamError is a non-success response from the completion provider.
// Body is the raw provider text with the credential already removed.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion provider returned status %d", e.StatusCode)
}
