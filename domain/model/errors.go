package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated means no bearer credential was available for a backend call.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrSessionNotFound = errors.New("compose session not found")
	ErrSessionClosed   = errors.New("compose session is closed")
	ErrSubmitInFlight  = errors.New("a submission is already in flight")
)

// ValidationError lists compose fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// BackendError is a non-2xx or malformed response from the publication backend.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure talking to the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UnexpectedErrorMessage is shown when the backend could not be reached at all.
const UnexpectedErrorMessage = "An unexpected error occurred"

// UserMessage turns an error into the text shown on the compose form.
func UserMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Not authenticated"
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return UnexpectedErrorMessage
	}
	return fallback
}
