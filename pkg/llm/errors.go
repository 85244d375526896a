package llm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnknownProvider indicates the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown llm provider")
	// ErrEmptyResponse indicates the provider returned no usable content.
	ErrEmptyResponse = errors.New("empty llm response")
	// ErrNoUserTurn indicates a request whose final message is not a user turn.
	ErrNoUserTurn = errors.New("request must end with a user message")
	// ErrRetriesExhausted indicates every attempt failed with a transient error.
	ErrRetriesExhausted = errors.New("llm retries exhausted")
)

// StatusError carries the provider status code of a failed call.
type StatusError struct {
	Provider string
	Status   int
	Err      error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Status, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the status represents a transient failure:
// rate limiting or a server-side error.
func (e *StatusError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return false
}
