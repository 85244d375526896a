package governance

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
)

// DefaultCategory is applied to standard definitions created without a category.
const DefaultCategory = "general"

// Domain errors for governance operations.
var (
	ErrStandardNotFound = errors.New("standard definition not found")
	ErrRedLineNotFound  = errors.New("red-line rule not found")
	ErrPersonaNotFound  = errors.New("persona not found")
	ErrDuplicate        = errors.New("governance record already exists")
	ErrMissingField     = errors.New("required field missing")
	ErrInvalidSeverity  = errors.New("severity must be between 1 and 3")
	ErrInvalidPattern   = errors.New("invalid rule pattern")
	ErrUnavailable      = errors.New("rule store unavailable")
)

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// MapHTTPStatus maps governance domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, handlers.ErrInvalidID),
		errors.Is(err, handlers.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrStandardNotFound),
		errors.Is(err, ErrRedLineNotFound),
		errors.Is(err, ErrPersonaNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidSeverity),
		errors.Is(err, ErrInvalidPattern):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
