package prompts

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
)

// Domain errors for prompt operations.
var (
	ErrNotFound     = errors.New("prompt not found")
	ErrDuplicate    = errors.New("prompt name already exists")
	ErrMissingField = errors.New("required field missing")
)

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// MapHTTPStatus maps prompt and request errors to response codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidStage),
		errors.Is(err, ErrMissingField),
		errors.Is(err, handlers.ErrInvalidBody),
		errors.Is(err, handlers.ErrInvalidID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
