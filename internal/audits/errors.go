package audits

import (
	"errors"
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
)

// Domain errors for audit log operations.
var (
	ErrNotFound      = errors.New("audit log not found")
	ErrDuplicate     = errors.New("audit log already exists")
	ErrInvalidRecord = errors.New("audit record requires a generation result")
	ErrNoArtifact    = errors.New("no archived brief for audit log")
)

// MapHTTPStatus maps audit and request errors to response codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoArtifact):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRecord), errors.Is(err, handlers.ErrInvalidID):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
