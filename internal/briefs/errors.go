package briefs

import (
	"context"
	"errors"
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
)

// ErrRuleStoreUnavailable is returned when the governance snapshot cannot be
// loaded. Generation never proceeds without rules.
var ErrRuleStoreUnavailable = errors.New("rule store unavailable")

// MapHTTPStatus maps generation errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRuleStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, engine.ErrGenerationFailed),
		errors.Is(err, engine.ErrAuditFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}
