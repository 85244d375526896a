package routes

import (
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// OpenAPI is optional; undocumented routes are omitted from the spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
