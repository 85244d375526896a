package briefs

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/routes"
)

// Handler provides HTTP endpoints for brief generation.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, logger, and request body limit.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "briefs"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for brief endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/briefs",
		Tags:    []string{"Briefs"},
		Schemas: Spec.Schemas(),
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/options", Handler: h.Options, OpenAPI: Spec.Options},
			{Method: "POST", Pattern: "/executive", Handler: h.Executive, OpenAPI: Spec.Executive},
		},
	}
}

// Options returns the selectable buyer types, pain points, and author modes.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, engine.Options())
}

// Executive generates a governed executive brief from a JSON request body.
func (h *Handler) Executive(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	cmd, err := handlers.Decode[Command](r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(
			w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: %w", engine.ErrInvalidRequest, err),
		)
		return
	}
	cmd.UserID = strings.TrimSpace(r.Header.Get(UserHeader))

	result, err := h.sys.Generate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
