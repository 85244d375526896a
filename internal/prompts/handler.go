package prompts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/routes"
)

// Handler serves the prompt override administration endpoints.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "prompts"),
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/prompts",
		Tags:    []string{"Prompts"},
		Schemas: Spec.Schemas(),
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: http.MethodPost, Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: http.MethodGet, Pattern: "/stages", Handler: h.Stages, OpenAPI: Spec.Stages},
			{Method: http.MethodGet, Pattern: "/stages/{stage}/instructions", Handler: h.Instructions, OpenAPI: Spec.Instructions},
			{Method: http.MethodGet, Pattern: "/stages/{stage}/spec", Handler: h.Spec, OpenAPI: Spec.Spec},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.byID(h.sys.Find), OpenAPI: Spec.Find},
			{Method: http.MethodPut, Pattern: "/{id}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: http.MethodPost, Pattern: "/{id}/activate", Handler: h.byID(h.sys.Activate), OpenAPI: Spec.Activate},
			{Method: http.MethodPost, Pattern: "/{id}/deactivate", Handler: h.byID(h.sys.Deactivate), OpenAPI: Spec.Deactivate},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.sys.List(r.Context(), pagination.PageRequestFromQuery(q, h.pagination), FiltersFromQuery(q))
	h.respond(w, http.StatusOK, result, err)
}

func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, engine.Stages())
}

// Instructions reports what a stage will actually run with: the active
// override if there is one, the built-in default otherwise.
func (h *Handler) Instructions(w http.ResponseWriter, r *http.Request) {
	stage, err := engine.ParseStage(r.PathValue("stage"))
	if err != nil {
		h.fail(w, err)
		return
	}
	overrides, err := h.sys.Overrides(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	content := StageContent{Stage: stage, Content: overrides.For(stage), Source: "default"}
	if _, ok := overrides[stage]; ok {
		content.Source = "override"
	}
	handlers.RespondJSON(w, http.StatusOK, content)
}

// Spec returns the output contract appended to a stage's instructions.
func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	stage, err := engine.ParseStage(r.PathValue("stage"))
	if err != nil {
		h.fail(w, err)
		return
	}
	text, err := engine.Spec(stage)
	h.respond(w, http.StatusOK, StageContent{Stage: stage, Content: text}, err)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.Decode[Command](r)
	if err != nil {
		h.fail(w, err)
		return
	}
	prompt, err := h.sys.Create(r.Context(), cmd)
	h.respond(w, http.StatusCreated, prompt, err)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	cmd, err := handlers.Decode[Command](r)
	if err != nil {
		h.fail(w, err)
		return
	}
	prompt, err := h.sys.Update(r.Context(), id, cmd)
	h.respond(w, http.StatusOK, prompt, err)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err == nil {
		err = h.sys.Delete(r.Context(), id)
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// byID adapts a single-prompt operation keyed by the {id} path value.
func (h *Handler) byID(op func(context.Context, uuid.UUID) (*Prompt, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathUUID(r, "id")
		if err != nil {
			h.fail(w, err)
			return
		}
		prompt, err := op(r.Context(), id)
		h.respond(w, http.StatusOK, prompt, err)
	}
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, status, v)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}
