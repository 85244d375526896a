package governance

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/routes"
)

// Handler serves the administration endpoints for standards, red lines and
// personas, plus the read-only rule snapshot.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "governance"),
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	standards := resource[StandardDefinition, StandardCommand, StandardFilters]{
		filters: StandardFiltersFromQuery,
		list:    System.ListStandards,
		active:  System.Standards,
		find:    System.FindStandard,
		create:  System.CreateStandard,
		update:  System.UpdateStandard,
		remove:  System.DeleteStandard,
	}
	redLines := resource[RedLineRule, RedLineCommand, RedLineFilters]{
		filters: RedLineFiltersFromQuery,
		list:    System.ListRedLines,
		active:  System.RedLines,
		find:    System.FindRedLine,
		create:  System.CreateRedLine,
		update:  System.UpdateRedLine,
		remove:  System.DeleteRedLine,
	}
	personas := resource[Persona, PersonaCommand, PersonaFilters]{
		filters: PersonaFiltersFromQuery,
		list:    System.ListPersonas,
		find:    System.FindPersona,
		create:  System.CreatePersona,
		update:  System.UpdatePersona,
		remove:  System.DeletePersona,
	}

	redLineRoutes := append(redLines.routes(h, Spec.RedLines),
		routes.Route{Method: http.MethodPost, Pattern: "/{id}/activate", Handler: h.toggle(true), OpenAPI: Spec.Activate},
		routes.Route{Method: http.MethodPost, Pattern: "/{id}/deactivate", Handler: h.toggle(false), OpenAPI: Spec.Deactivate},
	)

	return routes.Group{
		Schemas:  Spec.Schemas(),
		Children: []routes.Group{
			{Prefix: "/standards", Tags: []string{"Standards"}, Routes: standards.routes(h, Spec.Standards)},
			{Prefix: "/red-lines", Tags: []string{"Red Lines"}, Routes: redLineRoutes},
			{Prefix: "/personas", Tags: []string{"Personas"}, Routes: personas.routes(h, Spec.Personas)},
			{
				Prefix: "/governance",
				Tags:   []string{"Governance"},
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "/snapshot", Handler: h.Snapshot, OpenAPI: Spec.Snapshot},
				},
			},
		},
	}
}

// Snapshot returns the active rule set exactly as the engine would load it.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	rs, err := h.sys.Snapshot(r.Context())
	h.respond(w, http.StatusOK, rs, err)
}

func (h *Handler) toggle(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathUUID(r, "id")
		if err != nil {
			h.respond(w, 0, nil, err)
			return
		}
		rule, err := h.sys.SetRedLineActive(r.Context(), id, active)
		h.respond(w, http.StatusOK, rule, err)
	}
}

// respond writes v with status, or maps err to its HTTP status.
func (h *Handler) respond(w http.ResponseWriter, status int, v any, err error) {
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if v == nil {
		w.WriteHeader(status)
		return
	}
	handlers.RespondJSON(w, status, v)
}

// resource wires the CRUD operations of one governance record type through
// method expressions on System. T is the record, C its write command and F
// its list filters.
type resource[T, C, F any] struct {
	filters func(url.Values) F
	list    func(System, context.Context, pagination.PageRequest, F) (*pagination.PageResult[T], error)
	active  func(System, context.Context) ([]T, error)
	find    func(System, context.Context, uuid.UUID) (*T, error)
	create  func(System, context.Context, C) (*T, error)
	update  func(System, context.Context, uuid.UUID, C) (*T, error)
	remove  func(System, context.Context, uuid.UUID) error
}

func (res resource[T, C, F]) routes(h *Handler, doc resourceSpec) []routes.Route {
	out := []routes.Route{
		{Method: http.MethodGet, Pattern: "", Handler: res.listHandler(h), OpenAPI: doc.List},
	}
	if res.active != nil {
		out = append(out, routes.Route{Method: http.MethodGet, Pattern: "/active", Handler: res.activeHandler(h), OpenAPI: doc.Active})
	}
	return append(out,
		routes.Route{Method: http.MethodGet, Pattern: "/{id}", Handler: res.findHandler(h), OpenAPI: doc.Find},
		routes.Route{Method: http.MethodPost, Pattern: "", Handler: res.createHandler(h), OpenAPI: doc.Create},
		routes.Route{Method: http.MethodPut, Pattern: "/{id}", Handler: res.updateHandler(h), OpenAPI: doc.Update},
		routes.Route{Method: http.MethodDelete, Pattern: "/{id}", Handler: res.deleteHandler(h), OpenAPI: doc.Delete},
	)
}

func (res resource[T, C, F]) listHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, err := res.list(h.sys, r.Context(), pagination.PageRequestFromQuery(q, h.pagination), res.filters(q))
		h.respond(w, http.StatusOK, page, err)
	}
}

func (res resource[T, C, F]) activeHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := res.active(h.sys, r.Context())
		if items == nil {
			items = []T{}
		}
		h.respond(w, http.StatusOK, items, err)
	}
}

func (res resource[T, C, F]) findHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathUUID(r, "id")
		if err != nil {
			h.respond(w, 0, nil, err)
			return
		}
		item, err := res.find(h.sys, r.Context(), id)
		h.respond(w, http.StatusOK, item, err)
	}
}

func (res resource[T, C, F]) createHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := handlers.Decode[C](r)
		if err != nil {
			h.respond(w, 0, nil, err)
			return
		}
		item, err := res.create(h.sys, r.Context(), cmd)
		h.respond(w, http.StatusCreated, item, err)
	}
}

func (res resource[T, C, F]) updateHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathUUID(r, "id")
		if err != nil {
			h.respond(w, 0, nil, err)
			return
		}
		cmd, err := handlers.Decode[C](r)
		if err != nil {
			h.respond(w, 0, nil, err)
			return
		}
		item, err := res.update(h.sys, r.Context(), id, cmd)
		h.respond(w, http.StatusOK, item, err)
	}
}

func (res resource[T, C, F]) deleteHandler(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handlers.PathUUID(r, "id")
		if err == nil {
			err = res.remove(h.sys, r.Context(), id)
		}
		h.respond(w, http.StatusNoContent, nil, err)
	}
}
