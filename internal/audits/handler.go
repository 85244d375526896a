package audits

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/handlers"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/routes"
)

// Handler exposes the audit trail read-only.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "audits"),
		pagination: pagination,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/audit-logs",
		Tags:    []string{"Audit Logs"},
		Schemas: Spec.Schemas(),
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: http.MethodGet, Pattern: "/{id}/brief", Handler: h.Brief, OpenAPI: Spec.Brief},
		},
	}
}

// List pages through audit logs, newest first unless sort says otherwise.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.sys.List(r.Context(), pagination.PageRequestFromQuery(q, h.pagination), FiltersFromQuery(q))
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	entry, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, entry)
}

// Brief streams the archived HTML rendering of a logged brief. With
// ?download=true the response is marked as an attachment.
func (h *Handler) Brief(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	blob, err := h.sys.Brief(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	defer blob.Body.Close()

	hdr := w.Header()
	hdr.Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		hdr.Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		hdr.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": "brief-" + id.String() + ".html",
		}))
	}
	w.WriteHeader(http.StatusOK)

	if n, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("brief stream interrupted", "id", id, "written", n, "error", err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}
