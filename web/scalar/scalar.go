// Package scalar serves the Scalar API reference UI for the service's OpenAPI document.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

var page = template.Must(template.ParseFS(staticFS, "index.html"))

type pageData struct {
	Title   string
	SpecURL string
}

// NewModule creates a module at basePath that renders the reference UI for the spec at specURL.
func NewModule(basePath, title, specURL string) *module.Module {
	return module.New(basePath, buildRouter(pageData{Title: title, SpecURL: specURL}))
}

func buildRouter(data pageData) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page.Execute(w, data)
	})

	return mux
}
