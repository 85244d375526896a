package api

import (
	"fmt"
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/config"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/openapi"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/routes"
)

// SpecPath is the path, relative to the API base path, serving the OpenAPI document.
const SpecPath = "/openapi.json"

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	groups := []routes.Group{
		domain.Briefs.Handler(domain.maxBodySize).Routes(),
		domain.Governance.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Audits.Handler().Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups...)
	if err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	mux.HandleFunc("GET "+SpecPath, openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	routes.Describe(spec, groups...)

	return openapi.MarshalJSON(spec)
}
