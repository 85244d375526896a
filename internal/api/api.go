// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/config"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/infrastructure"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/formatting"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/middleware"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	logger := runtime.Infrastructure.Logger
	m.Use(
		middleware.RequestID(),
		middleware.Recover(logger),
		middleware.Logger(logger),
		middleware.Metrics("api"),
		middleware.CORS(&cfg.API.CORS),
	)

	logger.Info(
		"api module ready",
		"base_path", cfg.API.BasePath,
		"max_body_size", formatting.FormatBytes(runtime.MaxBodySize, 0),
		"audit_mode", cfg.Engine.AuditMode,
		"archive", runtime.Storage != nil,
	)

	return m, nil
}
