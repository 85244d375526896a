package api

import (
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/config"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/infrastructure"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
)

// Runtime is the API's view of the process infrastructure: shared clients
// with an api-scoped logger, plus the settings domain systems are built from.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	Engine      engine.Config
	MaxBodySize int64
}

// NewRuntime derives the API runtime from process config and infrastructure.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Engine:         cfg.Engine,
		MaxBodySize:    cfg.API.MaxBodySizeBytes(),
	}
}
