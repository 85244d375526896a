package api

import (
	"fmt"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/audits"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/briefs"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Governance governance.System
	Prompts    prompts.System
	Audits     audits.System
	Briefs     briefs.System

	maxBodySize int64
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	govSystem := governance.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	var store audits.Store
	if runtime.Storage != nil {
		store = runtime.Storage
	}

	auditsSystem := audits.New(
		runtime.Database.Connection(),
		store,
		runtime.Logger,
		runtime.Pagination,
	)

	auditor, err := engine.NewAuditor(runtime.Engine.AuditMode, runtime.LLM)
	if err != nil {
		return nil, fmt.Errorf("auditor: %w", err)
	}

	eng := engine.New(runtime.LLM, auditor, &runtime.Engine, runtime.Logger)

	briefsSystem := briefs.New(
		eng,
		govSystem,
		promptsSystem,
		auditsSystem,
		runtime.Logger,
	)

	return &Domain{
		Governance: govSystem,
		Prompts:    promptsSystem,
		Audits:     auditsSystem,
		Briefs:     briefsSystem,

		maxBodySize: runtime.MaxBodySize,
	}, nil
}
