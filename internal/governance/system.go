package governance

import (
	"context"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
)

// System defines the public contract for governance operations.
// Standards, RedLines, Personas, and Snapshot return active records only
// and are the reads the generation engine depends on.
type System interface {
	Handler() *Handler

	Standards(ctx context.Context) ([]StandardDefinition, error)
	RedLines(ctx context.Context) ([]RedLineRule, error)
	Personas(ctx context.Context) ([]Persona, error)
	Snapshot(ctx context.Context) (*RuleSet, error)

	ListStandards(ctx context.Context, page pagination.PageRequest, filters StandardFilters) (*pagination.PageResult[StandardDefinition], error)
	FindStandard(ctx context.Context, id uuid.UUID) (*StandardDefinition, error)
	CreateStandard(ctx context.Context, cmd StandardCommand) (*StandardDefinition, error)
	UpdateStandard(ctx context.Context, id uuid.UUID, cmd StandardCommand) (*StandardDefinition, error)
	DeleteStandard(ctx context.Context, id uuid.UUID) error

	ListRedLines(ctx context.Context, page pagination.PageRequest, filters RedLineFilters) (*pagination.PageResult[RedLineRule], error)
	FindRedLine(ctx context.Context, id uuid.UUID) (*RedLineRule, error)
	CreateRedLine(ctx context.Context, cmd RedLineCommand) (*RedLineRule, error)
	UpdateRedLine(ctx context.Context, id uuid.UUID, cmd RedLineCommand) (*RedLineRule, error)
	DeleteRedLine(ctx context.Context, id uuid.UUID) error
	SetRedLineActive(ctx context.Context, id uuid.UUID, active bool) (*RedLineRule, error)

	ListPersonas(ctx context.Context, page pagination.PageRequest, filters PersonaFilters) (*pagination.PageResult[Persona], error)
	FindPersona(ctx context.Context, id uuid.UUID) (*Persona, error)
	CreatePersona(ctx context.Context, cmd PersonaCommand) (*Persona, error)
	UpdatePersona(ctx context.Context, id uuid.UUID, cmd PersonaCommand) (*Persona, error)
	DeletePersona(ctx context.Context, id uuid.UUID) error

	Seed(ctx context.Context, seed *Seed) (*SeedReport, error)
}
