package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/repository"
)

const (
	insertPrompt = `
		INSERT INTO stage_prompts (name, stage, instructions, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + promptColumns

	// Moving an override to another stage drops its active flag so the
	// target stage keeps at most one active override.
	updatePrompt = `
		UPDATE stage_prompts
		SET name = $1, stage = $2, instructions = $3, description = $4,
		    active = (active AND stage = $2)
		WHERE id = $5
		RETURNING ` + promptColumns

	clearStage = `
		UPDATE stage_prompts SET active = false
		WHERE active AND id <> $1
		  AND stage = (SELECT stage FROM stage_prompts WHERE id = $1)`

	setActive = `UPDATE stage_prompts SET active = $2 WHERE id = $1 RETURNING ` + promptColumns

	deletePrompt = `DELETE FROM stage_prompts WHERE id = $1`
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New returns the Postgres-backed prompt System.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)
	qb := filters.Apply(query.NewBuilder(projection, defaultSort).WhereSearch(page.Search, "Name", "Description"))

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)
	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, r.mapErr(err)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Prompt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return r.write(ctx, "prompt created", func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, insertPrompt,
			[]any{cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description}, scanPrompt)
	})
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Prompt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return r.write(ctx, "prompt updated", func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, updatePrompt,
			[]any{cmd.Name, cmd.Stage, cmd.Instructions, cmd.Description, id}, scanPrompt)
	})
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, deletePrompt, id)
	})
	if err != nil {
		return r.mapErr(err)
	}
	r.logger.Info("prompt deleted", "id", id)
	return nil
}

// Activate clears any other active override of the same stage before
// flagging id, inside one transaction.
func (r *repo) Activate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.write(ctx, "prompt activated", func(tx *sql.Tx) (Prompt, error) {
		if _, err := tx.ExecContext(ctx, clearStage, id); err != nil {
			return Prompt{}, fmt.Errorf("clear active override: %w", err)
		}
		return repository.QueryOne(ctx, tx, setActive, []any{id, true}, scanPrompt)
	})
}

func (r *repo) Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return r.write(ctx, "prompt deactivated", func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, setActive, []any{id, false}, scanPrompt)
	})
}

func (r *repo) Overrides(ctx context.Context) (engine.Instructions, error) {
	q, args := query.NewBuilder(projection, defaultSort).WhereEquals("Active", true).Build()

	active, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query active prompts: %w", err)
	}

	out := make(engine.Instructions, len(active))
	for _, p := range active {
		out[p.Stage] = p.Instructions
	}
	return out, nil
}

func (r *repo) write(ctx context.Context, event string, fn func(*sql.Tx) (Prompt, error)) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, fn)
	if err != nil {
		return nil, r.mapErr(err)
	}
	r.logger.Info(event, "id", p.ID, "name", p.Name, "stage", p.Stage, "active", p.Active)
	return &p, nil
}

func (r *repo) mapErr(err error) error {
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}
