package governance

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/repository"
)

const (
	standardColumns = "id, term, definition, guarantee_text, category, active, created_at"
	redLineColumns  = "id, rule_content, violation_category, correction_instruction, severity, pattern, active, created_at"
	personaColumns  = "id, name, core_identity, voice_mode, mantra, directives, active, created_at"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a governance repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "governance"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Standards(ctx context.Context) ([]StandardDefinition, error) {
	q, args := query.NewBuilder(standardProjection, standardSort).
		WhereEquals("Active", true).
		Build()

	out, err := repository.QueryMany(ctx, r.db, q, args, scanStandard)
	if err != nil {
		return nil, fmt.Errorf("query standards: %w", err)
	}
	return out, nil
}

func (r *repo) RedLines(ctx context.Context) ([]RedLineRule, error) {
	q, args := query.NewBuilder(redLineProjection, redLineSort...).
		WhereEquals("Active", true).
		Build()

	out, err := repository.QueryMany(ctx, r.db, q, args, scanRedLine)
	if err != nil {
		return nil, fmt.Errorf("query red lines: %w", err)
	}
	SortRedLines(out)
	return out, nil
}

func (r *repo) Personas(ctx context.Context) ([]Persona, error) {
	q, args := query.NewBuilder(personaProjection, personaSort).
		WhereEquals("Active", true).
		Build()

	out, err := repository.QueryMany(ctx, r.db, q, args, scanPersona)
	if err != nil {
		return nil, fmt.Errorf("query personas: %w", err)
	}
	return out, nil
}

// Snapshot loads all active governance data concurrently.
// Any failure discards the partial result.
func (r *repo) Snapshot(ctx context.Context) (*RuleSet, error) {
	var (
		standards []StandardDefinition
		redLines  []RedLineRule
		personas  []Persona
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		standards, err = r.Standards(gctx)
		return err
	})
	g.Go(func() (err error) {
		redLines, err = r.RedLines(gctx)
		return err
	})
	g.Go(func() (err error) {
		personas, err = r.Personas(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("rule snapshot failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	rs := NewRuleSet(standards, redLines, personas)
	r.logger.Debug(
		"rule snapshot loaded",
		"standards", len(rs.Standards),
		"red_lines", len(rs.RedLines),
		"personas", len(rs.Personas),
	)
	return rs, nil
}

func (r *repo) ListStandards(
	ctx context.Context,
	page pagination.PageRequest,
	filters StandardFilters,
) (*pagination.PageResult[StandardDefinition], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(standardProjection, standardSort).
		WhereSearch(page.Search, "Term", "Definition")
	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanStandard)
	if err != nil {
		return nil, fmt.Errorf("list standards: %w", err)
	}
	return result, nil
}

func (r *repo) FindStandard(ctx context.Context, id uuid.UUID) (*StandardDefinition, error) {
	q, args := query.NewBuilder(standardProjection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanStandard)
	if err != nil {
		return nil, repository.MapError(err, ErrStandardNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) CreateStandard(ctx context.Context, cmd StandardCommand) (*StandardDefinition, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO standard_definitions(term, definition, guarantee_text, category)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + standardColumns

	args := []any{cmd.Term, cmd.Definition, cmd.GuaranteeText, cmd.Category}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (StandardDefinition, error) {
		return repository.QueryOne(ctx, tx, q, args, scanStandard)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrStandardNotFound, ErrDuplicate)
	}

	r.logger.Info("standard created", "id", s.ID, "term", s.Term)
	return &s, nil
}

func (r *repo) UpdateStandard(ctx context.Context, id uuid.UUID, cmd StandardCommand) (*StandardDefinition, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE standard_definitions
		SET term = $1, definition = $2, guarantee_text = $3, category = $4
		WHERE id = $5
		RETURNING ` + standardColumns

	args := []any{cmd.Term, cmd.Definition, cmd.GuaranteeText, cmd.Category, id}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (StandardDefinition, error) {
		return repository.QueryOne(ctx, tx, q, args, scanStandard)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrStandardNotFound, ErrDuplicate)
	}

	r.logger.Info("standard updated", "id", s.ID, "term", s.Term)
	return &s, nil
}

func (r *repo) DeleteStandard(ctx context.Context, id uuid.UUID) error {
	if err := r.deleteOne(ctx, "DELETE FROM standard_definitions WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrStandardNotFound, ErrDuplicate)
	}
	r.logger.Info("standard deleted", "id", id)
	return nil
}

func (r *repo) ListRedLines(
	ctx context.Context,
	page pagination.PageRequest,
	filters RedLineFilters,
) (*pagination.PageResult[RedLineRule], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(redLineProjection, redLineSort...).
		WhereSearch(page.Search, "RuleContent", "ViolationCategory")
	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanRedLine)
	if err != nil {
		return nil, fmt.Errorf("list red lines: %w", err)
	}
	return result, nil
}

func (r *repo) FindRedLine(ctx context.Context, id uuid.UUID) (*RedLineRule, error) {
	q, args := query.NewBuilder(redLineProjection).BuildSingle("ID", id)

	rule, err := repository.QueryOne(ctx, r.db, q, args, scanRedLine)
	if err != nil {
		return nil, repository.MapError(err, ErrRedLineNotFound, ErrDuplicate)
	}
	return &rule, nil
}

func (r *repo) CreateRedLine(ctx context.Context, cmd RedLineCommand) (*RedLineRule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO governance_red_lines(rule_content, violation_category, correction_instruction, severity, pattern)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + redLineColumns

	args := []any{cmd.RuleContent, cmd.ViolationCategory, cmd.CorrectionInstruction, cmd.Severity, cmd.Pattern}

	rule, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RedLineRule, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRedLine)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrRedLineNotFound, ErrDuplicate)
	}

	r.logger.Info("red line created", "id", rule.ID, "category", rule.ViolationCategory, "severity", rule.Severity)
	return &rule, nil
}

func (r *repo) UpdateRedLine(ctx context.Context, id uuid.UUID, cmd RedLineCommand) (*RedLineRule, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE governance_red_lines
		SET rule_content = $1, violation_category = $2, correction_instruction = $3, severity = $4, pattern = $5
		WHERE id = $6
		RETURNING ` + redLineColumns

	args := []any{cmd.RuleContent, cmd.ViolationCategory, cmd.CorrectionInstruction, cmd.Severity, cmd.Pattern, id}

	rule, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RedLineRule, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRedLine)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrRedLineNotFound, ErrDuplicate)
	}

	r.logger.Info("red line updated", "id", rule.ID, "severity", rule.Severity)
	return &rule, nil
}

func (r *repo) DeleteRedLine(ctx context.Context, id uuid.UUID) error {
	if err := r.deleteOne(ctx, "DELETE FROM governance_red_lines WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrRedLineNotFound, ErrDuplicate)
	}
	r.logger.Info("red line deleted", "id", id)
	return nil
}

func (r *repo) SetRedLineActive(ctx context.Context, id uuid.UUID, active bool) (*RedLineRule, error) {
	q := `
		UPDATE governance_red_lines SET active = $1
		WHERE id = $2
		RETURNING ` + redLineColumns

	rule, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (RedLineRule, error) {
		return repository.QueryOne(ctx, tx, q, []any{active, id}, scanRedLine)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrRedLineNotFound, ErrDuplicate)
	}

	r.logger.Info("red line toggled", "id", rule.ID, "active", rule.Active)
	return &rule, nil
}

func (r *repo) ListPersonas(
	ctx context.Context,
	page pagination.PageRequest,
	filters PersonaFilters,
) (*pagination.PageResult[Persona], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(personaProjection, personaSort).
		WhereSearch(page.Search, "Name", "CoreIdentity")
	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanPersona)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	return result, nil
}

func (r *repo) FindPersona(ctx context.Context, id uuid.UUID) (*Persona, error) {
	q, args := query.NewBuilder(personaProjection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPersona)
	if err != nil {
		return nil, repository.MapError(err, ErrPersonaNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) CreatePersona(ctx context.Context, cmd PersonaCommand) (*Persona, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	voice, err := encodeVoice(cmd.VoiceMode)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO brand_personas(name, core_identity, voice_mode, mantra, directives)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + personaColumns

	args := []any{cmd.Name, cmd.CoreIdentity, voice, cmd.Mantra, cmd.Directives}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Persona, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPersona)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrPersonaNotFound, ErrDuplicate)
	}

	r.logger.Info("persona created", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repo) UpdatePersona(ctx context.Context, id uuid.UUID, cmd PersonaCommand) (*Persona, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	voice, err := encodeVoice(cmd.VoiceMode)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE brand_personas
		SET name = $1, core_identity = $2, voice_mode = $3, mantra = $4, directives = $5, updated_at = now()
		WHERE id = $6
		RETURNING ` + personaColumns

	args := []any{cmd.Name, cmd.CoreIdentity, voice, cmd.Mantra, cmd.Directives, id}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Persona, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPersona)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrPersonaNotFound, ErrDuplicate)
	}

	r.logger.Info("persona updated", "id", p.ID, "name", p.Name)
	return &p, nil
}

func (r *repo) DeletePersona(ctx context.Context, id uuid.UUID) error {
	if err := r.deleteOne(ctx, "DELETE FROM brand_personas WHERE id = $1", id); err != nil {
		return repository.MapError(err, ErrPersonaNotFound, ErrDuplicate)
	}
	r.logger.Info("persona deleted", "id", id)
	return nil
}

func (r *repo) deleteOne(ctx context.Context, stmt string, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, stmt, id)
	})
	return err
}
