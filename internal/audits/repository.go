package audits

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/repository"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/storage"
)

type repo struct {
	db         *sql.DB
	store      Store
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit log repository implementing the System interface.
// store may be nil, in which case briefs are not archived.
func New(
	db *sql.DB,
	store Store,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		store:      store,
		logger:     logger.With("system", "audits"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Record(ctx context.Context, rec Record) (*Entry, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	violations := rec.Result.ViolationsFound
	if violations == nil {
		violations = []engine.Violation{}
	}
	payload, err := json.Marshal(violations)
	if err != nil {
		return nil, fmt.Errorf("encode violations: %w", err)
	}

	q := `
		INSERT INTO generation_audit_logs(
			buyer_type, buyer_mode, pain_point, author_mode, persona_used,
			situation, project_context, initial_draft, final_output, violation_count,
			violations_found, rewrite_attempts, clean, rewrite_error, processing_time_ms,
			user_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + entryColumns

	res := rec.Result
	args := []any{
		rec.Request.BuyerType,
		res.BuyerMode,
		rec.Request.PainPoint,
		res.AuthorMode,
		optional(res.PersonaUsed),
		optional(rec.Request.Situation),
		rec.Request.ProjectContext,
		res.InitialDraft,
		res.FinalOutput,
		res.ViolationCount,
		string(payload),
		res.RewriteAttempts,
		res.Clean,
		optional(res.RewriteError),
		res.ProcessingTimeMs,
		optional(rec.UserID),
	}

	entry, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEntry)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"audit log recorded",
		"id", entry.ID,
		"buyer_type", entry.BuyerType,
		"violations", entry.ViolationCount,
		"rewrites", entry.RewriteAttempts,
		"clean", entry.Clean,
	)

	if r.store != nil {
		r.attach(ctx, &entry)
	}

	return &entry, nil
}

// attach archives the brief and records its key. Failures leave the entry
// without an artifact; an upload whose key cannot be recorded is removed.
func (r *repo) attach(ctx context.Context, e *Entry) {
	key, err := archive(ctx, r.store, e)
	if err != nil {
		r.logger.Warn("brief archive failed", "id", e.ID, "error", err)
		return
	}

	q := `UPDATE generation_audit_logs SET artifact_key = $1 WHERE id = $2`
	if err := repository.ExecExpectOne(ctx, r.db, q, key, e.ID); err != nil {
		r.logger.Warn("artifact key update failed", "id", e.ID, "key", key, "error", err)
		if err := r.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			r.logger.Warn("orphaned brief not removed", "key", key, "error", err)
		}
		return
	}

	e.ArtifactKey = &key
	r.logger.Debug("brief archived", "id", e.ID, "key", key)
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "ProjectContext", "FinalOutput")

	filters.Apply(qb)

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Brief(ctx context.Context, id uuid.UUID) (*storage.Blob, error) {
	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return openBrief(ctx, r.store, e)
}

func openBrief(ctx context.Context, store Store, e *Entry) (*storage.Blob, error) {
	if store == nil || e.ArtifactKey == nil {
		return nil, ErrNoArtifact
	}

	blob, err := store.Download(ctx, *e.ArtifactKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoArtifact
		}
		return nil, fmt.Errorf("download brief: %w", err)
	}
	return blob, nil
}
