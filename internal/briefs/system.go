package briefs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/audits"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
)

const recordTimeout = 10 * time.Second

// System defines the public contract for brief generation.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Generate runs one governed generation. Fatal errors return no result;
	// a completed result is recorded to the audit log before returning.
	Generate(ctx context.Context, cmd Command) (*engine.Result, error)
}

type system struct {
	engine    *engine.Engine
	rules     RuleSource
	overrides OverrideSource
	sink      Sink
	logger    *slog.Logger
}

// New creates a brief generation system. overrides and sink may be nil.
func New(
	eng *engine.Engine,
	rules RuleSource,
	overrides OverrideSource,
	sink Sink,
	logger *slog.Logger,
) System {
	return &system{
		engine:    eng,
		rules:     rules,
		overrides: overrides,
		sink:      sink,
		logger:    logger.With("system", "briefs"),
	}
}

func (s *system) Handler(maxBodySize int64) *Handler {
	return NewHandler(s, s.logger, maxBodySize)
}

func (s *system) Generate(ctx context.Context, cmd Command) (*engine.Result, error) {
	if err := cmd.Request.Validate(); err != nil {
		return nil, err
	}

	rules, err := s.rules.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuleStoreUnavailable, err)
	}

	var opts []engine.RunOption
	if instructions := s.instructions(ctx); len(instructions) > 0 {
		opts = append(opts, engine.WithInstructions(instructions))
	}

	result, err := s.engine.Run(ctx, cmd.Request, rules, opts...)
	if err != nil {
		return nil, err
	}

	s.record(ctx, cmd, result)
	return result, nil
}

func (s *system) instructions(ctx context.Context) engine.Instructions {
	if s.overrides == nil {
		return nil
	}

	instructions, err := s.overrides.Overrides(ctx)
	if err != nil {
		s.logger.Warn("prompt overrides unavailable, using defaults", "error", err)
		return nil
	}
	return instructions
}

// record writes the audit log detached from the caller's cancellation; the
// generation has already completed and its result is returned regardless.
func (s *system) record(ctx context.Context, cmd Command, result *engine.Result) {
	if s.sink == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	rec := audits.Record{
		Request: cmd.Request,
		Result:  result,
		UserID:  cmd.UserID,
	}
	if _, err := s.sink.Record(ctx, rec); err != nil {
		s.logger.Error("audit log write failed", "error", err)
	}
}
