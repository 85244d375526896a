// Package engine implements the governed generation loop: a draft is
// generated, audited against the active rule set, and rewritten until it is
// clean or the rewrite ceiling is reached. The engine holds no rule state;
// every run receives an explicit governance.RuleSet snapshot.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

// State is a position in the generation state machine.
type State string

const (
	StateDrafting  State = "drafting"
	StateAuditing  State = "auditing"
	StateClean     State = "clean"
	StateViolated  State = "violated"
	StateRewriting State = "rewriting"
	StateDone      State = "done"
)

// Engine runs the bounded draft, audit, rewrite loop. It is safe for
// concurrent use; runs share no mutable state.
type Engine struct {
	generator   *Generator
	auditor     Auditor
	rewriter    *Rewriter
	maxRewrites int
	policy      CleanPolicy
	stepTimeout time.Duration
	logger      *slog.Logger
}

// New creates an Engine. cfg must be finalized.
func New(client llm.Client, auditor Auditor, cfg *Config, logger *slog.Logger) *Engine {
	return &Engine{
		generator:   NewGenerator(client),
		auditor:     auditor,
		rewriter:    NewRewriter(client),
		maxRewrites: cfg.MaxRewrites,
		policy:      cfg.CleanPolicy,
		stepTimeout: cfg.StepTimeoutDuration(),
		logger:      logger.With("system", "engine"),
	}
}

// MaxRewrites returns the rewrite ceiling.
func (e *Engine) MaxRewrites() int {
	return e.maxRewrites
}

type runOptions struct {
	instructions Instructions
}

// RunOption configures a single run.
type RunOption func(*runOptions)

// WithInstructions applies per-stage instruction overrides to a run.
func WithInstructions(i Instructions) RunOption {
	return func(o *runOptions) {
		o.instructions = i
	}
}

// Run executes one generation against rules.
//
// Validation errors wrap ErrInvalidRequest and occur before any model call.
// A failed first draft returns ErrGenerationFailed and a failed audit returns
// ErrAuditFailed. A failed rewrite is not an error: the last good draft
// becomes final and Result.RewriteError is set. Reaching the rewrite ceiling
// is not an error either; the result carries the unresolved violations.
// When ctx is cancelled the run stops after the in-flight step and returns
// the context error.
func (e *Engine) Run(ctx context.Context, req Request, rules *governance.RuleSet, opts ...RunOption) (*Result, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		GenerationsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, err
	}
	if rules == nil {
		GenerationsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil, fmt.Errorf("%w: rule set required", ErrInvalidRequest)
	}

	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	in := NewInput(req, rules, o.instructions)
	res := &Result{
		ViolationsFound: []Violation{},
		BuyerMode:       in.Mode,
		AuthorMode:      req.AuthorMode,
	}
	if in.Persona != nil {
		res.PersonaUsed = in.Persona.Name
	}

	logger := e.logger.With(
		"buyer_type", req.BuyerType,
		"buyer_mode", in.Mode,
		"pain_point", req.PainPoint,
		"author_mode", req.AuthorMode,
	)

	var (
		current string
		pending []Violation
		outcome string
		state   = StateDrafting
	)

	for state != StateDone {
		if ctx.Err() != nil {
			return nil, e.fail(ctx, logger, ctx.Err())
		}
		logger.DebugContext(ctx, "generation state", "state", state, "rewrite_attempts", res.RewriteAttempts)

		switch state {
		case StateDrafting:
			draft, err := step(ctx, e.stepTimeout, "draft", func(ctx context.Context) (string, error) {
				return e.generator.Draft(ctx, in)
			})
			if err != nil {
				return nil, e.fail(ctx, logger, err)
			}
			res.InitialDraft, current = draft, draft
			state = StateAuditing

		case StateAuditing:
			draft := current
			violations, err := step(ctx, e.stepTimeout, "audit", func(ctx context.Context) ([]Violation, error) {
				return e.auditor.Audit(ctx, draft, rules)
			})
			if err != nil {
				return nil, e.fail(ctx, logger, fmt.Errorf("%w: %w", ErrAuditFailed, err))
			}
			res.record(violations, res.RewriteAttempts)
			for _, v := range violations {
				ViolationsTotal.WithLabelValues(v.Category).Inc()
			}
			pending = violations
			if e.policy.Clean(violations) {
				state = StateClean
			} else {
				state = StateViolated
			}

		case StateClean:
			res.Clean = true
			outcome = outcomeClean
			state = StateDone

		case StateViolated:
			if res.RewriteAttempts >= e.maxRewrites {
				outcome = outcomeCeiling
				state = StateDone
			} else {
				state = StateRewriting
			}

		case StateRewriting:
			draft, violations := current, pending
			next, err := step(ctx, e.stepTimeout, "rewrite", func(ctx context.Context) (string, error) {
				return e.rewriter.Rewrite(ctx, in, draft, violations)
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, e.fail(ctx, logger, ctx.Err())
				}
				logger.WarnContext(ctx, "rewrite failed, keeping last draft",
					"attempt", res.RewriteAttempts+1,
					"error", err,
				)
				res.RewriteError = err.Error()
				outcome = outcomeRewriteFailed
				state = StateDone
				continue
			}
			res.RewriteAttempts++
			current = next
			state = StateAuditing
		}
	}

	res.FinalOutput = current
	elapsed := time.Since(start)
	res.ProcessingTimeMs = elapsed.Milliseconds()

	GenerationsTotal.WithLabelValues(outcome).Inc()
	GenerationDuration.Observe(elapsed.Seconds())
	RewriteAttempts.Observe(float64(res.RewriteAttempts))

	logger.InfoContext(ctx, "generation complete",
		"outcome", outcome,
		"rewrite_attempts", res.RewriteAttempts,
		"violation_count", res.ViolationCount,
		"duration_ms", res.ProcessingTimeMs,
	)
	return res, nil
}

func (e *Engine) fail(ctx context.Context, logger *slog.Logger, err error) error {
	if ctx.Err() != nil {
		GenerationsTotal.WithLabelValues(outcomeCancelled).Inc()
		logger.InfoContext(ctx, "generation cancelled", "error", ctx.Err())
		return ctx.Err()
	}
	GenerationsTotal.WithLabelValues(outcomeFailed).Inc()
	logger.ErrorContext(ctx, "generation failed", "error", err)
	return err
}

// step runs one model-facing call under its own timeout.
func step[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := fn(ctx)
	StepDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return out, err
}
