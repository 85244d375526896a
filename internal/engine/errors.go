package engine

import "errors"

// Engine errors. ErrGenerationFailed and ErrAuditFailed are fatal to a run;
// ErrRewriteFailed is recovered by the controller and surfaces only as
// Result.RewriteError.
var (
	ErrInvalidRequest   = errors.New("invalid generation request")
	ErrGenerationFailed = errors.New("could not generate content")
	ErrAuditFailed      = errors.New("audit failed")
	ErrRewriteFailed    = errors.New("rewrite failed")
	ErrInvalidStage     = errors.New("stage must be draft or rewrite")
	ErrInvalidConfig    = errors.New("invalid engine config")

	// ErrUnenforceableRule is returned by a PatternAuditor that meets a red
	// line it has no pattern for.
	ErrUnenforceableRule = errors.New("red line has no pattern for deterministic audit")
)
