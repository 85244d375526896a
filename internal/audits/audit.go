// Package audits is the write sink and read surface for generation audit logs.
// One entry is recorded per completed generation. When blob storage is
// configured, the final brief is rendered to HTML and archived alongside it.
package audits

import (
	"time"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
)

// Entry is a persisted generation audit log.
type Entry struct {
	ID               uuid.UUID          `json:"id"`
	BuyerType        engine.BuyerType   `json:"buyer_type"`
	BuyerMode        engine.BuyerMode   `json:"buyer_mode"`
	PainPoint        engine.PainPoint   `json:"pain_point"`
	AuthorMode       engine.AuthorMode  `json:"author_mode"`
	PersonaUsed      *string            `json:"persona_used"`
	Situation        *string            `json:"situation"`
	ProjectContext   string             `json:"project_context"`
	InitialDraft     string             `json:"initial_draft"`
	FinalOutput      string             `json:"final_output"`
	ViolationCount   int                `json:"violation_count"`
	ViolationsFound  []engine.Violation `json:"violations_found"`
	RewriteAttempts  int                `json:"rewrite_attempts"`
	Clean            bool               `json:"clean"`
	RewriteError     *string            `json:"rewrite_error"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	UserID           *string            `json:"user_id"`
	ArtifactKey      *string            `json:"artifact_key"`
	CreatedAt        time.Time          `json:"created_at"`
}

// Record is a completed generation handed to the sink.
type Record struct {
	Request engine.Request
	Result  *engine.Result
	UserID  string
}

// Validate checks that the record carries a result.
func (r Record) Validate() error {
	if r.Result == nil {
		return ErrInvalidRecord
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
