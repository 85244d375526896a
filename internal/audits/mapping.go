package audits

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/query"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/repository"
)

const entryColumns = `id, buyer_type, buyer_mode, pain_point, author_mode, persona_used,
	situation, project_context, initial_draft, final_output, violation_count,
	violations_found, rewrite_attempts, clean, rewrite_error, processing_time_ms,
	user_id, artifact_key, created_at`

var projection = query.
	NewProjectionMap("public", "generation_audit_logs", "g").
	Project("id", "ID").
	Project("buyer_type", "BuyerType").
	Project("buyer_mode", "BuyerMode").
	Project("pain_point", "PainPoint").
	Project("author_mode", "AuthorMode").
	Project("persona_used", "PersonaUsed").
	Project("situation", "Situation").
	Project("project_context", "ProjectContext").
	Project("initial_draft", "InitialDraft").
	Project("final_output", "FinalOutput").
	Project("violation_count", "ViolationCount").
	Project("violations_found", "ViolationsFound").
	Project("rewrite_attempts", "RewriteAttempts").
	Project("clean", "Clean").
	Project("rewrite_error", "RewriteError").
	Project("processing_time_ms", "ProcessingTimeMs").
	Project("user_id", "UserID").
	Project("artifact_key", "ArtifactKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for audit log queries.
// Codes match exactly; CreatedAfter is inclusive and CreatedBefore exclusive.
type Filters struct {
	BuyerType     *engine.BuyerType  `json:"buyer_type,omitempty"`
	PainPoint     *engine.PainPoint  `json:"pain_point,omitempty"`
	AuthorMode    *engine.AuthorMode `json:"author_mode,omitempty"`
	Clean         *bool              `json:"clean,omitempty"`
	UserID        *string            `json:"user_id,omitempty"`
	CreatedAfter  *time.Time         `json:"created_after,omitempty"`
	CreatedBefore *time.Time         `json:"created_before,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("BuyerType", f.BuyerType).
		WhereEquals("PainPoint", f.PainPoint).
		WhereEquals("AuthorMode", f.AuthorMode).
		WhereEquals("Clean", f.Clean).
		WhereEquals("UserID", f.UserID).
		WhereAtLeast("CreatedAt", f.CreatedAfter).
		WhereBefore("CreatedAt", f.CreatedBefore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("buyer_type"); v != "" {
		bt := engine.BuyerType(v)
		f.BuyerType = &bt
	}
	if v := values.Get("pain_point"); v != "" {
		pp := engine.PainPoint(v)
		f.PainPoint = &pp
	}
	if v := values.Get("author_mode"); v != "" {
		am := engine.AuthorMode(v)
		f.AuthorMode = &am
	}
	if v := values.Get("clean"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Clean = &b
		}
	}
	if v := values.Get("user_id"); v != "" {
		f.UserID = &v
	}
	if v := values.Get("created_after"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedAfter = &t
		}
	}
	if v := values.Get("created_before"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.CreatedBefore = &t
		}
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var (
		e          Entry
		violations []byte
	)
	err := s.Scan(
		&e.ID,
		&e.BuyerType,
		&e.BuyerMode,
		&e.PainPoint,
		&e.AuthorMode,
		&e.PersonaUsed,
		&e.Situation,
		&e.ProjectContext,
		&e.InitialDraft,
		&e.FinalOutput,
		&e.ViolationCount,
		&violations,
		&e.RewriteAttempts,
		&e.Clean,
		&e.RewriteError,
		&e.ProcessingTimeMs,
		&e.UserID,
		&e.ArtifactKey,
		&e.CreatedAt,
	)
	if err != nil {
		return e, err
	}

	e.ViolationsFound = []engine.Violation{}
	if len(violations) > 0 {
		if err := json.Unmarshal(violations, &e.ViolationsFound); err != nil {
			return e, fmt.Errorf("decode violations_found: %w", err)
		}
	}
	return e, nil
}
