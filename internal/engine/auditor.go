package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/formatting"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

// Auditor checks a draft against a rule set. An empty result means the
// draft is clean. Implementations return red-line violations in rule-set
// order followed by standard-drift violations.
type Auditor interface {
	Audit(ctx context.Context, draft string, rules *governance.RuleSet) ([]Violation, error)
}

// AuditorFunc adapts a function to the Auditor interface.
type AuditorFunc func(ctx context.Context, draft string, rules *governance.RuleSet) ([]Violation, error)

// Audit calls f.
func (f AuditorFunc) Audit(ctx context.Context, draft string, rules *governance.RuleSet) ([]Violation, error) {
	return f(ctx, draft, rules)
}

// AuditMode selects the auditor implementation.
type AuditMode string

const (
	AuditLLM       AuditMode = "llm"
	AuditPattern   AuditMode = "pattern"
	AuditComposite AuditMode = "composite"
)

// NewAuditor builds the auditor for mode. The composite auditor runs the
// deterministic matcher first and the model classifier second.
func NewAuditor(mode AuditMode, client llm.Client) (Auditor, error) {
	switch mode {
	case AuditLLM:
		return NewLLMAuditor(client), nil
	case AuditPattern:
		return PatternAuditor{}, nil
	case AuditComposite:
		return CompositeAuditor{PatternAuditor{Partial: true}, NewLLMAuditor(client)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown audit_mode %q", ErrInvalidConfig, mode)
	}
}

const (
	findingRedLine       = "red_line"
	findingStandardDrift = "standard_drift"
)

type auditResponse struct {
	Violations []auditFinding `json:"violations"`
}

type auditFinding struct {
	Type         string `json:"type"`
	Index        int    `json:"index"`
	Evidence     string `json:"evidence"`
	SuggestedFix string `json:"suggested_fix"`
}

// LLMAuditor classifies a draft with the language model in JSON mode.
// Findings are resolved against the numbered rule list sent in the prompt;
// findings that reference an unknown rule are dropped.
type LLMAuditor struct {
	client llm.Client
}

// NewLLMAuditor creates a model-backed auditor.
func NewLLMAuditor(client llm.Client) *LLMAuditor {
	return &LLMAuditor{client: client}
}

// Audit implements Auditor.
func (a *LLMAuditor) Audit(ctx context.Context, draft string, rules *governance.RuleSet) ([]Violation, error) {
	guarantees := rules.Guarantees()
	if len(rules.RedLines) == 0 && len(guarantees) == 0 {
		return nil, nil
	}

	zero := 0.0
	out, err := a.client.Chat(ctx, llm.Request{
		Messages:    auditMessages(draft, rules),
		Temperature: &zero,
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("classify draft: %w", err)
	}

	resp, err := formatting.Parse[auditResponse](out)
	if err != nil {
		return nil, err
	}

	var (
		redLines = make(map[int]string)
		drift    = make(map[int]bool)
	)
	for _, f := range resp.Violations {
		switch strings.ToLower(strings.TrimSpace(f.Type)) {
		case findingRedLine:
			if f.Index >= 1 && f.Index <= len(rules.RedLines) {
				if _, seen := redLines[f.Index]; !seen {
					redLines[f.Index] = strings.TrimSpace(f.SuggestedFix)
				}
			}
		case findingStandardDrift:
			if f.Index >= 1 && f.Index <= len(guarantees) {
				drift[f.Index] = true
			}
		}
	}

	var violations []Violation
	for _, i := range slices.Sorted(maps.Keys(redLines)) {
		violations = append(violations, redLineViolation(rules.RedLines[i-1], redLines[i]))
	}
	for _, i := range slices.Sorted(maps.Keys(drift)) {
		violations = append(violations, driftViolation(guarantees[i-1]))
	}
	return violations, nil
}
