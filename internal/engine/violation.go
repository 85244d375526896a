package engine

import "github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"

// CategoryStandardDrift marks a draft that paraphrases a guaranteed standard
// instead of using its exact guarantee text.
const CategoryStandardDrift = "standard-drift"

// Violation is a single governance finding from one audit.
// Attempt is 0 for the initial draft and k for the draft produced by rewrite k.
type Violation struct {
	Category   string `json:"category"`
	Rule       string `json:"rule"`
	Correction string `json:"correction"`
	Severity   int    `json:"severity"`
	Attempt    int    `json:"attempt"`
}

func (v Violation) critical() bool {
	return v.Severity >= governance.CriticalSeverity
}

// CleanPolicy decides whether an audit result ends the rewrite loop.
type CleanPolicy string

const (
	// CleanAll requires zero violations of any severity.
	CleanAll CleanPolicy = "all"
	// CleanCritical tolerates violations below critical severity.
	CleanCritical CleanPolicy = "critical"
)

// Clean reports whether violations satisfy the policy.
func (p CleanPolicy) Clean(violations []Violation) bool {
	if p == CleanCritical {
		for _, v := range violations {
			if v.critical() {
				return false
			}
		}
		return true
	}
	return len(violations) == 0
}

func (p CleanPolicy) valid() bool {
	return p == CleanAll || p == CleanCritical
}

func driftViolation(s governance.StandardDefinition) Violation {
	return Violation{
		Category:   CategoryStandardDrift,
		Rule:       s.Term + ": " + *s.GuaranteeText,
		Correction: `Use the exact guarantee text "` + *s.GuaranteeText + `" when referencing ` + s.Term + ".",
		Severity:   governance.CriticalSeverity,
	}
}

func redLineViolation(r governance.RedLineRule, correction string) Violation {
	if correction == "" {
		correction = r.CorrectionInstruction
	}
	return Violation{
		Category:   r.ViolationCategory,
		Rule:       r.RuleContent,
		Correction: correction,
		Severity:   r.Severity,
	}
}
