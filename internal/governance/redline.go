package governance

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Severity bounds for red-line rules. Severity 3 always forces a rewrite.
const (
	MinSeverity      = 1
	MaxSeverity      = 3
	CriticalSeverity = MaxSeverity
)

// RedLineRule is a governance rule whose violation mandates a rewrite.
// Pattern is an optional regular expression used by deterministic matching.
type RedLineRule struct {
	ID                    uuid.UUID `json:"id"`
	RuleContent           string    `json:"rule_content"`
	ViolationCategory     string    `json:"violation_category"`
	CorrectionInstruction string    `json:"correction_instruction"`
	Severity              int       `json:"severity"`
	Pattern               *string   `json:"pattern"`
	Active                bool      `json:"active"`
	CreatedAt             time.Time `json:"created_at"`
}

// Matcher compiles the rule pattern. Returns nil when the rule has no pattern.
func (r RedLineRule) Matcher() (*regexp.Regexp, error) {
	if r.Pattern == nil || strings.TrimSpace(*r.Pattern) == "" {
		return nil, nil
	}
	re, err := regexp.Compile(*r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// RedLineCommand carries the data needed to create or update a red-line rule.
type RedLineCommand struct {
	RuleContent           string  `json:"rule_content" yaml:"rule_content"`
	ViolationCategory     string  `json:"violation_category" yaml:"violation_category"`
	CorrectionInstruction string  `json:"correction_instruction" yaml:"correction_instruction"`
	Severity              int     `json:"severity" yaml:"severity"`
	Pattern               *string `json:"pattern" yaml:"pattern"`
}

// Validate checks required fields, severity bounds, and pattern syntax.
// A zero severity defaults to MinSeverity.
func (c *RedLineCommand) Validate() error {
	c.RuleContent = strings.TrimSpace(c.RuleContent)
	c.ViolationCategory = strings.TrimSpace(c.ViolationCategory)
	c.CorrectionInstruction = strings.TrimSpace(c.CorrectionInstruction)

	if c.RuleContent == "" {
		return missing("rule_content")
	}
	if c.ViolationCategory == "" {
		return missing("violation_category")
	}
	if c.CorrectionInstruction == "" {
		return missing("correction_instruction")
	}
	if c.Severity == 0 {
		c.Severity = MinSeverity
	}
	if c.Severity < MinSeverity || c.Severity > MaxSeverity {
		return fmt.Errorf("%w: %d", ErrInvalidSeverity, c.Severity)
	}
	if c.Pattern != nil && *c.Pattern != "" {
		if _, err := regexp.Compile(*c.Pattern); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
	}
	return nil
}
