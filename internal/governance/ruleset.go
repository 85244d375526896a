package governance

import (
	"slices"
	"strings"
)

// RuleSet is the immutable snapshot of active governance data loaded once
// per generation. Red lines are ordered by descending severity; ties keep
// load order.
type RuleSet struct {
	Standards []StandardDefinition `json:"standards"`
	RedLines  []RedLineRule        `json:"red_lines"`
	Personas  []Persona            `json:"personas"`
}

// NewRuleSet builds a snapshot, copying the inputs and ordering red lines.
func NewRuleSet(standards []StandardDefinition, redLines []RedLineRule, personas []Persona) *RuleSet {
	rs := &RuleSet{
		Standards: slices.Clone(standards),
		RedLines:  slices.Clone(redLines),
		Personas:  slices.Clone(personas),
	}
	SortRedLines(rs.RedLines)
	return rs
}

// SortRedLines orders rules by descending severity, stable on input order.
func SortRedLines(rules []RedLineRule) {
	slices.SortStableFunc(rules, func(a, b RedLineRule) int {
		return b.Severity - a.Severity
	})
}

// Guarantees returns the standard definitions that carry guarantee text.
func (rs *RuleSet) Guarantees() []StandardDefinition {
	var out []StandardDefinition
	for _, s := range rs.Standards {
		if s.HasGuarantee() {
			out = append(out, s)
		}
	}
	return out
}

// Persona returns the persona with the given name, case-insensitive.
func (rs *RuleSet) Persona(name string) (*Persona, bool) {
	for i := range rs.Personas {
		if strings.EqualFold(rs.Personas[i].Name, name) {
			return &rs.Personas[i], true
		}
	}
	return nil, false
}
