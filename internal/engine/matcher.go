package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
)

// PatternAuditor is a deterministic auditor. A red line is violated when its
// pattern matches the draft. A guaranteed standard drifts when the draft
// mentions its term without the exact guarantee text.
//
// A red line without a pattern cannot be checked here and fails the audit
// with ErrUnenforceableRule, unless Partial is set because another auditor
// in a CompositeAuditor covers those rules.
type PatternAuditor struct {
	Partial bool
}

// Audit implements Auditor.
func (p PatternAuditor) Audit(ctx context.Context, draft string, rules *governance.RuleSet) ([]Violation, error) {
	var violations []Violation

	for _, r := range rules.RedLines {
		re, err := r.Matcher()
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		if re == nil {
			if p.Partial {
				continue
			}
			return nil, fmt.Errorf("%w: %q", ErrUnenforceableRule, r.RuleContent)
		}
		if re.MatchString(draft) {
			violations = append(violations, redLineViolation(r, ""))
		}
	}

	lower := strings.ToLower(draft)
	for _, s := range rules.Guarantees() {
		if strings.Contains(lower, strings.ToLower(s.Term)) && !strings.Contains(draft, *s.GuaranteeText) {
			violations = append(violations, driftViolation(s))
		}
	}

	return violations, nil
}

// CompositeAuditor runs auditors in sequence and merges their findings.
// Duplicate (category, rule) pairs are reported once and the merged list is
// returned in canonical rule-set order.
type CompositeAuditor []Auditor

// Audit implements Auditor.
func (c CompositeAuditor) Audit(ctx context.Context, draft string, rules *governance.RuleSet) ([]Violation, error) {
	type key struct{ category, rule string }

	var (
		merged []Violation
		seen   = make(map[key]bool)
	)
	for _, a := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs, err := a.Audit(ctx, draft, rules)
		if err != nil {
			return nil, err
		}
		for _, v := range vs {
			k := key{v.Category, v.Rule}
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, v)
		}
	}

	order := canonicalOrder(rules)
	slices.SortStableFunc(merged, func(a, b Violation) int {
		return rank(order, a) - rank(order, b)
	})
	return merged, nil
}

// canonicalOrder maps each rule's violation text to its evaluation position:
// red lines in rule-set order, then guaranteed standards.
func canonicalOrder(rules *governance.RuleSet) map[string]int {
	order := make(map[string]int, len(rules.RedLines))
	for i, r := range rules.RedLines {
		if _, ok := order[r.RuleContent]; !ok {
			order[r.RuleContent] = i
		}
	}
	offset := len(rules.RedLines)
	for i, s := range rules.Guarantees() {
		order[driftViolation(s).Rule] = offset + i
	}
	return order
}

func rank(order map[string]int, v Violation) int {
	if i, ok := order[v.Rule]; ok {
		return i
	}
	return len(order)
}
