package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

// Input is the resolved context shared by every step of one generation.
type Input struct {
	Request      Request
	Mode         BuyerMode
	Rules        *governance.RuleSet
	Persona      *governance.Persona
	Instructions Instructions
}

// NewInput resolves the buyer mode and brand persona for a validated request.
func NewInput(req Request, rules *governance.RuleSet, instructions Instructions) *Input {
	in := &Input{
		Request:      req,
		Mode:         MapBuyerType(req.BuyerType),
		Rules:        rules,
		Instructions: instructions,
	}
	if p, ok := rules.Persona(string(req.AuthorMode)); ok {
		in.Persona = p
	}
	return in
}

func draftMessages(in *Input) []llm.Message {
	var sb strings.Builder
	sb.WriteString(in.Instructions.For(StageDraft))
	sb.WriteString("\n\n")
	sb.WriteString(specs[StageDraft])

	profile := Profile(in.Mode)
	fmt.Fprintf(&sb, "\n\nReader: %s. %s", profile.Label, profile.Emphasis)
	fmt.Fprintf(&sb, "\n\nProblem: %s. %s", in.Request.PainPoint.Label(), in.Request.PainPoint.Framing())

	writeVoice(&sb, in)
	writeStandards(&sb, in.Rules)
	writeRedLines(&sb, in.Rules)

	return []llm.Message{
		llm.System(sb.String()),
		llm.User(contextBlock(in.Request)),
	}
}

func rewriteMessages(in *Input, draft string, violations []Violation) []llm.Message {
	var sb strings.Builder
	sb.WriteString(in.Instructions.For(StageRewrite))
	sb.WriteString("\n\n")
	sb.WriteString(specs[StageRewrite])

	writeVoice(&sb, in)
	writeStandards(&sb, in.Rules)

	var user strings.Builder
	user.WriteString(contextBlock(in.Request))
	user.WriteString("\n\nDraft:\n\n")
	user.WriteString(draft)
	user.WriteString("\n\nViolations to resolve:\n")
	for i, v := range violations {
		fmt.Fprintf(&user, "%d. [%s, severity %d] %s\n   Correction: %s\n", i+1, v.Category, v.Severity, v.Rule, v.Correction)
	}

	return []llm.Message{
		llm.System(sb.String()),
		llm.User(user.String()),
	}
}

func auditMessages(draft string, rules *governance.RuleSet) []llm.Message {
	var sb strings.Builder
	sb.WriteString("Red-line rules:\n")
	if len(rules.RedLines) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, r := range rules.RedLines {
		fmt.Fprintf(&sb, "%d. [%s, severity %d] %s\n", i+1, r.ViolationCategory, r.Severity, r.RuleContent)
	}

	sb.WriteString("\nGuaranteed standards:\n")
	guarantees := rules.Guarantees()
	if len(guarantees) == 0 {
		sb.WriteString("(none)\n")
	}
	for i, s := range guarantees {
		fmt.Fprintf(&sb, "%d. %s: %q\n", i+1, s.Term, *s.GuaranteeText)
	}

	sb.WriteString("\nDraft:\n\n")
	sb.WriteString(draft)

	return []llm.Message{
		llm.System(auditInstructions + "\n\n" + auditSpec),
		llm.User(sb.String()),
	}
}

func contextBlock(req Request) string {
	var sb strings.Builder
	sb.WriteString("Project context:\n")
	sb.WriteString(req.ProjectContext)
	if req.Situation != "" {
		sb.WriteString("\n\nSituation:\n")
		sb.WriteString(req.Situation)
	}
	return sb.String()
}

func writeVoice(sb *strings.Builder, in *Input) {
	fmt.Fprintf(sb, "\n\nAuthor mode: %s. %s", in.Request.AuthorMode, in.Request.AuthorMode.Directive())

	p := in.Persona
	if p == nil {
		return
	}

	fmt.Fprintf(sb, "\n\nBrand persona: %s. %s", p.Name, p.CoreIdentity)
	if p.Mantra != nil && *p.Mantra != "" {
		fmt.Fprintf(sb, "\nMantra: %s", *p.Mantra)
	}
	if p.Directives != nil && *p.Directives != "" {
		fmt.Fprintf(sb, "\nDirectives: %s", *p.Directives)
	}
	for _, k := range slices.Sorted(maps.Keys(p.VoiceMode)) {
		fmt.Fprintf(sb, "\nVoice %s: %v", k, p.VoiceMode[k])
	}
}

func writeStandards(sb *strings.Builder, rules *governance.RuleSet) {
	if len(rules.Standards) == 0 {
		return
	}
	sb.WriteString("\n\nApproved standards. Use guarantee text verbatim:\n")
	for _, s := range rules.Standards {
		fmt.Fprintf(sb, "- %s: %s", s.Term, s.Definition)
		if s.HasGuarantee() {
			fmt.Fprintf(sb, " Guarantee text: %q", *s.GuaranteeText)
		}
		sb.WriteString("\n")
	}
}

func writeRedLines(sb *strings.Builder, rules *governance.RuleSet) {
	if len(rules.RedLines) == 0 {
		return
	}
	sb.WriteString("\nRed lines. Never do the following:\n")
	for _, r := range rules.RedLines {
		fmt.Fprintf(sb, "- [severity %d] %s\n", r.Severity, r.RuleContent)
	}
}
