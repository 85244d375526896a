package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

// Generator produces the first draft of a brief with one model call.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator backed by the given model client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Draft generates the initial draft. Call errors and empty output wrap
// ErrGenerationFailed.
func (g *Generator) Draft(ctx context.Context, in *Input) (string, error) {
	out, err := g.client.Chat(ctx, llm.Request{Messages: draftMessages(in)})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	out = cleanText(out)
	if out == "" {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, llm.ErrEmptyResponse)
	}
	return out, nil
}

// cleanText trims whitespace and unwraps a response the model fenced
// despite instructions.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " \t") {
		s = s[nl+1:]
	}
	return strings.TrimSpace(s)
}
