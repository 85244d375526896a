package engine

import (
	"context"
	"fmt"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

// Rewriter revises a draft so that it resolves a list of violations.
type Rewriter struct {
	client llm.Client
}

// NewRewriter creates a Rewriter backed by the given model client.
func NewRewriter(client llm.Client) *Rewriter {
	return &Rewriter{client: client}
}

// Rewrite returns a revised draft. Call errors and empty output wrap
// ErrRewriteFailed.
func (r *Rewriter) Rewrite(ctx context.Context, in *Input, draft string, violations []Violation) (string, error) {
	out, err := r.client.Chat(ctx, llm.Request{Messages: rewriteMessages(in, draft, violations)})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRewriteFailed, err)
	}

	out = cleanText(out)
	if out == "" {
		return "", fmt.Errorf("%w: %w", ErrRewriteFailed, llm.ErrEmptyResponse)
	}
	return out, nil
}
