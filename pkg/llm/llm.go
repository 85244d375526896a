// Package llm provides a provider-neutral chat client for language model calls.
// Providers are wrapped with client-side rate limiting and bounded exponential
// retry on transient failures.
package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request describes a single chat call.
// Temperature overrides the configured default when non-nil.
// JSON asks the provider for a JSON object response.
type Request struct {
	Messages    []Message
	Temperature *float64
	JSON        bool
}

// Client performs chat calls against a language model provider.
type Client interface {
	Chat(ctx context.Context, req Request) (string, error)
	Provider() string
}

// System creates a system-role message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User creates a user-role message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant creates an assistant-role message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// New creates the configured provider client wrapped with rate limiting and retry.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Client, error) {
	var (
		provider Client
		err      error
	)

	switch cfg.Provider {
	case ProviderOpenAI:
		provider, err = newOpenAI(cfg)
	case ProviderGemini:
		provider, err = newGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	return NewResilient(provider, cfg, logger), nil
}
