package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func newGemini(ctx context.Context, cfg *Config) (*geminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &geminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}, nil
}

func (g *geminiClient) Provider() string {
	return ProviderGemini
}

// Close releases the underlying connection.
func (g *geminiClient) Close() error {
	return g.client.Close()
}

func (g *geminiClient) Chat(ctx context.Context, req Request) (string, error) {
	temperature := g.temperature
	if req.Temperature != nil {
		temperature = float32(*req.Temperature)
	}

	model := g.client.GenerativeModel(g.model)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature: &temperature,
	}
	if req.JSON {
		model.GenerationConfig.ResponseMIMEType = "application/json"
	}

	system, history, last, err := splitGemini(req.Messages)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", geminiError(err)
	}

	content := strings.TrimSpace(firstText(resp))
	if content == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}

	return content, nil
}

// splitGemini folds system messages into one instruction and keeps the
// remaining turns in order. The final turn must come from the user; it is
// returned separately because the chat session sends it.
func splitGemini(messages []Message) (string, []*genai.Content, string, error) {
	var (
		system []string
		turns  []*genai.Content
	)

	for _, m := range messages {
		role := "user"
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
			continue
		case RoleAssistant:
			role = "model"
		}
		turns = append(turns, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	n := len(turns)
	if n == 0 || turns[n-1].Role != "user" {
		return "", nil, "", ErrNoUserTurn
	}
	last := string(turns[n-1].Parts[0].(genai.Text))
	return strings.Join(system, "\n\n"), turns[:n-1], last, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}

func geminiError(err error) error {
	switch status.Code(err) {
	case codes.ResourceExhausted:
		return &StatusError{Provider: ProviderGemini, Status: 429, Err: err}
	case codes.Unavailable, codes.Internal, codes.DeadlineExceeded:
		return &StatusError{Provider: ProviderGemini, Status: 503, Err: err}
	case codes.InvalidArgument, codes.FailedPrecondition:
		return &StatusError{Provider: ProviderGemini, Status: 400, Err: err}
	case codes.PermissionDenied, codes.Unauthenticated:
		return &StatusError{Provider: ProviderGemini, Status: 403, Err: err}
	}
	return fmt.Errorf("gemini chat: %w", err)
}
