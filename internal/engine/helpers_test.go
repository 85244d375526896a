package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

var errUnexpectedCall = errors.New("unexpected model call")

type reply struct {
	text  string
	err   error
	block bool
	hook  func()
}

// scriptedClient answers chat calls from a fixed script, in order.
type scriptedClient struct {
	mu      sync.Mutex
	replies []reply
	calls   []llm.Request
}

func script(replies ...reply) *scriptedClient {
	return &scriptedClient{replies: replies}
}

func (s *scriptedClient) Provider() string { return "scripted" }

func (s *scriptedClient) Chat(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	if len(s.replies) == 0 {
		s.mu.Unlock()
		return "", errUnexpectedCall
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	s.mu.Unlock()

	if r.hook != nil {
		r.hook()
	}
	if r.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.text, r.err
}

func (s *scriptedClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func text(s string) reply { return reply{text: s} }

func ptr[T any](v T) *T { return &v }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	timelineRule = "Never promise a fixed delivery timeline."
	pricingRule  = "Never quote prices."
)

func testRules() *governance.RuleSet {
	return governance.NewRuleSet(
		[]governance.StandardDefinition{
			{
				Term:          "Accuracy Guarantee",
				Definition:    "Registered accuracy is verified on every project.",
				GuaranteeText: ptr("LoA-40 measured accuracy on all deliverables"),
				Active:        true,
			},
		},
		[]governance.RedLineRule{
			{
				RuleContent:           pricingRule,
				ViolationCategory:     "pricing",
				CorrectionInstruction: "Remove the figure.",
				Severity:              2,
				Pattern:               ptr(`\$\s?\d`),
				Active:                true,
			},
			{
				RuleContent:           timelineRule,
				ViolationCategory:     "timeline-claim",
				CorrectionInstruction: "Use the sign-off language.",
				Severity:              3,
				Pattern:               ptr(`(?i)guarantee[ds]? delivery in \d+ days`),
				Active:                true,
			},
		},
		[]governance.Persona{
			{Name: "Twain", CoreIdentity: "Plain-spoken field expert.", Active: true},
		},
	)
}

func testRequest() engine.Request {
	return engine.Request{
		BuyerType:      engine.BuyerArchitect,
		PainPoint:      engine.PainSchedule,
		ProjectContext: "40,000 sf office renovation, occupied floors, tight schedule.",
	}
}

func newEngine(t *testing.T, client llm.Client, auditor engine.Auditor, mutate func(*engine.Config)) *engine.Engine {
	t.Helper()
	cfg := &engine.Config{StepTimeout: "2s", AuditMode: engine.AuditPattern}
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Finalize(nil))
	return engine.New(client, auditor, cfg, discard())
}
