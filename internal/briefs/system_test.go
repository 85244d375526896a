package briefs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/audits"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/briefs"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeModel returns its replies in order and records every call.
type fakeModel struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []llm.Request
}

func (f *fakeModel) Provider() string { return "fake" }

func (f *fakeModel) Chat(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

type fakeRules struct {
	rules *governance.RuleSet
	err   error
	calls int
}

func (f *fakeRules) Snapshot(context.Context) (*governance.RuleSet, error) {
	f.calls++
	return f.rules, f.err
}

type fakeOverrides struct {
	instructions engine.Instructions
	err          error
}

func (f *fakeOverrides) Overrides(context.Context) (engine.Instructions, error) {
	return f.instructions, f.err
}

type fakeSink struct {
	records   []audits.Record
	deadlines []bool
	err       error
}

func (f *fakeSink) Record(ctx context.Context, rec audits.Record) (*audits.Entry, error) {
	f.records = append(f.records, rec)
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	if f.err != nil {
		return nil, f.err
	}
	return &audits.Entry{}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func ruleSet() *governance.RuleSet {
	return governance.NewRuleSet(
		nil,
		[]governance.RedLineRule{{
			RuleContent:           "Never promise a fixed delivery timeline.",
			ViolationCategory:     "timeline-claim",
			CorrectionInstruction: "Use the sign-off language.",
			Severity:              3,
			Pattern:               ptr(`(?i)guarantee[ds]? delivery in \d+ days`),
			Active:                true,
		}},
		nil,
	)
}

func command() briefs.Command {
	return briefs.Command{
		Request: engine.Request{
			BuyerType:      engine.BuyerOwnersRep,
			PainPoint:      engine.PainRework,
			ProjectContext: "Hospital wing expansion with undocumented MEP.",
		},
		UserID: "user-7",
	}
}

type fixture struct {
	model     *fakeModel
	rules     *fakeRules
	overrides *fakeOverrides
	sink      *fakeSink
	sys       briefs.System
}

func newFixture(t *testing.T, replies ...string) *fixture {
	t.Helper()

	cfg := &engine.Config{StepTimeout: "2s", AuditMode: engine.AuditPattern}
	require.NoError(t, cfg.Finalize(nil))

	f := &fixture{
		model:     &fakeModel{replies: replies},
		rules:     &fakeRules{rules: ruleSet()},
		overrides: &fakeOverrides{},
		sink:      &fakeSink{},
	}
	eng := engine.New(f.model, engine.PatternAuditor{}, cfg, discard())
	f.sys = briefs.New(eng, f.rules, f.overrides, f.sink, discard())
	return f
}

func TestGenerateRecordsCleanResult(t *testing.T) {
	f := newFixture(t, "## Brief\nVerified existing conditions before design starts.")

	res, err := f.sys.Generate(context.Background(), command())
	require.NoError(t, err)

	assert.True(t, res.Clean)
	assert.Zero(t, res.RewriteAttempts)
	assert.Equal(t, res.InitialDraft, res.FinalOutput)
	assert.Equal(t, engine.ModeOwnerDev, res.BuyerMode)

	require.Len(t, f.sink.records, 1)
	rec := f.sink.records[0]
	assert.Same(t, res, rec.Result)
	assert.Equal(t, "user-7", rec.UserID)
	assert.Equal(t, engine.AuthorTwain, rec.Request.AuthorMode)
	assert.True(t, f.sink.deadlines[0], "audit write should be bounded")
}

func TestGenerateRewritesViolation(t *testing.T) {
	f := newFixture(t,
		"We guarantee delivery in 10 days.",
		"Delivery follows the agreed sign-off schedule.",
	)

	res, err := f.sys.Generate(context.Background(), command())
	require.NoError(t, err)

	assert.Equal(t, 1, res.RewriteAttempts)
	assert.Equal(t, 1, res.ViolationCount)
	assert.True(t, res.Clean)
	require.Len(t, f.sink.records, 1)
	assert.Equal(t, 1, f.sink.records[0].Result.ViolationCount)
}

func TestGenerateRuleStoreUnavailable(t *testing.T) {
	f := newFixture(t, "unused")
	f.rules.err = errors.New("connection refused")

	res, err := f.sys.Generate(context.Background(), command())

	assert.Nil(t, res)
	assert.ErrorIs(t, err, briefs.ErrRuleStoreUnavailable)
	assert.Empty(t, f.model.calls)
	assert.Empty(t, f.sink.records)
}

func TestGenerateShortContext(t *testing.T) {
	f := newFixture(t, "unused")
	cmd := command()
	cmd.ProjectContext = "  too short "

	res, err := f.sys.Generate(context.Background(), cmd)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrInvalidRequest)
	assert.Empty(t, f.model.calls)
	assert.Zero(t, f.rules.calls)
	assert.Empty(t, f.sink.records)
}

func TestGenerateFailedDraft(t *testing.T) {
	f := newFixture(t)
	f.model.err = errors.New("provider down")

	res, err := f.sys.Generate(context.Background(), command())

	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrGenerationFailed)
	assert.Empty(t, f.sink.records)
}

func TestGenerateAppliesOverrides(t *testing.T) {
	f := newFixture(t, "Clean brief for the reader.")
	f.overrides.instructions = engine.Instructions{
		engine.StageDraft: "Write for a hospital facilities director.",
	}

	_, err := f.sys.Generate(context.Background(), command())
	require.NoError(t, err)

	require.Len(t, f.model.calls, 1)
	system := f.model.calls[0].Messages[0].Content
	assert.True(t, strings.HasPrefix(system, "Write for a hospital facilities director."))
}

func TestGenerateIgnoresOverrideFailure(t *testing.T) {
	f := newFixture(t, "Clean brief for the reader.")
	f.overrides.err = errors.New("prompts table missing")

	_, err := f.sys.Generate(context.Background(), command())
	require.NoError(t, err)

	want, err := engine.DefaultInstructions(engine.StageDraft)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(f.model.calls[0].Messages[0].Content, want))
}

func TestGenerateSinkFailureKeepsResult(t *testing.T) {
	f := newFixture(t, "Clean brief for the reader.")
	f.sink.err = errors.New("insert failed")

	res, err := f.sys.Generate(context.Background(), command())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Len(t, f.sink.records, 1)
}
