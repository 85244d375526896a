package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/audits"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/briefs"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/prompts"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
)

var generateFlags struct {
	buyer     string
	pain      string
	mode      string
	context   string
	situation string
	user      string
	noRecord  bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the draft, audit, and rewrite pipeline once",
	Long: `Generate one executive brief and print the result JSON.

Examples:
  brief generate --buyer BP5 --pain Rework_RFI --mode Twain \
    --context "Adaptive reuse of a 1920s warehouse into lab space"

  # Skip the audit log
  brief generate --buyer A_Principal --pain Terms_Risk --context "..." --no-record`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.buyer, "buyer", "", "buyer type code (e.g. BP5, A_Principal)")
	f.StringVar(&generateFlags.pain, "pain", "", "pain point (Rework_RFI, ScheduleVolatility, Inconsistency, Terms_Risk)")
	f.StringVar(&generateFlags.mode, "mode", string(engine.DefaultAuthorMode), "author mode (Twain, Fuller)")
	f.StringVar(&generateFlags.context, "context", "", "project context")
	f.StringVar(&generateFlags.situation, "situation", "", "optional situation")
	f.StringVar(&generateFlags.user, "user", "", "user id recorded in the audit log")
	f.BoolVar(&generateFlags.noRecord, "no-record", false, "do not write an audit log entry")
	generateCmd.MarkFlagRequired("buyer")
	generateCmd.MarkFlagRequired("pain")
	generateCmd.MarkFlagRequired("context")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if err := e.ping(ctx); err != nil {
		return err
	}

	client, err := llm.New(ctx, &e.cfg.LLM, e.logger)
	if err != nil {
		return fmt.Errorf("llm init failed: %w", err)
	}
	if c, ok := client.(interface{ Close() error }); ok {
		defer c.Close()
	}

	auditor, err := engine.NewAuditor(e.cfg.Engine.AuditMode, client)
	if err != nil {
		return err
	}
	eng := engine.New(client, auditor, &e.cfg.Engine, e.logger)

	var sink briefs.Sink
	if !generateFlags.noRecord {
		sink = audits.New(e.db.Connection(), nil, e.logger, e.cfg.API.Pagination)
	}

	sys := briefs.New(
		eng,
		e.governance(),
		prompts.New(e.db.Connection(), e.logger, e.cfg.API.Pagination),
		sink,
		e.logger,
	)

	result, err := sys.Generate(ctx, briefs.Command{
		Request: engine.Request{
			BuyerType:      engine.BuyerType(generateFlags.buyer),
			PainPoint:      engine.PainPoint(generateFlags.pain),
			AuthorMode:     engine.AuthorMode(generateFlags.mode),
			ProjectContext: generateFlags.context,
			Situation:      generateFlags.situation,
		},
		UserID: generateFlags.user,
	})
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), result)
}
