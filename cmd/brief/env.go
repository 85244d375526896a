package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/config"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/infrastructure"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/database"
)

// env is the slice of infrastructure a single CLI invocation needs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     database.System
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := infrastructure.NewLogger(os.Stderr, cfg).With("module", "cli")

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) Close() error {
	return e.db.Connection().Close()
}

func (e *env) governance() governance.System {
	return governance.New(e.db.Connection(), e.logger, e.cfg.API.Pagination)
}

func (e *env) ping(ctx context.Context) error {
	if err := e.db.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
