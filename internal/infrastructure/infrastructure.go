// Package infrastructure assembles the shared systems every domain package
// depends on: logging, the PostgreSQL pool, blob storage and the language
// model client. Nothing is dialed until Start.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/config"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/database"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/lifecycle"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/llm"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/storage"
)

// Infrastructure is built once per process. Storage is nil when archiving is
// not configured.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	LLM       llm.Client
}

func New(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    NewLogger(os.Stderr, cfg).With("version", cfg.Version),
	}

	var err error
	if infra.Database, err = database.New(&cfg.Database, infra.Logger); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	if infra.Storage, err = storage.New(&cfg.Storage, infra.Logger); err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	if infra.Storage == nil {
		infra.Logger.Info("storage not configured, brief archiving disabled")
	}
	if infra.LLM, err = llm.New(infra.Lifecycle.Context(), &cfg.LLM, infra.Logger); err != nil {
		return nil, fmt.Errorf("llm init failed: %w", err)
	}
	return infra, nil
}

// NewLogger writes JSON or logfmt-style text at the configured level.
func NewLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.LogFormat == config.LogFormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h)
}

type starter struct {
	name  string
	start func(*lifecycle.Coordinator) error
}

// Start hands every system its lifecycle hooks.
func (i *Infrastructure) Start() error {
	steps := []starter{{"database", i.Database.Start}}
	if i.Storage != nil {
		steps = append(steps, starter{"storage", i.Storage.Start})
	}
	for _, s := range steps {
		if err := s.start(i.Lifecycle); err != nil {
			return fmt.Errorf("%s start failed: %w", s.name, err)
		}
	}

	if c, ok := i.LLM.(io.Closer); ok {
		i.Lifecycle.OnShutdown(func() {
			<-i.Lifecycle.Context().Done()
			if err := c.Close(); err != nil {
				i.Logger.Error("llm client close failed", "error", err)
			}
		})
	}
	return nil
}
