// Package database opens the PostgreSQL pool and ties its readiness and
// closing to a lifecycle.Coordinator.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/lifecycle"
)

// ErrNotReady wraps every Ping failure.
var ErrNotReady = errors.New("database not ready")

const defaultConnTimeout = 5 * time.Second

type System interface {
	Connection() *sql.DB
	// Ping retries with exponential backoff until the connection timeout
	// elapses.
	Ping(ctx context.Context) error
	// Ready reports the outcome of the most recent Ping.
	Ready() bool
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	pool    *sql.DB
	logger  *slog.Logger
	timeout time.Duration
	ready   atomic.Bool
}

// New configures the pool without dialing; the first connection is made by
// Ping or by the startup hook registered in Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	pool, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	timeout := cfg.ConnTimeoutDuration()
	if timeout <= 0 {
		timeout = defaultConnTimeout
	}

	return &database{
		pool:    pool,
		logger:  logger.With("system", "database", "host", cfg.Host, "db", cfg.Name),
		timeout: timeout,
	}, nil
}

func (d *database) Connection() *sql.DB { return d.pool }

func (d *database) Ready() bool { return d.ready.Load() }

func (d *database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	policy.MaxInterval = time.Second

	_, err := backoff.Retry(ctx,
		func() (struct{}, error) { return struct{}{}, d.pool.PingContext(ctx) },
		backoff.WithBackOff(policy),
		backoff.WithMaxElapsedTime(d.timeout),
		backoff.WithNotify(func(err error, wait time.Duration) {
			d.logger.Debug("ping failed, retrying", "wait", wait, "error", err)
		}),
	)

	d.ready.Store(err == nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		if err := d.Ping(lc.Context()); err != nil {
			d.logger.Error("database unreachable", "error", err)
			return
		}
		stats := d.pool.Stats()
		d.logger.Info("database connected", "max_open", stats.MaxOpenConnections)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)
		if err := d.pool.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database closed")
	})

	return nil
}
