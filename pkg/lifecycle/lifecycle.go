// Package lifecycle runs the startup and shutdown hooks of the subsystems a
// process owns and tracks whether the process is ready for traffic.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrShutdownTimeout is returned by Shutdown when hooks outlive the timeout.
	ErrShutdownTimeout = errors.New("shutdown timeout")

	// ErrShuttingDown is the cancellation cause of Context once Shutdown begins.
	ErrShuttingDown = errors.New("shutting down")
)

type ReadinessChecker interface {
	Ready() bool
}

// Coordinator owns the root context of a process. Startup hooks run as soon
// as they are registered; shutdown hooks run immediately too and are expected
// to block on Context().Done() before releasing their resources.
type Coordinator struct {
	ctx     context.Context
	stop    context.CancelCauseFunc
	booting sync.WaitGroup
	closing sync.WaitGroup
	ready   atomic.Bool
	once    sync.Once
	drained chan struct{}
}

func New() *Coordinator {
	ctx, stop := context.WithCancelCause(context.Background())
	return &Coordinator{ctx: ctx, stop: stop, drained: make(chan struct{})}
}

// Context is cancelled with ErrShuttingDown when Shutdown is called.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

func (c *Coordinator) OnStartup(fn func()) {
	c.booting.Go(fn)
}

func (c *Coordinator) OnShutdown(fn func()) {
	c.closing.Go(fn)
}

func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// WaitForStartup blocks on every startup hook. The coordinator only reports
// ready if Shutdown has not started in the meantime.
func (c *Coordinator) WaitForStartup() {
	c.booting.Wait()
	if context.Cause(c.ctx) == nil {
		c.ready.Store(true)
	}
}

// Shutdown cancels Context and waits up to timeout for the shutdown hooks.
// Repeated calls wait on the same drain.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.ready.Store(false)
	c.once.Do(func() {
		c.stop(ErrShuttingDown)
		go func() {
			c.closing.Wait()
			close(c.drained)
		}()
	})

	select {
	case <-c.drained:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%w after %v", ErrShutdownTimeout, timeout)
	}
}
