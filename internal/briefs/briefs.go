// Package briefs exposes governed generation of executive briefs. A call loads
// the active rule snapshot, runs the engine, and hands the completed result to
// the audit log sink.
package briefs

import (
	"context"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/audits"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/governance"
)

// UserHeader carries the caller's user id into the audit log.
const UserHeader = "X-User-ID"

// Command is a generation request plus the caller identity.
type Command struct {
	engine.Request
	UserID string `json:"-"`
}

// RuleSource loads the governance snapshot for one generation.
type RuleSource interface {
	Snapshot(ctx context.Context) (*governance.RuleSet, error)
}

// OverrideSource loads the active stage instruction overrides.
type OverrideSource interface {
	Overrides(ctx context.Context) (engine.Instructions, error)
}

// Sink records completed generations.
type Sink interface {
	Record(ctx context.Context, rec audits.Record) (*audits.Entry, error)
}
