package audits

import (
	"context"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/pagination"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/storage"
)

// System defines the public contract for audit log operations.
type System interface {
	Handler() *Handler

	// Record persists a completed generation and archives its brief when
	// storage is configured. Archive failures are logged, not returned.
	Record(ctx context.Context, rec Record) (*Entry, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	// Brief returns the archived HTML brief of an entry. The caller must close the body.
	Brief(ctx context.Context, id uuid.UUID) (*storage.Blob, error)
}
