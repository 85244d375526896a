// Package storage archives rendered briefs as blobs. The only backend is
// Azure Blob Storage; a nil System means archiving is disabled.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/lifecycle"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrEmptyKey   = errors.New("storage key must not be empty")
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
)

// Blob is a downloaded object. The caller closes Body.
type Blob struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// System is a keyed blob store bound to one container.
type System interface {
	// Start creates the container once the lifecycle starts.
	Start(lc *lifecycle.Coordinator) error
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns ErrNotFound for a missing key.
	Download(ctx context.Context, key string) (*Blob, error)
	// Delete returns ErrNotFound for a missing key.
	Delete(ctx context.Context, key string) error
}

// ValidateKey accepts slash-separated relative keys. Empty segments, leading
// slashes and any segment starting with ".." are rejected.
func ValidateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.ContainsRune(key, '\\') {
		return ErrInvalidKey
	}
	for seg := range strings.SplitSeq(key, "/") {
		if seg == "" || seg == "." || strings.HasPrefix(seg, "..") {
			return ErrInvalidKey
		}
	}
	return nil
}
