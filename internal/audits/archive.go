package audits

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/formatting"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/storage"
)

const briefContentType = "text/html; charset=utf-8"

// Store is the subset of blob storage the archive needs.
type Store interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	Download(ctx context.Context, key string) (*storage.Blob, error)
	Delete(ctx context.Context, key string) error
}

// ArtifactKey returns the blob key of an entry's archived brief.
func ArtifactKey(id uuid.UUID) string {
	return "briefs/" + id.String() + ".html"
}

func briefTitle(e *Entry) string {
	return fmt.Sprintf("Executive Brief: %s, %s", e.BuyerType.Label(), e.PainPoint.Label())
}

// archive renders the final output of e and uploads it, returning the key.
func archive(ctx context.Context, store Store, e *Entry) (string, error) {
	doc, err := formatting.RenderDocument(briefTitle(e), e.FinalOutput)
	if err != nil {
		return "", err
	}

	key := ArtifactKey(e.ID)
	if err := store.Upload(ctx, key, bytes.NewReader(doc), briefContentType); err != nil {
		return "", err
	}
	return key, nil
}
