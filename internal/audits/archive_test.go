package audits

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/internal/engine"
	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/storage"
)

type memStore struct {
	blobs       map[string][]byte
	types       map[string]string
	uploadErr   error
	downloadErr error
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Upload(_ context.Context, key string, r io.Reader, contentType string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memStore) Download(_ context.Context, key string) (*storage.Blob, error) {
	if m.downloadErr != nil {
		return nil, m.downloadErr
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &storage.Blob{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   m.types[key],
		ContentLength: int64(len(data)),
	}, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	if _, ok := m.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.blobs, key)
	delete(m.types, key)
	return nil
}

func sampleEntry() *Entry {
	return &Entry{
		ID:          uuid.MustParse("6f1c2a9e-4b7d-4c1e-9a3f-2d8e5b7c1a00"),
		BuyerType:   engine.BuyerArchitect,
		PainPoint:   engine.PainSchedule,
		AuthorMode:  engine.AuthorTwain,
		FinalOutput: "# Scan Once, Build Right\n\nMeasured conditions at **LOD 350**.",
	}
}

func TestArchiveUploadsRenderedBrief(t *testing.T) {
	store := newMemStore()
	e := sampleEntry()

	key, err := archive(context.Background(), store, e)
	require.NoError(t, err)

	assert.Equal(t, "briefs/"+e.ID.String()+".html", key)
	assert.Equal(t, briefContentType, store.types[key])

	doc := string(store.blobs[key])
	assert.Contains(t, doc, "<h1>Scan Once, Build Right</h1>")
	assert.Contains(t, doc, "<strong>LOD 350</strong>")
	assert.Contains(t, doc, "<title>Executive Brief: ")
}

func TestArchiveUploadFailure(t *testing.T) {
	store := newMemStore()
	store.uploadErr = errors.New("container unavailable")

	_, err := archive(context.Background(), store, sampleEntry())
	assert.ErrorIs(t, err, store.uploadErr)
	assert.Empty(t, store.blobs)
}

func TestOpenBrief(t *testing.T) {
	ctx := context.Background()
	key := ArtifactKey(sampleEntry().ID)

	t.Run("no store", func(t *testing.T) {
		e := sampleEntry()
		e.ArtifactKey = &key
		_, err := openBrief(ctx, nil, e)
		assert.ErrorIs(t, err, ErrNoArtifact)
	})

	t.Run("no artifact key", func(t *testing.T) {
		_, err := openBrief(ctx, newMemStore(), sampleEntry())
		assert.ErrorIs(t, err, ErrNoArtifact)
	})

	t.Run("blob missing", func(t *testing.T) {
		e := sampleEntry()
		e.ArtifactKey = &key
		_, err := openBrief(ctx, newMemStore(), e)
		assert.ErrorIs(t, err, ErrNoArtifact)
	})

	t.Run("storage failure is not masked", func(t *testing.T) {
		store := newMemStore()
		store.downloadErr = errors.New("timeout")
		e := sampleEntry()
		e.ArtifactKey = &key

		_, err := openBrief(ctx, store, e)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoArtifact)
		assert.Equal(t, 500, MapHTTPStatus(err))
	})

	t.Run("archived brief", func(t *testing.T) {
		store := newMemStore()
		e := sampleEntry()
		k, err := archive(ctx, store, e)
		require.NoError(t, err)
		e.ArtifactKey = &k

		blob, err := openBrief(ctx, store, e)
		require.NoError(t, err)
		defer blob.Body.Close()

		body, err := io.ReadAll(blob.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Scan Once, Build Right")
		assert.Equal(t, briefContentType, blob.ContentType)
	})
}
