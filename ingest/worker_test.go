package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/docsift/ai/mock"
	"github.com/poiesic/docsift/chunker"
	"github.com/poiesic/docsift/collection"
	"github.com/poiesic/docsift/extract"
	"github.com/poiesic/docsift/loader"
	"github.com/poiesic/docsift/schema"
	"github.com/poiesic/docsift/storage"
	storagebadger "github.com/poiesic/docsift/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	producer *Producer
	worker   *Worker
	vectors  storage.VectorRepository
	provider *mock.MockProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ledger, vectors, queue, backend, err := storagebadger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() {
		queue.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider().(*mock.MockProvider)
	registry, err := schema.NewRegistry(schema.Builtin()...)
	require.NoError(t, err)

	pipeline := NewPipeline(
		loader.NewRegistry(),
		collection.NewRouter(provider.Classifier()),
		extract.NewExtractor(provider.FieldExtractor(), registry),
		chunker.NewDispatcher(provider.Embedder()),
		provider.Embedder(),
		vectors,
	)

	producer, err := NewProducer(queue, filepath.Join(t.TempDir(), "staging"))
	require.NoError(t, err)

	return &fixture{
		producer: producer,
		worker:   NewWorker(queue, ledger, pipeline),
		vectors:  vectors,
		provider: provider,
	}
}

func TestIngestEndToEnd(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// Empty collection set: the document routes to a brand new collection.
	fx.provider.GetMockClassifier().ClassifyDocumentFunc = func(ctx context.Context, excerpt string, existing []string) (string, error) {
		assert.Empty(t, existing)
		return "travel policy", nil
	}

	content := strings.Repeat("Employees may book refundable fares for work travel. ", 30)
	task, err := fx.producer.Submit(ctx, strings.NewReader(content), "travel.txt")
	require.NoError(t, err)

	result, err := fx.worker.RunOnce(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, result.FilesProcessed)
	assert.Positive(t, result.ChunksAdded)
	assert.Equal(t, "travel_policy_collection", result.Collection)

	collections, err := fx.vectors.ListCollections(ctx)
	require.NoError(t, err)
	assert.Contains(t, collections, "travel_policy_collection")

	// Terminal success deletes the staged file.
	_, err = os.Stat(task.FilePath)
	assert.True(t, os.IsNotExist(err))

	// Queue fully drained.
	_, err = fx.worker.RunOnce(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)
}

func TestDuplicateContentShortCircuits(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	content := "a document body that will be submitted twice"

	_, err := fx.producer.Submit(ctx, strings.NewReader(content), "first.txt")
	require.NoError(t, err)
	first, err := fx.worker.RunOnce(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	embedCalls := fx.provider.GetMockEmbedder().CallCount()

	// Same bytes under a different name: fingerprint matches, pipeline
	// never runs, staged file is removed.
	task, err := fx.producer.Submit(ctx, strings.NewReader(content), "second.txt")
	require.NoError(t, err)
	second, err := fx.worker.RunOnce(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, 1, second.FilesProcessed)
	assert.Zero(t, second.ChunksAdded)
	assert.Equal(t, embedCalls, fx.provider.GetMockEmbedder().CallCount())

	_, err = os.Stat(task.FilePath)
	assert.True(t, os.IsNotExist(err))
}

func TestPipelineFailureRejectsTask(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	task, err := fx.producer.Submit(ctx, strings.NewReader("some content"), "doc.txt")
	require.NoError(t, err)

	result, err := fx.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Nil(t, result, "failed task yields no result")

	// Rejected, so the task comes back with its attempt counted and the
	// staged file intact for the retry.
	redelivered, err := fx.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Nil(t, redelivered)

	_, statErr := os.Stat(task.FilePath)
	assert.NoError(t, statErr, "staged file survives failed attempts")
}

func TestUnsupportedExtensionRejectedAtIntake(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.producer.Submit(ctx, strings.NewReader("binary"), "archive.zip")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	// Nothing was staged or queued.
	_, err = fx.worker.RunOnce(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)
}
