package badger

import (
	"context"
	"testing"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/schema"
	"github.com/poiesic/docsift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVectors(t *testing.T) storage.VectorRepository {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewVectorRepository(backend)
}

func chunkRecord(collection, content string, vector []float32, metadata map[string]string) *core.ChunkRecord {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &core.ChunkRecord{
		Collection: collection,
		Content:    content,
		Metadata:   metadata,
		Vector:     vector,
	}
}

func TestUpsertAndFindSimilar(t *testing.T) {
	repo := newTestVectors(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChunks(ctx,
		chunkRecord("policy_collection", "close match", []float32{1, 0, 0}, nil),
		chunkRecord("policy_collection", "far match", []float32{0, 1, 0}, nil),
		chunkRecord("other_collection", "wrong collection", []float32{1, 0, 0}, nil),
	))

	results, err := repo.FindSimilar(ctx, "policy_collection", []float32{1, 0, 0}, nil, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, results, 1, "similarity floor and collection scoping both apply")
	assert.Equal(t, "close match", results[0].Record.Content)
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-6)
}

func TestFindSimilarOrderingAndLimit(t *testing.T) {
	repo := newTestVectors(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChunks(ctx,
		chunkRecord("c_collection", "best", []float32{1, 0}, nil),
		chunkRecord("c_collection", "good", []float32{0.9, 0.4}, nil),
		chunkRecord("c_collection", "fair", []float32{0.7, 0.7}, nil),
	))

	results, err := repo.FindSimilar(ctx, "c_collection", []float32{1, 0}, nil, 0, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "best", results[0].Record.Content)
	assert.Equal(t, "good", results[1].Record.Content)
}

func TestFindSimilarWithFilter(t *testing.T) {
	repo := newTestVectors(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChunks(ctx,
		chunkRecord("p_collection", "ny doc", []float32{1, 0}, map[string]string{"region": "NY"}),
		chunkRecord("p_collection", "ca doc", []float32{1, 0}, map[string]string{"region": "CA"}),
	))

	filter := schema.BuildFilter(map[string]string{"region": "NY"})
	results, err := repo.FindSimilar(ctx, "p_collection", []float32{1, 0}, filter, 0, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ny doc", results[0].Record.Content)
}

func TestUpsertIsIdempotentByContent(t *testing.T) {
	repo := newTestVectors(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChunks(ctx,
		chunkRecord("c_collection", "identical text", []float32{1, 0}, nil)))
	require.NoError(t, repo.UpsertChunks(ctx,
		chunkRecord("c_collection", "identical text", []float32{1, 0}, nil)))

	results, err := repo.FindSimilar(ctx, "c_collection", []float32{1, 0}, nil, 0, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1, "same content upserts in place")
}

func TestListAndDeleteCollections(t *testing.T) {
	repo := newTestVectors(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertChunks(ctx,
		chunkRecord("a_collection", "one", []float32{1}, nil),
		chunkRecord("b_collection", "two", []float32{1}, nil),
	))

	names, err := repo.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_collection", "b_collection"}, names)

	require.NoError(t, repo.DeleteCollection(ctx, "a_collection"))

	names, err = repo.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b_collection"}, names)
}
