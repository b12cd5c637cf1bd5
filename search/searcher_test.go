package search

import (
	"context"
	"testing"

	"github.com/poiesic/docsift/ai/mock"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/schema"
	storagebadger "github.com/poiesic/docsift/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T) (*Searcher, *mock.MockProvider) {
	t.Helper()

	backend, err := storagebadger.OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	vectors := storagebadger.NewVectorRepository(backend)
	provider := mock.NewMockProvider().(*mock.MockProvider)

	registry, err := schema.NewRegistry(schema.Builtin()...)
	require.NoError(t, err)

	// Fixed query vector so similarity against seeded records is exact.
	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	seed := []*core.ChunkRecord{
		{Collection: "policy_collection", Content: "ny travel policy", Vector: []float32{1, 0},
			Metadata: map[string]string{"region": "NY"}},
		{Collection: "policy_collection", Content: "ca travel policy", Vector: []float32{0.9, 0.1},
			Metadata: map[string]string{"region": "CA"}},
		{Collection: "unclassified_collection", Content: "misc note", Vector: []float32{1, 0},
			Metadata: map[string]string{}},
	}
	require.NoError(t, vectors.UpsertChunks(context.Background(), seed...))

	s, err := NewSearcher(vectors, registry, provider)
	require.NoError(t, err)
	return s, provider
}

func TestQueryRoutesAndFilters(t *testing.T) {
	s, provider := newTestSearcher(t)
	ctx := context.Background()

	provider.GetMockClassifier().ClassifyQueryFunc = func(ctx context.Context, query string, existing []string) (string, error) {
		return "policy_collection", nil
	}
	provider.GetMockExtractor().ExtractFieldsFunc = func(ctx context.Context, text string, fields []string, hint string) (map[string]any, error) {
		return map[string]any{"region": "New York"}, nil
	}

	resp, err := s.Query(ctx, "travel policy for New York", 10)
	require.NoError(t, err)

	assert.Equal(t, "policy_collection", resp.Collection)
	require.NotNil(t, resp.Filter, "normalized value feeds the filter")
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, "ny travel policy", resp.Hits[0].Record.Content)
}

func TestQueryWithoutFilterValues(t *testing.T) {
	s, provider := newTestSearcher(t)
	ctx := context.Background()

	provider.GetMockClassifier().ClassifyQueryFunc = func(ctx context.Context, query string, existing []string) (string, error) {
		return "policy_collection", nil
	}

	resp, err := s.Query(ctx, "what is the travel policy", 10)
	require.NoError(t, err)

	assert.Nil(t, resp.Filter)
	assert.Len(t, resp.Hits, 2, "unfiltered search sees the whole collection")
}

func TestQueryUnroutableFallsBack(t *testing.T) {
	s, provider := newTestSearcher(t)
	ctx := context.Background()

	provider.GetMockClassifier().ClassifyQueryFunc = func(ctx context.Context, query string, existing []string) (string, error) {
		return "some_invented_collection", nil
	}

	resp, err := s.Query(ctx, "anything", 10)
	require.NoError(t, err)

	assert.Equal(t, "unclassified_collection", resp.Collection)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, "misc note", resp.Hits[0].Record.Content)
}

func TestQueryValidation(t *testing.T) {
	s, _ := newTestSearcher(t)

	_, err := s.Query(context.Background(), "   ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestNewSearcherValidation(t *testing.T) {
	provider := mock.NewMockProvider()
	registry, err := schema.NewRegistry()
	require.NoError(t, err)

	_, err = NewSearcher(nil, registry, provider)
	assert.ErrorIs(t, err, ErrVectorRepositoryRequired)

	backend, err := storagebadger.OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()
	vectors := storagebadger.NewVectorRepository(backend)

	_, err = NewSearcher(vectors, nil, provider)
	assert.ErrorIs(t, err, ErrSchemaRegistryRequired)

	_, err = NewSearcher(vectors, registry, nil)
	assert.ErrorIs(t, err, ErrAIProviderRequired)
}
