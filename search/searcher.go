// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/collection"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/extract"
	"github.com/poiesic/docsift/schema"
	"github.com/poiesic/docsift/storage"
)

const defaultMinSimilarity = 0.30

// Response is one answered query.
type Response struct {
	// Collection is the collection that was searched.
	Collection string

	// Filter is the metadata predicate applied, nil when unfiltered.
	Filter schema.Filter

	// Hits are the matching chunks, highest score first.
	Hits []*core.SearchResult
}

// Searcher answers queries against the ingested collections.
type Searcher struct {
	vectors       storage.VectorRepository
	router        *collection.Router
	extractor     *extract.Extractor
	embedder      ai.Embedder
	minSimilarity float32
	logger        *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinSimilarity sets the similarity floor below which hits are dropped.
func WithMinSimilarity(min float32) Option {
	return func(s *Searcher) error {
		s.minSimilarity = min
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	vectors storage.VectorRepository,
	registry *schema.Registry,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if registry == nil {
		return nil, ErrSchemaRegistryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		vectors:       vectors,
		router:        collection.NewRouter(provider.Classifier()),
		extractor:     extract.NewExtractor(provider.FieldExtractor(), registry),
		embedder:      provider.Embedder(),
		minSimilarity: defaultMinSimilarity,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Query routes, filters, embeds and searches. Returns up to maxHits
// results ranked by similarity.
func (s *Searcher) Query(ctx context.Context, query string, maxHits int) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	existing, err := s.vectors.ListCollections(ctx)
	if err != nil {
		s.logger.Error("error listing collections", "err", err)
		return nil, err
	}

	target := s.router.RouteQuery(ctx, query, existing)

	filter, err := s.extractor.QueryFilter(ctx, query, target)
	if err != nil {
		// Filter construction never blocks a search.
		s.logger.Warn("filter extraction failed, searching unfiltered", "err", err)
		filter = nil
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	hits, err := s.vectors.FindSimilar(ctx, target, embedding, filter, s.minSimilarity, maxHits)
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}

	s.logger.Debug("query answered",
		"collection", target,
		"filtered", filter != nil,
		"hits", len(hits))
	return &Response{
		Collection: target,
		Filter:     filter,
		Hits:       hits,
	}, nil
}
