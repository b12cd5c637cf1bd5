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


package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/chunker"
	"github.com/poiesic/docsift/collection"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/extract"
	"github.com/poiesic/docsift/loader"
	"github.com/poiesic/docsift/storage"
)

// excerptWords is how much of a document's leading text feeds
// classification and metadata extraction.
const excerptWords = 1000

// Result reports what one document contributed.
type Result struct {
	Collection     string
	ChunksAdded    int
	FilesProcessed int
}

// Pipeline drives a loaded file through classify, extract, chunk, embed
// and upsert.
type Pipeline struct {
	loaders   *loader.Registry
	router    *collection.Router
	extractor *extract.Extractor
	chunks    *chunker.Dispatcher
	embedder  ai.Embedder
	vectors   storage.VectorRepository
	logger    *slog.Logger
}

// NewPipeline wires the ingestion stages together.
func NewPipeline(
	loaders *loader.Registry,
	router *collection.Router,
	extractor *extract.Extractor,
	chunks *chunker.Dispatcher,
	embedder ai.Embedder,
	vectors storage.VectorRepository,
) *Pipeline {
	return &Pipeline{
		loaders:   loaders,
		router:    router,
		extractor: extractor,
		chunks:    chunks,
		embedder:  embedder,
		vectors:   vectors,
		logger:    slog.Default().With("component", "ingest-pipeline"),
	}
}

// Process ingests one staged file and returns what was added.
func (p *Pipeline) Process(ctx context.Context, path, filename string) (*Result, error) {
	units, err := p.loaders.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}

	excerpt := leadingWords(units, excerptWords)

	existing, err := p.vectors.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	target := p.router.RouteDocument(ctx, excerpt, existing)

	fields, err := p.extractor.DocumentMetadata(ctx, excerpt, target)
	if err != nil {
		return nil, fmt.Errorf("extracting metadata: %w", err)
	}

	chunks, err := p.chunks.Dispatch(ctx, units)
	if err != nil {
		return nil, fmt.Errorf("chunking %s: %w", filename, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, filename)
	}

	// Document-level fields merge additively: a chunk's own structural
	// metadata always wins over extracted business fields.
	docMeta := core.Metadata{}
	for k, v := range fields {
		docMeta[k] = v
	}
	for i := range chunks {
		chunks[i].Metadata.Merge(docMeta)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	records := make([]*core.ChunkRecord, len(chunks))
	for i, c := range chunks {
		records[i] = &core.ChunkRecord{
			Id:         core.IDFromContent(c.Content),
			Collection: target,
			Content:    c.Content,
			Metadata:   c.Metadata.StringMap(),
			Vector:     vectors[i],
		}
	}
	if err := p.vectors.UpsertChunks(ctx, records...); err != nil {
		return nil, fmt.Errorf("upserting chunks: %w", err)
	}

	p.logger.Info("ingested document",
		"filename", filename,
		"collection", target,
		"chunks", len(records))
	return &Result{
		Collection:     target,
		ChunksAdded:    len(records),
		FilesProcessed: 1,
	}, nil
}

// leadingWords joins unit content and cuts it to the first n words.
func leadingWords(units []core.Unit, n int) string {
	var b strings.Builder
	count := 0
	for _, u := range units {
		for _, word := range strings.Fields(u.Content) {
			if count >= n {
				return b.String()
			}
			if count > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(word)
			count++
		}
	}
	return b.String()
}
