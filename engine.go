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


package docsift

import (
	"log/slog"
	"path/filepath"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/ai/openai"
	"github.com/poiesic/docsift/chunker"
	"github.com/poiesic/docsift/collection"
	"github.com/poiesic/docsift/extract"
	"github.com/poiesic/docsift/ingest"
	"github.com/poiesic/docsift/loader"
	"github.com/poiesic/docsift/schema"
	"github.com/poiesic/docsift/search"
	"github.com/poiesic/docsift/storage"
	"github.com/poiesic/docsift/storage/badger"
)

// Engine owns the storage backend, the AI provider and the schema registry,
// and builds the ingestion and search components on top of them.
type Engine struct {
	backend  *badger.Backend
	ledger   storage.Ledger
	vectors  storage.VectorRepository
	queue    storage.TaskQueue
	provider ai.Provider
	registry *schema.Registry
	staging  string
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig    *ai.Config
	schemas     []*schema.CollectionSchema
	maxAttempts int
	provider    ai.Provider
}

// WithAIConfig overrides the AI service configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) { o.aiConfig = config }
}

// WithSchemas replaces the built-in collection schemas.
func WithSchemas(schemas ...*schema.CollectionSchema) EngineOption {
	return func(o *engineOptions) { o.schemas = schemas }
}

// WithMaxDeliveryAttempts overrides the task delivery attempt budget.
func WithMaxDeliveryAttempts(n int) EngineOption {
	return func(o *engineOptions) { o.maxAttempts = n }
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// client construction. Used by tests with mock providers.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) { o.provider = provider }
}

// NewEngine opens the engine rooted at dataDir. The database lives in
// dataDir/db and staged uploads in dataDir/staging.
func NewEngine(dataDir string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:    ai.DefaultConfig(),
		schemas:     schema.Builtin(),
		maxAttempts: badger.DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(options)
	}

	registry, err := schema.NewRegistry(options.schemas...)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "db"), false)
	if err != nil {
		return nil, err
	}

	ledger := badger.NewLedger(backend)
	vectors := badger.NewVectorRepository(backend)

	queue, err := badger.NewTaskQueue(backend, options.maxAttempts)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			queue.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:  backend,
		ledger:   ledger,
		vectors:  vectors,
		queue:    queue,
		provider: provider,
		registry: registry,
		staging:  filepath.Join(dataDir, "staging"),
		logger:   slog.Default(),
	}, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.queue.Close(); err != nil {
		e.logger.Error("error closing task queue", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Ledger returns the idempotency ledger.
func (e *Engine) Ledger() storage.Ledger {
	return e.ledger
}

// VectorRepository returns the chunk store.
func (e *Engine) VectorRepository() storage.VectorRepository {
	return e.vectors
}

// TaskQueue returns the ingestion task queue.
func (e *Engine) TaskQueue() storage.TaskQueue {
	return e.queue
}

// SchemaRegistry returns the collection schema registry.
func (e *Engine) SchemaRegistry() *schema.Registry {
	return e.registry
}

// NewProducer builds a producer staging files under the engine's data
// directory.
func (e *Engine) NewProducer() (*ingest.Producer, error) {
	return ingest.NewProducer(e.queue, e.staging)
}

// NewWorker builds an ingestion worker with the full pipeline wired in.
func (e *Engine) NewWorker(opts ...chunker.ConfigOption) *ingest.Worker {
	pipeline := ingest.NewPipeline(
		loader.NewRegistry(),
		collection.NewRouter(e.provider.Classifier()),
		extract.NewExtractor(e.provider.FieldExtractor(), e.registry),
		chunker.NewDispatcher(e.provider.Embedder(), opts...),
		e.provider.Embedder(),
		e.vectors,
	)
	return ingest.NewWorker(e.queue, e.ledger, pipeline)
}

// NewSearcher builds a query-side searcher.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.vectors, e.registry, e.provider, opts...)
}
