package ai

import "context"

// Unclassified is the sentinel reply a classifier model uses when a document
// or query does not fit any collection. Routing layers translate it into the
// configured fallback collection.
const Unclassified = "UNCLASSIFIED"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier decides which collection a document or query belongs to.
// Implementations return the model's raw single-line answer: an existing
// collection name, a suggested new name, or Unclassified. Interpretation
// (normalization, fallback, matching against known names) is the caller's
// responsibility.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// ClassifyDocument classifies a document excerpt against the existing
	// collection names. The model may suggest a brand new collection name.
	ClassifyDocument(ctx context.Context, excerpt string, existing []string) (string, error)

	// ClassifyQuery routes a user query to one of the existing collection
	// names. The model must not invent new names; anything else is treated
	// as Unclassified by the routing layer.
	ClassifyQuery(ctx context.Context, query string, existing []string) (string, error)
}

// FieldExtractor pulls flat field values out of free text.
// Implementations must be thread-safe for concurrent use.
type FieldExtractor interface {
	// ExtractFields asks the model for a flat JSON object holding values for
	// the named fields found in text. The hint describes when each field
	// applies. Malformed model output degrades to an empty map, never an
	// error: extraction failure must not fail ingestion.
	ExtractFields(ctx context.Context, text string, fields []string, hint string) (map[string]any, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, Classifier and FieldExtractor
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Classifier returns the collection classification service.
	// The returned Classifier is safe for concurrent use.
	Classifier() Classifier

	// FieldExtractor returns the metadata/filter extraction service.
	// The returned FieldExtractor is safe for concurrent use.
	FieldExtractor() FieldExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
