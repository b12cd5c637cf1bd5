// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Classifier,
// ai.FieldExtractor, and ai.Provider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	embeddings, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockClassifier()
//	mockClassifier.ClassifyDocumentFunc = func(ctx context.Context, excerpt string, existing []string) (string, error) {
//	    return "policy_collection", nil
//	}
//
//	// Check call counts
//	count := mockClassifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockClassifier: Returns the first existing collection, or the
//     unclassified sentinel when none exist
//   - MockFieldExtractor: Returns an empty field map
//   - MockProvider: Aggregates the three mocks
package mock
