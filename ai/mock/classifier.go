package mock

import (
	"context"

	"github.com/poiesic/docsift/ai"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyDocumentFunc is called by ClassifyDocument if set.
	// If nil, uses default behavior.
	ClassifyDocumentFunc func(ctx context.Context, excerpt string, existing []string) (string, error)

	// ClassifyQueryFunc is called by ClassifyQuery if set.
	// If nil, uses default behavior.
	ClassifyQueryFunc func(ctx context.Context, query string, existing []string) (string, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// ClassifyDocument returns the first existing collection, or the unclassified
// sentinel when the list is empty.
func (m *MockClassifier) ClassifyDocument(ctx context.Context, excerpt string, existing []string) (string, error) {
	m.callCount++

	if m.ClassifyDocumentFunc != nil {
		return m.ClassifyDocumentFunc(ctx, excerpt, existing)
	}

	if len(existing) > 0 {
		return existing[0], nil
	}
	return ai.Unclassified, nil
}

// ClassifyQuery returns the first existing collection, or the unclassified
// sentinel when the list is empty.
func (m *MockClassifier) ClassifyQuery(ctx context.Context, query string, existing []string) (string, error) {
	m.callCount++

	if m.ClassifyQueryFunc != nil {
		return m.ClassifyQueryFunc(ctx, query, existing)
	}

	if len(existing) > 0 {
		return existing[0], nil
	}
	return ai.Unclassified, nil
}

// CallCount returns the number of times any method was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected functions.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyDocumentFunc = nil
	m.ClassifyQueryFunc = nil
}
