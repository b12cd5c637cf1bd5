package mock

import "context"

// MockFieldExtractor is a test double for ai.FieldExtractor.
// It allows custom behavior injection via function fields.
type MockFieldExtractor struct {
	// ExtractFieldsFunc is called by ExtractFields if set.
	// If nil, uses default behavior (empty field map).
	ExtractFieldsFunc func(ctx context.Context, text string, fields []string, hint string) (map[string]any, error)

	callCount int
}

// NewMockFieldExtractor creates a mock field extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockFieldExtractor() *MockFieldExtractor {
	return &MockFieldExtractor{}
}

// ExtractFields returns an empty field map by default.
func (m *MockFieldExtractor) ExtractFields(ctx context.Context, text string, fields []string, hint string) (map[string]any, error) {
	m.callCount++

	if m.ExtractFieldsFunc != nil {
		return m.ExtractFieldsFunc(ctx, text, fields, hint)
	}

	return map[string]any{}, nil
}

// CallCount returns the number of times ExtractFields was called.
func (m *MockFieldExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected function.
func (m *MockFieldExtractor) Reset() {
	m.callCount = 0
	m.ExtractFieldsFunc = nil
}
