package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter(t *testing.T) {
	t.Run("empty input yields nil filter", func(t *testing.T) {
		assert.Nil(t, BuildFilter(nil))
		assert.Nil(t, BuildFilter(map[string]string{}))
	})

	t.Run("single field", func(t *testing.T) {
		f := BuildFilter(map[string]string{"region": "NY"})
		require.NotNil(t, f)
		assert.Equal(t, Filter{"region": map[string]any{"$eq": "NY"}}, f)
	})

	t.Run("multiple fields combine with $and", func(t *testing.T) {
		f := BuildFilter(map[string]string{"region": "NY", "year": "2024"})
		clauses, ok := f["$and"].([]any)
		require.True(t, ok)
		require.Len(t, clauses, 2)
		// Sorted field order.
		assert.Equal(t, map[string]any{"region": map[string]any{"$eq": "NY"}}, clauses[0])
		assert.Equal(t, map[string]any{"year": map[string]any{"$eq": "2024"}}, clauses[1])
	})
}

func TestFilterMatches(t *testing.T) {
	meta := map[string]string{"region": "NY", "year": "2024"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"nil filter matches everything", nil, true},
		{"matching single field", BuildFilter(map[string]string{"region": "NY"}), true},
		{"mismatching value", BuildFilter(map[string]string{"region": "CA"}), false},
		{"absent field", BuildFilter(map[string]string{"owner": "ops"}), false},
		{"all of $and match", BuildFilter(map[string]string{"region": "NY", "year": "2024"}), true},
		{"one of $and fails", BuildFilter(map[string]string{"region": "NY", "year": "2023"}), false},
		{"unsupported operator fails closed", Filter{"year": map[string]any{"$gt": "2000"}}, false},
		{"malformed clause fails closed", Filter{"region": "NY"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(meta))
		})
	}
}
