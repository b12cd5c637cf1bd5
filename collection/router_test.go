package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/ai/mock"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple word", "policy", "policy_collection"},
		{"already suffixed", "policy_collection", "policy_collection"},
		{"mixed case", "Policy Docs", "policy_docs_collection"},
		{"punctuation collapses", "HR -- Policies!!", "hr_policies_collection"},
		{"leading and trailing separators", "  --policy--  ", "policy_collection"},
		{"digits preserved", "Q3 2024 reports", "q3_2024_reports_collection"},
		{"empty input", "", "unclassified_collection"},
		{"only separators", "---", "unclassified_collection"},
		{"sentinel", "UNCLASSIFIED", "unclassified_collection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			assert.Equal(t, tt.want, got)
			// Normalization must be idempotent.
			assert.Equal(t, got, NormalizeName(got))
		})
	}
}

func TestRouteDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("new collection name is normalized", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyDocumentFunc = func(ctx context.Context, excerpt string, existing []string) (string, error) {
			return "Product Catalogs", nil
		}
		r := NewRouter(c)
		assert.Equal(t, "product_catalogs_collection", r.RouteDocument(ctx, "excerpt", nil))
	})

	t.Run("classifier error falls back", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyDocumentFunc = func(ctx context.Context, excerpt string, existing []string) (string, error) {
			return "", errors.New("model unavailable")
		}
		r := NewRouter(c)
		assert.Equal(t, Fallback, r.RouteDocument(ctx, "excerpt", nil))
	})

	t.Run("sentinel answer falls back", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyDocumentFunc = func(ctx context.Context, excerpt string, existing []string) (string, error) {
			return ai.Unclassified, nil
		}
		r := NewRouter(c)
		assert.Equal(t, Fallback, r.RouteDocument(ctx, "excerpt", nil))
	})

	t.Run("empty answer falls back", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyDocumentFunc = func(ctx context.Context, excerpt string, existing []string) (string, error) {
			return "   ", nil
		}
		r := NewRouter(c)
		assert.Equal(t, Fallback, r.RouteDocument(ctx, "excerpt", nil))
	})
}

func TestRouteQuery(t *testing.T) {
	ctx := context.Background()
	existing := []string{"policy_collection", "product_catalog_collection"}

	t.Run("existing collection accepted", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyQueryFunc = func(ctx context.Context, query string, existing []string) (string, error) {
			return "policy", nil
		}
		r := NewRouter(c)
		assert.Equal(t, "policy_collection", r.RouteQuery(ctx, "what is the NY policy", existing))
	})

	t.Run("nonexistent collection falls back", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyQueryFunc = func(ctx context.Context, query string, existing []string) (string, error) {
			return "invented_collection", nil
		}
		r := NewRouter(c)
		assert.Equal(t, Fallback, r.RouteQuery(ctx, "query", existing))
	})

	t.Run("classifier error falls back", func(t *testing.T) {
		c := mock.NewMockClassifier()
		c.ClassifyQueryFunc = func(ctx context.Context, query string, existing []string) (string, error) {
			return "", errors.New("timeout")
		}
		r := NewRouter(c)
		assert.Equal(t, Fallback, r.RouteQuery(ctx, "query", existing))
	})
}
