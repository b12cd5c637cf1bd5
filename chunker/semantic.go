package chunker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/poiesic/docsift/core"
)

// splitSemantic cuts prose at topic shifts: sentences are embedded, the
// cosine distance between each adjacent pair is computed, and a cut is made
// wherever the distance exceeds the configured percentile of the observed
// distribution. The breakpoint is per document; documents with uniform
// topical variance produce few cuts, varied ones produce many.
func (d *Dispatcher) splitSemantic(ctx context.Context, units []core.Unit) ([]core.Chunk, error) {
	var chunks []core.Chunk
	for _, u := range units {
		pieces, err := d.semanticPieces(ctx, u.Content)
		if err != nil {
			return nil, err
		}
		for _, piece := range pieces {
			chunks = append(chunks, core.NewUnit(piece, u.Metadata.Clone()))
		}
	}
	return chunks, nil
}

func (d *Dispatcher) semanticPieces(ctx context.Context, text string) ([]string, error) {
	sentences := splitSentences(text)
	if len(sentences) < 3 {
		return d.splitRecursive(text)
	}

	vectors, err := d.embedder.EmbedTexts(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("embedding sentences: %w", err)
	}
	if len(vectors) != len(sentences) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d sentences", len(vectors), len(sentences))
	}

	distances := make([]float64, len(sentences)-1)
	for i := range distances {
		distances[i] = cosineDistance(vectors[i], vectors[i+1])
	}
	breakpoint := percentile(distances, d.config.BreakpointPercentile)

	var pieces []string
	var current []string
	for i, sentence := range sentences {
		current = append(current, sentence)
		if i < len(distances) && distances[i] > breakpoint {
			pieces = append(pieces, strings.Join(current, " "))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		pieces = append(pieces, strings.Join(current, " "))
	}
	return pieces, nil
}

// splitSentences breaks text on sentence-terminating punctuation followed
// by whitespace. Good enough for breakpoint detection; exact linguistic
// boundaries are not required.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// cosineDistance is 1 - cosine similarity. Zero vectors are treated as
// maximally distant.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// percentile returns the p-th percentile of values using nearest-rank.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
