package chunker

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/poiesic/docsift/ai/mock"
	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRoutingAndOrder(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil)

	units := []core.Unit{
		core.NewUnit("prose paragraph", core.Metadata{}),
		core.NewUnit("Intro heading", core.Metadata{core.MetaIsHeading: true, core.MetaSection: "Intro"}),
		core.NewUnit("slide one text", core.Metadata{core.MetaSlide: 1}),
		core.NewUnit("a | 1", core.Metadata{core.MetaIsTable: true}),
		core.NewUnit("body in section", core.Metadata{core.MetaSection: "Intro"}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	// Group order: tables, slides, headings, sections, prose.
	assert.Equal(t, "a | 1", chunks[0].Content)
	assert.Equal(t, "slide one text", chunks[1].Content)
	assert.Equal(t, "Intro heading", chunks[2].Content)
	assert.Equal(t, "body in section", chunks[3].Content)
	assert.Equal(t, "prose paragraph", chunks[4].Content)
}

func TestTableRowsNeverSplit(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil)

	long := strings.Repeat("x", 5000)
	units := []core.Unit{
		core.NewUnit(long, core.Metadata{core.MetaIsTable: true}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	require.Len(t, chunks, 1, "a row is one chunk regardless of length")
	assert.Len(t, chunks[0].Content, 2003)
	assert.True(t, strings.HasSuffix(chunks[0].Content, "..."))
}

func TestTruncatedRowStaysValidUTF8(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil)

	// 700 three-byte runes: the 2000-byte cap lands mid-rune.
	row := strings.Repeat("€", 700)
	units := []core.Unit{
		core.NewUnit(row, core.Metadata{core.MetaIsTable: true}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.True(t, utf8.ValidString(chunks[0].Content))
	assert.True(t, strings.HasSuffix(chunks[0].Content, "..."))
	assert.LessOrEqual(t, len(chunks[0].Content), 2003)
}

func TestShortTableRowUntouched(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil)

	units := []core.Unit{
		core.NewUnit("name: Widget | price: 9.99", core.Metadata{core.MetaIsTable: true}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "name: Widget | price: 9.99", chunks[0].Content)
}

func TestSlidesAreAtomic(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil)

	units := []core.Unit{
		core.NewUnit(strings.Repeat("slide content. ", 500), core.Metadata{core.MetaSlide: 1}),
		core.NewUnit("short slide", core.Metadata{core.MetaSlide: 2}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	assert.Len(t, chunks, len(units), "chunk count equals slide count")
}

func TestHeadingsPassThrough(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil)

	unit := core.NewUnit("Chapter One", core.Metadata{
		core.MetaIsHeading:    true,
		core.MetaHeadingLevel: 1,
		core.MetaSection:      "Chapter One",
	})

	chunks, err := d.Dispatch(ctx, []core.Unit{unit})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, unit.Content, chunks[0].Content)
	assert.Equal(t, unit.Metadata, chunks[0].Metadata)
}

func TestSectionBoundedSplitting(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher(nil, WithChunkSize(100), WithChunkOverlap(20))

	units := []core.Unit{
		core.NewUnit(strings.Repeat("alpha section sentence. ", 20), core.Metadata{core.MetaSection: "Alpha"}),
		core.NewUnit(strings.Repeat("beta section sentence. ", 20), core.Metadata{core.MetaSection: "Beta"}),
		core.NewUnit("more alpha text.", core.Metadata{core.MetaSection: "Alpha"}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// First-seen section order: all Alpha chunks precede all Beta chunks.
	seenBeta := false
	for _, c := range chunks {
		section := c.Metadata.String(core.MetaSection)
		switch section {
		case "Beta":
			seenBeta = true
		case "Alpha":
			assert.False(t, seenBeta, "Alpha chunk after Beta chunks")
		}
		assert.LessOrEqual(t, len(c.Content), 100)
	}
}

func TestProseBelowThresholdUsesRecursive(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	d := NewDispatcher(embedder)

	units := []core.Unit{
		core.NewUnit("short prose that stays under the semantic threshold.", core.Metadata{}),
	}

	chunks, err := d.Dispatch(ctx, units)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Zero(t, embedder.CallCount(), "embedder not consulted below threshold")
}

func TestLargeProseUsesSemanticSplitting(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	d := NewDispatcher(embedder)

	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("This is a long document about many shifting topics and themes. ")
	}

	chunks, err := d.Dispatch(ctx, []core.Unit{core.NewUnit(b.String(), core.Metadata{})})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	assert.Positive(t, embedder.CallCount(), "embedder consulted above threshold")
}

func TestSemanticFailureFallsBackToRecursive(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, assert.AnError
	}
	d := NewDispatcher(embedder)

	text := strings.Repeat("A sentence about something. ", 200)
	chunks, err := d.Dispatch(ctx, []core.Unit{core.NewUnit(text, core.Metadata{})})
	require.NoError(t, err)
	assert.NotEmpty(t, chunks, "fallback still chunks the document")
}

func TestEmptyInput(t *testing.T) {
	d := NewDispatcher(nil)
	chunks, err := d.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
