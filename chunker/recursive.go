package chunker

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"
)

// proseSeparators is the split priority for recursive character splitting:
// paragraph break, line break, sentence boundary, word boundary, anywhere.
var proseSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// splitRecursive splits text into chunks of at most ChunkSize characters
// with ChunkOverlap carried between adjacent chunks.
func (d *Dispatcher) splitRecursive(text string) ([]string, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(d.config.ChunkSize),
		textsplitter.WithChunkOverlap(d.config.ChunkOverlap),
		textsplitter.WithSeparators(proseSeparators),
	)

	pieces, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("recursive split: %w", err)
	}
	return pieces, nil
}
