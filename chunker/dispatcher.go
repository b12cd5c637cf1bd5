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


package chunker

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
)

// Dispatcher routes units to splitting strategies by structural metadata.
type Dispatcher struct {
	config   *Config
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher. A nil embedder disables topic-boundary
// splitting; prose then always uses recursive character splitting.
func NewDispatcher(embedder ai.Embedder, opts ...ConfigOption) *Dispatcher {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &Dispatcher{
		config:   config,
		embedder: embedder,
		logger:   slog.Default().With("component", "chunker-dispatcher"),
	}
}

// Dispatch classifies every unit, applies its strategy, and returns the
// chunks grouped as tables, slides, headings, sections, prose. Input order
// within each group is preserved.
func (d *Dispatcher) Dispatch(ctx context.Context, units []core.Unit) ([]core.Chunk, error) {
	var tables, slides, headings, sectioned, prose []core.Unit

	for _, u := range units {
		switch {
		case u.Metadata.Bool(core.MetaIsTable):
			tables = append(tables, u)
		case u.Metadata.Has(core.MetaSlide):
			slides = append(slides, u)
		case u.Metadata.Bool(core.MetaIsHeading):
			headings = append(headings, u)
		case u.Metadata.Has(core.MetaSection):
			sectioned = append(sectioned, u)
		default:
			prose = append(prose, u)
		}
	}

	var chunks []core.Chunk

	for _, u := range tables {
		chunks = append(chunks, truncateRow(u, d.config.MaxRowChars))
	}

	// Slides and headings are atomic.
	chunks = append(chunks, slides...)
	chunks = append(chunks, headings...)

	sectionChunks, err := d.splitSections(sectioned)
	if err != nil {
		return nil, err
	}
	chunks = append(chunks, sectionChunks...)

	proseChunks, err := d.splitProse(ctx, prose)
	if err != nil {
		return nil, err
	}
	chunks = append(chunks, proseChunks...)

	d.logger.Debug("dispatched units",
		"units", len(units),
		"chunks", len(chunks),
		"tables", len(tables),
		"slides", len(slides),
		"headings", len(headings))
	return chunks, nil
}

// splitProse picks the prose strategy: topic-boundary when the aggregate
// size clears the threshold and an embedder is available, recursive
// otherwise.
func (d *Dispatcher) splitProse(ctx context.Context, units []core.Unit) ([]core.Chunk, error) {
	if len(units) == 0 {
		return nil, nil
	}

	total := 0
	for _, u := range units {
		total += len(u.Content)
	}

	if total > d.config.SemanticThreshold && d.embedder != nil {
		chunks, err := d.splitSemantic(ctx, units)
		if err == nil {
			return chunks, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		d.logger.Warn("topic-boundary splitting failed, falling back to recursive", "err", err)
	}

	var chunks []core.Chunk
	for _, u := range units {
		pieces, err := d.splitRecursive(u.Content)
		if err != nil {
			return nil, err
		}
		for _, piece := range pieces {
			chunks = append(chunks, core.NewUnit(piece, u.Metadata.Clone()))
		}
	}
	return chunks, nil
}

// truncateRow enforces the row length cap without ever splitting a row.
// The cut backs off to a rune boundary so the chunk stays valid UTF-8.
func truncateRow(u core.Unit, maxChars int) core.Chunk {
	if len(u.Content) <= maxChars {
		return u
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(u.Content[cut]) {
		cut--
	}
	return core.NewUnit(u.Content[:cut]+"...", u.Metadata.Clone())
}
