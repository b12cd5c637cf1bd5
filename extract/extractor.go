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


package extract

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/schema"
)

// Extractor produces schema-conformant metadata for documents and filter
// values for queries.
type Extractor struct {
	fields   ai.FieldExtractor
	registry *schema.Registry
	logger   *slog.Logger
}

// NewExtractor creates an extractor over the given field extractor and
// schema registry.
func NewExtractor(fields ai.FieldExtractor, registry *schema.Registry) *Extractor {
	return &Extractor{
		fields:   fields,
		registry: registry,
		logger:   slog.Default().With("component", "metadata-extractor"),
	}
}

// DocumentMetadata extracts schema fields from a document excerpt routed to
// the given collection. Collections without a schema yield an empty map.
// Model failures degrade to an empty map unless the context itself is done.
func (e *Extractor) DocumentMetadata(ctx context.Context, text, collection string) (map[string]string, error) {
	return e.extract(ctx, text, collection)
}

// QueryFilter extracts filter values from a search query and builds the
// metadata predicate for it. Queries that mention no schema fields yield a
// nil filter, meaning the search runs unfiltered.
func (e *Extractor) QueryFilter(ctx context.Context, query, collection string) (schema.Filter, error) {
	values, err := e.extract(ctx, query, collection)
	if err != nil {
		return nil, err
	}
	return schema.BuildFilter(values), nil
}

func (e *Extractor) extract(ctx context.Context, text, collection string) (map[string]string, error) {
	s := e.registry.Lookup(collection)
	if s.Empty() {
		return map[string]string{}, nil
	}

	raw, err := e.fields.ExtractFields(ctx, text, s.FieldNames(), s.Hint)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Warn("field extraction failed, continuing without metadata",
			"collection", collection,
			"err", err)
		return map[string]string{}, nil
	}

	out := make(map[string]string, len(raw))
	for key, value := range raw {
		fieldType, known := s.Fields[key]
		if !known {
			continue
		}
		canonical, ok := coerce(fieldType, value)
		if !ok {
			e.logger.Debug("dropping uncoercible field value",
				"field", key,
				"type", fieldType)
			continue
		}
		out[key] = s.NormalizeValue(key, canonical)
	}
	return out, nil
}

// coerce renders a raw model value as the canonical string for its declared
// type. Returns false for values that cannot represent the type, including
// empty strings.
func coerce(ft schema.FieldType, value any) (string, bool) {
	switch ft {
	case schema.FieldNumber:
		switch t := value.(type) {
		case float64, float32, int, int64:
			return core.CanonicalValue(t), true
		case string:
			trimmed := strings.TrimSpace(t)
			if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return trimmed, true
			}
			return "", false
		default:
			return "", false
		}
	case schema.FieldString:
		switch t := value.(type) {
		case string:
			trimmed := strings.TrimSpace(t)
			return trimmed, trimmed != ""
		case bool, float64, float32, int, int64:
			return core.CanonicalValue(t), true
		default:
			return "", false
		}
	default:
		return "", false
	}
}
