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


package schema

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType names the value type a schema field accepts.
type FieldType string

const (
	// FieldString accepts free-text values.
	FieldString FieldType = "string"
	// FieldNumber accepts integer or floating point values.
	FieldNumber FieldType = "number"
)

// CollectionSchema declares the metadata fields to extract for documents in
// one collection.
type CollectionSchema struct {
	// Name is the normalized collection name this schema applies to.
	Name string

	// Fields maps field names to their expected types.
	Fields map[string]FieldType

	// Hint is optional free text forwarded to the extraction model to
	// steer field extraction ("dates are fiscal years, not calendar years").
	Hint string

	// Normalizers maps a field name to a raw-value -> canonical-value table.
	// Lookup is case-insensitive on the raw value.
	Normalizers map[string]map[string]string
}

// Empty reports whether the schema declares no fields.
func (s *CollectionSchema) Empty() bool {
	return len(s.Fields) == 0
}

// FieldNames returns the schema's field names in sorted order.
func (s *CollectionSchema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeValue maps a raw field value onto its canonical form. Values
// without a normalizer entry pass through unchanged.
func (s *CollectionSchema) NormalizeValue(field, value string) string {
	table, ok := s.Normalizers[field]
	if !ok {
		return value
	}
	if canonical, ok := table[strings.ToLower(strings.TrimSpace(value))]; ok {
		return canonical
	}
	return value
}

// validate checks the schema for structural problems.
func (s *CollectionSchema) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	for field, ft := range s.Fields {
		if ft != FieldString && ft != FieldNumber {
			return fmt.Errorf("field %q: %w: %q", field, ErrInvalidFieldType, ft)
		}
	}
	return nil
}

// emptySchema is returned for collections without a registered schema.
// Shared instance; callers must not mutate it.
var emptySchema = &CollectionSchema{Fields: map[string]FieldType{}}

// Registry is a read-only collection name to schema lookup table.
// Build it once with NewRegistry; it is safe for concurrent use.
type Registry struct {
	schemas map[string]*CollectionSchema
}

// NewRegistry builds a registry from the given schemas. Raw-value keys in
// each normalizer table are lowercased so lookups are case-insensitive.
func NewRegistry(schemas ...*CollectionSchema) (*Registry, error) {
	byName := make(map[string]*CollectionSchema, len(schemas))
	for _, s := range schemas {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, exists := byName[s.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSchema, s.Name)
		}
		byName[s.Name] = foldNormalizerKeys(s)
	}
	return &Registry{schemas: byName}, nil
}

// Lookup returns the schema for a collection. The lookup is total: unknown
// collections get the empty schema, never an error.
func (r *Registry) Lookup(collection string) *CollectionSchema {
	if s, ok := r.schemas[collection]; ok {
		return s
	}
	return emptySchema
}

// HintFor returns the extraction hint for a collection, or "" when the
// collection has no schema or no hint.
func (r *Registry) HintFor(collection string) string {
	return r.Lookup(collection).Hint
}

// Collections returns the names of all registered collections in sorted order.
func (r *Registry) Collections() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func foldNormalizerKeys(s *CollectionSchema) *CollectionSchema {
	if len(s.Normalizers) == 0 {
		return s
	}
	folded := make(map[string]map[string]string, len(s.Normalizers))
	for field, table := range s.Normalizers {
		ft := make(map[string]string, len(table))
		for raw, canonical := range table {
			ft[strings.ToLower(strings.TrimSpace(raw))] = canonical
		}
		folded[field] = ft
	}
	out := *s
	out.Normalizers = folded
	return &out
}
