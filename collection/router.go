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


package collection

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/poiesic/docsift/ai"
)

// Suffix is appended to every canonical collection name.
const Suffix = "_collection"

// Fallback is the collection documents and queries land in when
// classification yields nothing usable.
var Fallback = NormalizeName(ai.Unclassified)

// NormalizeName folds a free-text collection name onto its canonical form:
// lowercase, runs of non-alphanumeric characters collapsed to single
// underscores, and the "_collection" suffix appended exactly once.
//
// The function is idempotent: NormalizeName(NormalizeName(x)) == NormalizeName(x).
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + len(Suffix))

	lastUnderscore := true // swallows leading separators
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	cleaned := strings.TrimSuffix(b.String(), "_")
	if cleaned == "" {
		cleaned = strings.ToLower(ai.Unclassified)
	}
	if !strings.HasSuffix(cleaned, Suffix) {
		cleaned += Suffix
	}
	return cleaned
}

// Router assigns documents and queries to collections using a classifier.
type Router struct {
	classifier ai.Classifier
	logger     *slog.Logger
}

// NewRouter creates a router backed by the given classifier.
func NewRouter(classifier ai.Classifier) *Router {
	return &Router{
		classifier: classifier,
		logger:     slog.Default().With("component", "collection-router"),
	}
}

// RouteDocument decides the collection for a document excerpt. The
// classifier may pick an existing collection or coin a new name; either way
// the result is normalized. Classification errors and empty answers fall
// back to the unclassified collection rather than failing ingestion.
func (r *Router) RouteDocument(ctx context.Context, excerpt string, existing []string) string {
	answer, err := r.classifier.ClassifyDocument(ctx, excerpt, existing)
	if err != nil {
		r.logger.Warn("document classification failed, using fallback", "err", err)
		return Fallback
	}

	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, ai.Unclassified) {
		return Fallback
	}

	name := NormalizeName(answer)
	r.logger.Debug("routed document", "collection", name)
	return name
}

// RouteQuery decides which existing collection a query should search. Unlike
// document routing, queries can never create a collection: an answer that
// does not normalize onto an existing collection falls back to the
// unclassified collection.
func (r *Router) RouteQuery(ctx context.Context, query string, existing []string) string {
	answer, err := r.classifier.ClassifyQuery(ctx, query, existing)
	if err != nil {
		r.logger.Warn("query classification failed, using fallback", "err", err)
		return Fallback
	}

	answer = strings.TrimSpace(answer)
	if answer == "" || strings.EqualFold(answer, ai.Unclassified) {
		return Fallback
	}

	name := NormalizeName(answer)
	for _, existingName := range existing {
		if NormalizeName(existingName) == name {
			return name
		}
	}

	r.logger.Debug("query routed to nonexistent collection, using fallback", "answer", name)
	return Fallback
}
