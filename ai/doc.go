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


// Package ai provides abstractions for the AI capabilities used by docsift.
//
// The ingestion pipeline depends on two capabilities: a text-generation
// service (collection classification, metadata/filter extraction) and an
// embedding service. This package defines them as interfaces so the decision
// logic never couples to a concrete model provider.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: generates vector embeddings from text
//   - Classifier: routes documents and queries to collections
//   - FieldExtractor: pulls schema field values out of free text
//   - Provider: aggregates the services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and assert call counts.
package ai
