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


// Package storage provides the storage abstraction layer for docsift.
//
// This package defines repository interfaces that decouple storage
// implementation from the ingestion and search pipelines. It allows
// different storage backends (BadgerDB, in-memory, etc.) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	ledger, err := badger.NewLedger(backend)  // returns storage.Ledger interface
//
// Internal package constructors may return concrete types since they're
// only used within the implementation package.
//
// # Architecture
//
//   - Ledger: the idempotency ledger of ingested content fingerprints
//   - VectorRepository: chunk persistence and similarity search per collection
//   - TaskQueue: durable at-least-once delivery of ingestion tasks
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support. Pass context.Background() for operations without
// specific timeout requirements.
package storage
