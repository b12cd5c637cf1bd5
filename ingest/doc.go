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


// Package ingest implements the document ingestion pipeline.
//
// A Producer stages uploaded files and publishes ingestion tasks to the
// durable queue. A Worker consumes tasks and drives each one through the
// pipeline: fingerprint, duplicate check, load, classify, extract metadata,
// chunk, embed, upsert, record the fingerprint, acknowledge.
//
// Recording the fingerprint in the ledger BEFORE acknowledging the task is
// the commit point. A crash between the two redelivers the task, the
// fingerprint check short-circuits it to success, and the at-least-once
// queue becomes effectively-once ingestion.
package ingest
