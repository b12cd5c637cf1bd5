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


// Package chunker splits loader units into embedding-ready chunks.
//
// The Dispatcher routes each unit by its structural metadata, in strict
// precedence: table rows pass through verbatim (truncated, never split),
// slides pass through verbatim, headings pass through untouched, sectioned
// units are grouped and split within section boundaries, and everything
// else is prose. Prose uses topic-boundary splitting when the document is
// large enough to benefit and an embedder is available; otherwise it falls
// back to recursive character splitting.
//
// Output ordering is by group: tables, slides, headings, sections, prose.
// Input order within each group is preserved.
package chunker
