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


// Package loader parses source files into text units with structural
// metadata.
//
// A Registry maps lowercase file extensions onto format loaders over an
// ordered dispatch table; the first matching entry wins. Each loader emits
// core.Unit values carrying the structural signals the chunking stage
// routes on: is_table rows, slide numbers, heading levels, section names
// and page numbers. Downstream stages never re-parse content.
//
// PDF extraction is tiered. The fast text-layer pass runs first; when the
// average character yield per page falls below a floor the file is retried
// with the table-aware converter, and as a last resort handed to an
// optional OCR hook. Loaders for the legacy binary Office formats (.doc,
// .ppt) delegate to the same converter and emit flat prose units.
package loader
