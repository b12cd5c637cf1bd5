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


// Package schema defines per-collection metadata schemas and the filters
// built from them.
//
// A CollectionSchema names the metadata fields worth extracting from
// documents routed to a collection, their types, an optional free-text hint
// for the extraction model, and per-field value normalizers that map
// synonymous raw values onto one canonical form ("New York" and "NY" must
// filter identically).
//
// The Registry is a read-only lookup table built once at startup. Lookups
// are total: a collection without a registered schema gets the empty
// schema, which disables metadata extraction and filtering for it rather
// than failing.
package schema
