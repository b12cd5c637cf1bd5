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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidUnit indicates a Unit failed validation.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrInvalidTask indicates an IngestTask failed validation.
	ErrInvalidTask = errors.New("invalid ingest task")

	// ErrInvalidLedgerEntry indicates a LedgerEntry failed validation.
	ErrInvalidLedgerEntry = errors.New("invalid ledger entry")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidUTF8 indicates content is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("content must be valid UTF-8")

	// ErrInvalidMetadataValue indicates a metadata value is not a scalar.
	ErrInvalidMetadataValue = errors.New("metadata value must be a string, number or bool")

	// ErrEmptyTaskId indicates the TaskId field is empty.
	ErrEmptyTaskId = errors.New("task id cannot be empty")

	// ErrEmptyFilePath indicates the FilePath field is empty.
	ErrEmptyFilePath = errors.New("file path cannot be empty")

	// ErrEmptyFingerprint indicates the Fingerprint field is empty.
	ErrEmptyFingerprint = errors.New("fingerprint cannot be empty")
)
