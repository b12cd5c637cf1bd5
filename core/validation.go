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

import (
	"fmt"
	"unicode/utf8"
)

// ValidateUnit validates a Unit according to domain rules.
//
// Validation rules:
//   - Content must be non-empty, valid UTF-8
//   - Metadata values must be scalars (string, number, bool)
//
// NOT validated:
//   - Metadata keys (loaders own the structural vocabulary; the extractor
//     owns schema fields)
func ValidateUnit(unit *Unit) error {
	if unit == nil {
		return fmt.Errorf("%w: unit is nil", ErrInvalidUnit)
	}

	if unit.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrEmptyContent)
	}

	if !utf8.ValidString(unit.Content) {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrInvalidUTF8)
	}

	for key, value := range unit.Metadata {
		if !IsScalar(value) {
			return fmt.Errorf("%w: %w: key %q", ErrInvalidUnit, ErrInvalidMetadataValue, key)
		}
	}

	return nil
}

// ValidateTask validates an IngestTask according to domain rules.
func ValidateTask(task *IngestTask) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}

	if task.TaskId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyTaskId)
	}

	if task.FilePath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTask, ErrEmptyFilePath)
	}

	return nil
}

// ValidateLedgerEntry validates a LedgerEntry according to domain rules.
func ValidateLedgerEntry(entry *LedgerEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidLedgerEntry)
	}

	if entry.Fingerprint == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLedgerEntry, ErrEmptyFingerprint)
	}

	return nil
}

// IsScalar reports whether a metadata value has an allowed scalar type.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, float32, float64:
		return true
	default:
		return false
	}
}
