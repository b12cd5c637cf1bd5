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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// Ledger implements storage.Ledger for BadgerDB.
type Ledger struct {
	backend *Backend
}

var _ storage.Ledger = (*Ledger)(nil)

// NewLedger creates a ledger over the backend.
//
// Returns storage.Ledger interface to enforce abstraction.
func NewLedger(backend *Backend) storage.Ledger {
	return &Ledger{backend: backend}
}

// IsProcessed reports whether a fingerprint has been recorded.
func (l *Ledger) IsProcessed(ctx context.Context, fingerprint core.Fingerprint) (bool, error) {
	found := false
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeLedgerKey(fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// Record inserts a ledger entry if absent. A fingerprint that is already
// recorded is left untouched: the first recording wins.
func (l *Ledger) Record(ctx context.Context, entry *core.LedgerEntry) error {
	if err := core.ValidateLedgerEntry(entry); err != nil {
		return err
	}

	return l.backend.WithTx(func(tx *badger.Txn) error {
		key := makeLedgerKey(core.Fingerprint(entry.Fingerprint))

		_, err := tx.Get(key)
		if err == nil {
			// Insert-if-absent: ignore on conflict.
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if entry.RecordedAt.IsZero() {
			entry.RecordedAt = time.Now().UTC()
		}
		if err := tx.Set(key, storage.MarshalLedgerEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the ledger holds no resources beyond the backend.
func (l *Ledger) Close() error {
	return nil
}
