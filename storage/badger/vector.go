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
	"slices"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/schema"
	"github.com/poiesic/docsift/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
// Chunks are keyed by collection and content-derived ID, so re-ingesting
// identical content overwrites in place rather than duplicating.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a vector repository over the backend.
//
// Returns storage.VectorRepository interface to enforce abstraction.
func NewVectorRepository(backend *Backend) storage.VectorRepository {
	return &VectorRepository{backend: backend}
}

// UpsertChunks stores chunk records in their collection.
func (r *VectorRepository) UpsertChunks(ctx context.Context, records ...*core.ChunkRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == 0 {
				record.Id = core.IDFromContent(record.Content)
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}
			key := makeChunkKey(record.Collection, record.Id)
			if err := tx.Set(key, storage.MarshalChunkRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindSimilar scans one collection, scores every record against the query
// vector, applies the metadata filter, and returns the top matches ordered
// by similarity descending.
func (r *VectorRepository) FindSimilar(ctx context.Context, collection string, vector []float32, filter schema.Filter, minSimilarity float32, limit int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkCollectionPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.ChunkRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalChunkRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}
			if !filter.Matches(record.Metadata) {
				continue
			}

			// Dot product equals cosine similarity for normalized vectors.
			similarity := dotProduct(vector, record.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.SearchResult{
					Record: record,
					Score:  similarity,
				})
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ListCollections returns the names of all collections holding at least
// one record.
func (r *VectorRepository) ListCollections(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if name := chunkKeyCollection(iter.Item().Key()); name != "" {
				seen[name] = struct{}{}
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteCollection removes every record in a collection.
func (r *VectorRepository) DeleteCollection(ctx context.Context, collection string) error {
	var keys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeChunkCollectionPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *VectorRepository) Close() error {
	return nil
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
