package storage

import (
	"context"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/schema"
)

// Ledger is the durable idempotency table of ingested content fingerprints.
// Implementations must be thread-safe.
type Ledger interface {
	// IsProcessed reports whether a fingerprint has been recorded.
	IsProcessed(ctx context.Context, fingerprint core.Fingerprint) (bool, error)

	// Record inserts a ledger entry if absent. Recording a fingerprint
	// that already exists is a no-op, not an error.
	Record(ctx context.Context, entry *core.LedgerEntry) error

	// Close releases resources held by the ledger.
	Close() error
}

// VectorRepository persists chunks and serves similarity search, partitioned
// by collection. Implementations must be thread-safe.
type VectorRepository interface {
	// UpsertChunks stores chunk records in their collection, replacing any
	// record with the same content-derived ID.
	UpsertChunks(ctx context.Context, records ...*core.ChunkRecord) error

	// FindSimilar returns the records in a collection most similar to the
	// query vector, highest score first. A non-nil filter restricts
	// candidates to records whose metadata satisfies it; records scoring
	// below minSimilarity are excluded.
	FindSimilar(ctx context.Context, collection string, vector []float32, filter schema.Filter, minSimilarity float32, limit int) ([]*core.SearchResult, error)

	// ListCollections returns the names of all collections holding at
	// least one record.
	ListCollections(ctx context.Context) ([]string, error)

	// DeleteCollection removes every record in a collection.
	DeleteCollection(ctx context.Context, collection string) error

	// Close releases resources held by the repository.
	Close() error
}

// Delivery is one dequeued task awaiting settlement. Exactly one of Ack or
// Reject must be called.
type Delivery struct {
	// Task is the delivered ingestion task.
	Task *core.IngestTask

	// Ack marks the task done and removes it from the queue.
	Ack func() error

	// Reject returns the task to the queue for redelivery, or parks it in
	// the dead-letter set once its attempts are exhausted.
	Reject func() error
}

// TaskQueue is a durable at-least-once delivery channel for ingestion
// tasks. In-flight tasks that were never settled (process crash) are
// redelivered when the queue reopens. Implementations must be thread-safe.
type TaskQueue interface {
	// Enqueue makes a task available for delivery.
	Enqueue(ctx context.Context, task *core.IngestTask) error

	// Dequeue claims the oldest pending task. Returns ErrQueueEmpty when
	// nothing is pending.
	Dequeue(ctx context.Context) (*Delivery, error)

	// PendingCount returns the number of tasks awaiting delivery.
	PendingCount(ctx context.Context) (int, error)

	// DeadLetters returns the tasks parked after exhausting their attempts.
	DeadLetters(ctx context.Context) ([]*core.IngestTask, error)

	// Close releases resources held by the queue.
	Close() error
}
