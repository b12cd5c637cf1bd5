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
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// DefaultMaxAttempts is the delivery attempt budget before a task is
// parked in the dead-letter set.
const DefaultMaxAttempts = 3

// TaskQueue implements storage.TaskQueue for BadgerDB.
//
// Tasks live in one of three key segments: pending, in-flight, and
// dead-letter. Dequeue moves a task from pending to in-flight; Ack deletes
// it; Reject moves it back to pending with an incremented attempt counter,
// or to the dead-letter segment once attempts are exhausted. In-flight
// tasks found at open time are from a crashed process and are re-pended,
// which is what makes delivery at-least-once.
type TaskQueue struct {
	backend     *Backend
	seq         *badger.Sequence
	maxAttempts int
	mu          sync.Mutex
	logger      *slog.Logger
}

var _ storage.TaskQueue = (*TaskQueue)(nil)

// NewTaskQueue creates a task queue over the backend and recovers any
// in-flight tasks left behind by a previous process.
//
// Returns storage.TaskQueue interface to enforce abstraction.
func NewTaskQueue(backend *Backend, maxAttempts int) (storage.TaskQueue, error) {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}

	seq, err := backend.GetSequence(queueSeq)
	if err != nil {
		return nil, err
	}

	q := &TaskQueue{
		backend:     backend,
		seq:         seq,
		maxAttempts: maxAttempts,
		logger:      slog.Default().With("component", "task-queue"),
	}

	if err := q.recoverInFlight(); err != nil {
		seq.Release()
		return nil, err
	}
	return q, nil
}

// Enqueue makes a task available for delivery.
func (q *TaskQueue) Enqueue(ctx context.Context, task *core.IngestTask) error {
	if err := core.ValidateTask(task); err != nil {
		return err
	}

	n, err := q.seq.Next()
	if err != nil {
		return err
	}

	return q.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeQueueKey(queuePendPrefix, n), storage.MarshalIngestTask(task)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Dequeue claims the oldest pending task and moves it in-flight. The
// returned delivery must be settled with exactly one Ack or Reject call.
func (q *TaskQueue) Dequeue(ctx context.Context) (*storage.Delivery, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var task *core.IngestTask
	var seq uint64
	found := false

	err := q.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queuePendPrefix + ":")
		iter := tx.NewIterator(opts)

		iter.Rewind()
		if !iter.Valid() {
			iter.Close()
			return nil
		}

		item := iter.Item()
		key := item.KeyCopy(nil)
		seq = queueKeySeq(key)

		valErr := item.Value(func(val []byte) error {
			var err error
			task, err = storage.UnmarshalIngestTask(val)
			return err
		})
		// Commit refuses a txn with open iterators; close before mutating.
		iter.Close()
		if valErr != nil {
			return valErr
		}

		if err := tx.Delete(key); err != nil {
			return err
		}
		if err := tx.Set(makeQueueKey(queueFlightPrefix, seq), storage.MarshalIngestTask(task)); err != nil {
			return err
		}
		found = true
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, storage.ErrQueueEmpty
	}

	settled := false
	var settleMu sync.Mutex
	settle := func(fn func() error) error {
		settleMu.Lock()
		defer settleMu.Unlock()
		if settled {
			return storage.ErrDeliverySettled
		}
		settled = true
		return fn()
	}

	return &storage.Delivery{
		Task:   task,
		Ack:    func() error { return settle(func() error { return q.ack(seq) }) },
		Reject: func() error { return settle(func() error { return q.reject(seq, task) }) },
	}, nil
}

// PendingCount returns the number of tasks awaiting delivery.
func (q *TaskQueue) PendingCount(ctx context.Context) (int, error) {
	return q.countPrefix(queuePendPrefix)
}

// DeadLetters returns the tasks parked after exhausting their attempts.
func (q *TaskQueue) DeadLetters(ctx context.Context) ([]*core.IngestTask, error) {
	var tasks []*core.IngestTask
	err := q.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queueDeadPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := iter.Item().Value(func(val []byte) error {
				task, err := storage.UnmarshalIngestTask(val)
				if err != nil {
					return err
				}
				tasks = append(tasks, task)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)
	return tasks, err
}

// Close releases the queue's sequence.
func (q *TaskQueue) Close() error {
	return q.seq.Release()
}

func (q *TaskQueue) ack(seq uint64) error {
	return q.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeQueueKey(queueFlightPrefix, seq)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (q *TaskQueue) reject(seq uint64, task *core.IngestTask) error {
	task.Attempts++

	n, err := q.seq.Next()
	if err != nil {
		return err
	}

	target := queuePendPrefix
	if task.Attempts >= q.maxAttempts {
		target = queueDeadPrefix
		q.logger.Warn("task exhausted delivery attempts, dead-lettering",
			"taskId", task.TaskId,
			"attempts", task.Attempts)
	}

	return q.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeQueueKey(queueFlightPrefix, seq)); err != nil {
			return err
		}
		if err := tx.Set(makeQueueKey(target, n), storage.MarshalIngestTask(task)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// recoverInFlight re-pends deliveries a crashed process never settled.
func (q *TaskQueue) recoverInFlight() error {
	type orphan struct {
		key  []byte
		task *core.IngestTask
	}
	var orphans []orphan

	err := q.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(queueFlightPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.KeyCopy(nil)
			if err := item.Value(func(val []byte) error {
				task, err := storage.UnmarshalIngestTask(val)
				if err != nil {
					return err
				}
				orphans = append(orphans, orphan{key: key, task: task})
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		return nil
	}

	q.logger.Info("re-pending unsettled deliveries", "count", len(orphans))
	for _, o := range orphans {
		n, err := q.seq.Next()
		if err != nil {
			return err
		}
		if err := q.backend.WithTx(func(tx *badger.Txn) error {
			if err := tx.Delete(o.key); err != nil {
				return err
			}
			if err := tx.Set(makeQueueKey(queuePendPrefix, n), storage.MarshalIngestTask(o.task)); err != nil {
				return err
			}
			return tx.Commit()
		}, true); err != nil {
			return err
		}
	}
	return nil
}

func (q *TaskQueue) countPrefix(prefix string) (int, error) {
	count := 0
	err := q.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}
