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


package ingest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// idlePollInterval is how long the worker sleeps when the queue is empty.
const idlePollInterval = 500 * time.Millisecond

// Worker consumes ingestion tasks and drives each through the pipeline.
type Worker struct {
	queue    storage.TaskQueue
	ledger   storage.Ledger
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewWorker creates a worker over the queue, ledger and pipeline.
func NewWorker(queue storage.TaskQueue, ledger storage.Ledger, pipeline *Pipeline) *Worker {
	return &Worker{
		queue:    queue,
		ledger:   ledger,
		pipeline: pipeline,
		logger:   slog.Default().With("component", "ingest-worker"),
	}
}

// Run consumes tasks until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		delivery, err := w.queue.Dequeue(ctx)
		if errors.Is(err, storage.ErrQueueEmpty) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idlePollInterval):
			}
			continue
		}
		if err != nil {
			return err
		}

		w.handle(ctx, delivery)
	}
}

// RunOnce processes a single delivery if one is pending. Returns
// storage.ErrQueueEmpty when the queue has nothing to do.
func (w *Worker) RunOnce(ctx context.Context) (*Result, error) {
	delivery, err := w.queue.Dequeue(ctx)
	if err != nil {
		return nil, err
	}
	return w.handle(ctx, delivery), nil
}

// handle runs one task through the ingestion state machine and settles the
// delivery. It returns a non-nil result on the success paths (ingested or
// duplicate) and nil on failure.
func (w *Worker) handle(ctx context.Context, delivery *storage.Delivery) *Result {
	task := delivery.Task
	logger := w.logger.With("taskId", task.TaskId, "filename", task.Filename)

	fail := func(stage string, err error) *Result {
		logger.Error("task failed", "stage", stage, "err", err)
		if rejectErr := delivery.Reject(); rejectErr != nil {
			logger.Error("reject failed", "err", rejectErr)
		}
		return nil
	}

	fingerprint, err := FingerprintFile(task.FilePath)
	if err != nil {
		return fail("fingerprint", err)
	}

	processed, err := w.ledger.IsProcessed(ctx, fingerprint)
	if err != nil {
		return fail("ledger check", err)
	}
	if processed {
		// Duplicate content is a success, not an error: remove the staged
		// copy and settle.
		logger.Info("duplicate content, skipping", "fingerprint", fingerprint)
		w.removeStaged(task, logger)
		if err := delivery.Ack(); err != nil {
			logger.Error("ack failed", "err", err)
		}
		return &Result{FilesProcessed: 1}
	}

	result, err := w.pipeline.Process(ctx, task.FilePath, task.Filename)
	if err != nil {
		return fail("pipeline", err)
	}

	// Record before acknowledging: a crash between the two redelivers the
	// task and the fingerprint check short-circuits it.
	err = w.ledger.Record(ctx, &core.LedgerEntry{
		Fingerprint: string(fingerprint),
		Filename:    task.Filename,
		Collection:  result.Collection,
	})
	if err != nil {
		return fail("ledger record", err)
	}

	w.removeStaged(task, logger)
	if err := delivery.Ack(); err != nil {
		logger.Error("ack failed", "err", err)
	}

	logger.Info("task complete",
		"collection", result.Collection,
		"chunks", result.ChunksAdded)
	return result
}

func (w *Worker) removeStaged(task *core.IngestTask, logger *slog.Logger) {
	if err := os.Remove(task.FilePath); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not remove staged file", "path", task.FilePath, "err", err)
	}
}
