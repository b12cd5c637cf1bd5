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
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/loader"
	"github.com/poiesic/docsift/storage"
)

const (
	publishAttempts  = 3
	publishBaseDelay = 200 * time.Millisecond
)

// Producer stages uploaded files and publishes ingestion tasks.
type Producer struct {
	queue      storage.TaskQueue
	stagingDir string
	loaders    *loader.Registry
	logger     *slog.Logger
}

// NewProducer creates a producer staging files under stagingDir. The
// directory is created if missing.
func NewProducer(queue storage.TaskQueue, stagingDir string) (*Producer, error) {
	if err := os.MkdirAll(stagingDir, 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	return &Producer{
		queue:      queue,
		stagingDir: stagingDir,
		loaders:    loader.NewRegistry(),
		logger:     slog.Default().With("component", "ingest-producer"),
	}, nil
}

// Submit stages the content of r under a fresh task ID and publishes the
// ingestion task. On publish failure the staged file is KEPT and the error
// is retryable: resubmitting the same content later is safe because the
// fingerprint ledger absorbs duplicates.
func (p *Producer) Submit(ctx context.Context, r io.Reader, filename string) (*core.IngestTask, error) {
	// Unknown extensions are rejected at intake, never queued.
	if _, err := p.loaders.Lookup(filename); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	taskID := uuid.NewString()
	staged := filepath.Join(p.stagingDir, taskID+filepath.Ext(filename))

	f, err := os.Create(staged)
	if err != nil {
		return nil, fmt.Errorf("staging file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(staged)
		return nil, fmt.Errorf("staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(staged)
		return nil, fmt.Errorf("staging file: %w", err)
	}

	task := &core.IngestTask{
		TaskId:   taskID,
		FilePath: staged,
		Filename: filepath.Base(filename),
	}

	err = RetryWithBackoff(ctx, func() error {
		return p.queue.Enqueue(ctx, task)
	}, publishAttempts, publishBaseDelay)
	if err != nil {
		p.logger.Error("publish failed, keeping staged file",
			"taskId", taskID,
			"staged", staged,
			"err", err)
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	p.logger.Info("accepted file for ingestion",
		"taskId", taskID,
		"filename", task.Filename)
	return task, nil
}

// SubmitFile stages an existing file by path and publishes its task.
func (p *Producer) SubmitFile(ctx context.Context, path string) (*core.IngestTask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return p.Submit(ctx, f, filepath.Base(path))
}
