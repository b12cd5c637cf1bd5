package ingest

import "errors"

var (
	// ErrInvalidMaxAttempts indicates a retry budget of zero or less.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrPublishFailed indicates the task could not be enqueued. The staged
	// file is kept so the caller can retry.
	ErrPublishFailed = errors.New("failed to publish ingestion task")

	// ErrNoContent indicates a document produced no chunks to embed.
	ErrNoContent = errors.New("document produced no chunks")

	// ErrUnsupportedFormat indicates a file extension no loader handles.
	// Raised at intake, before anything is staged or queued.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
