package loader

import "errors"

var (
	// ErrNoLoader indicates no registered loader handles the file's extension.
	ErrNoLoader = errors.New("no loader registered for extension")

	// ErrEmptyDocument indicates the file parsed cleanly but produced no text.
	ErrEmptyDocument = errors.New("document produced no text")

	// ErrExtractionFailed indicates every extraction tier failed for the file.
	ErrExtractionFailed = errors.New("all extraction tiers failed")
)
