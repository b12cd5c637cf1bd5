package schema

import "errors"

var (
	// ErrEmptyName indicates a schema was declared without a collection name.
	ErrEmptyName = errors.New("schema has no collection name")

	// ErrDuplicateSchema indicates two schemas were registered for the same collection.
	ErrDuplicateSchema = errors.New("duplicate schema for collection")

	// ErrInvalidFieldType indicates a schema field declared an unknown type.
	ErrInvalidFieldType = errors.New("invalid field type")
)
