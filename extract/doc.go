// Package extract turns raw model output into schema-conformant metadata.
//
// The AI layer returns whatever flat JSON object the model produced; this
// package reconciles it against the collection's schema: unknown keys are
// dropped, values are coerced to the declared field type, synonyms are
// folded onto canonical values, and anything that does not fit is silently
// discarded. The same machinery extracts filter values from search queries.
//
// Extraction is advisory. Every failure path degrades to "no metadata"
// rather than surfacing an error, because a document with no metadata is
// still searchable while a failed ingestion is not.
package extract
