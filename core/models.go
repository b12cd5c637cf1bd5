package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted chunks.
// It is generated from chunk content so identical chunks collapse to one row.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Fingerprint is the hex form of a 256-bit digest of a file's raw bytes.
// A recorded fingerprint means "this exact content was already ingested".
type Fingerprint string

// Well-known metadata keys emitted by loaders and merged by downstream stages.
// Schema-defined business fields (city, department, product_id, ...) share the
// same map but are owned by the metadata extractor.
const (
	MetaSource       = "source"
	MetaSection      = "section"
	MetaHeadingLevel = "heading_level"
	MetaIsHeading    = "is_heading"
	MetaIsTable      = "is_table"
	MetaSlide        = "slide"
	MetaTitle        = "title"
	MetaPage         = "page"
	MetaRow          = "row"
	MetaSheet        = "sheet"
	MetaDocumentType = "document_type"
	MetaSubject      = "subject"
	MetaFrom         = "from"
	MetaTo           = "to"
	MetaDate         = "date"
)

// Metadata holds scalar annotations for a Unit. Values are strings, numbers
// or booleans; anything else is rejected by validation.
type Metadata map[string]any

// Clone returns a shallow copy. Scalar values need no deep copy.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies entries from other into m without overwriting existing keys.
// Downstream stages enrich metadata additively; only the owning stage may
// replace a value it set itself.
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		if _, exists := m[k]; !exists {
			m[k] = v
		}
	}
}

// Bool reports whether key is present and truthy.
func (m Metadata) Bool(key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Has reports whether key is present with a non-empty value.
func (m Metadata) Has(key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	if s, isStr := v.(string); isStr {
		return s != ""
	}
	return true
}

// String returns the value for key as a string, or "" if absent.
func (m Metadata) String(key string) string {
	return CanonicalValue(m[key])
}

// StringMap converts metadata to canonical string values for persistence.
func (m Metadata) StringMap() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = CanonicalValue(v)
	}
	return out
}

// CanonicalValue renders a scalar metadata value as a string. Numbers use the
// shortest exact representation so equality filters compare predictably.
func CanonicalValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return ""
	}
}

// Unit is a text fragment with structural metadata produced by a format
// loader. Loaders own creation; later stages only add metadata keys.
type Unit struct {
	Content  string
	Metadata Metadata
}

// NewUnit creates a Unit with a non-nil metadata map.
func NewUnit(content string, metadata Metadata) Unit {
	if metadata == nil {
		metadata = Metadata{}
	}
	return Unit{Content: content, Metadata: metadata}
}

// Chunk is a Unit after strategy-specific splitting, ready for embedding.
type Chunk = Unit

// ChunkRecord is the persisted form of an embedded chunk.
type ChunkRecord struct {
	Id         ID
	Collection string
	Content    string
	Metadata   map[string]string
	Vector     []float32
	InsertedAt time.Time
}

// IngestTask describes one staged file awaiting ingestion. It travels from
// the producer through the durable queue to a worker.
type IngestTask struct {
	TaskId   string
	FilePath string
	Filename string
	Attempts int // Delivery attempts so far; maintained by the queue
}

// LedgerEntry records a processed content fingerprint. Its presence is the
// commit point that makes at-least-once redelivery safe.
type LedgerEntry struct {
	Fingerprint string
	Filename    string
	Collection  string
	RecordedAt  time.Time
}

// SearchResult is a chunk returned from similarity search with its score.
type SearchResult struct {
	Record *ChunkRecord
	Score  float32
}
